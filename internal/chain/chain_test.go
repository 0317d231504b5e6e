package chain

import (
	"strings"
	"testing"

	"github.com/pharmtools/pharmaclass/internal/refstore"
	"github.com/pharmtools/pharmaclass/internal/tabio"
)

const targetCSV = `target_id,uniprot_id,hgnc_name,hgnc_id,gene_name,synonyms,family_id
T1,Q11111,ABL1,76,ABL1,,F3
`

const familyCSV = `family_id,name,parent_family_id
F1,Enzymes,
F2,Protein kinases,F1
F3,Tyr protein kinases,F2
F8,Loop A,F7
F7,Loop B,F8
F9,Self parent,F9
`

func loadStore(t *testing.T) *refstore.Store {
	t.Helper()
	targets, err := tabio.Read(strings.NewReader(targetCSV), ",", "")
	if err != nil {
		t.Fatalf("parse targets: %v", err)
	}
	families, err := tabio.Read(strings.NewReader(familyCSV), ",", "")
	if err != nil {
		t.Fatalf("parse families: %v", err)
	}
	store, err := refstore.Load(targets, families)
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	return store
}

func TestBuild_LeafToRoot(t *testing.T) {
	store := loadStore(t)

	c := Build("F3", store, 50)

	wantIDs := []string{"F3", "F2", "F1"}
	if len(c.IDs) != len(wantIDs) {
		t.Fatalf("expected chain %v, got %v", wantIDs, c.IDs)
	}
	for i, id := range wantIDs {
		if c.IDs[i] != id {
			t.Errorf("chain position %d: expected %s, got %s", i, id, c.IDs[i])
		}
	}
	if c.Truncated {
		t.Error("well-formed chain must not be truncated")
	}

	if got := c.IDPath(">"); got != "F3>F2>F1" {
		t.Errorf("unexpected id path %q", got)
	}
	if got := c.NamePath(">"); got != "Tyr protein kinases>Protein kinases>Enzymes" {
		t.Errorf("unexpected name path %q", got)
	}
}

func TestBuild_RootOnly(t *testing.T) {
	store := loadStore(t)

	c := Build("F1", store, 50)

	if len(c.IDs) != 1 || c.IDs[0] != "F1" {
		t.Fatalf("expected [F1], got %v", c.IDs)
	}
	if c.Truncated {
		t.Error("root chain must not be truncated")
	}
}

func TestBuild_UnknownFamily(t *testing.T) {
	store := loadStore(t)

	c := Build("F404", store, 50)

	if len(c.IDs) != 0 {
		t.Errorf("expected empty chain, got %v", c.IDs)
	}
	if c.Truncated {
		t.Error("unknown family yields an empty, non-truncated chain")
	}
}

func TestBuild_SelfParentTruncates(t *testing.T) {
	store := loadStore(t)

	c := Build("F9", store, 50)

	if len(c.IDs) != 1 {
		t.Fatalf("expected chain of length 1, got %v", c.IDs)
	}
	if !c.Truncated {
		t.Error("self-parent must mark the chain truncated")
	}
}

func TestBuild_TwoNodeCycleTruncates(t *testing.T) {
	store := loadStore(t)

	c := Build("F8", store, 50)

	if len(c.IDs) != 2 {
		t.Fatalf("expected chain of length 2, got %v", c.IDs)
	}
	if !c.Truncated {
		t.Error("cycle must mark the chain truncated")
	}
}

func TestBuild_DepthBound(t *testing.T) {
	store := loadStore(t)

	c := Build("F3", store, 2)

	if len(c.IDs) != 2 {
		t.Fatalf("expected depth-bounded chain of length 2, got %v", c.IDs)
	}
	if !c.Truncated {
		t.Error("depth-bounded chain must be marked truncated")
	}

	// Bound exactly at the natural depth: the walk still reaches the
	// root, so nothing is truncated.
	full := Build("F3", store, 3)
	if full.Truncated {
		t.Error("chain ending exactly at max depth must not be truncated")
	}
}
