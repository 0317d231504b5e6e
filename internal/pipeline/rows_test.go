package pipeline

import (
	"strings"
	"testing"

	"github.com/pharmtools/pharmaclass/internal/model"
	"github.com/pharmtools/pharmaclass/internal/tabio"
)

func TestRowsFromTable(t *testing.T) {
	input := `uniprot_id,gene_name,synonyms,ec_number,extra
Q11111,ABL1,c-abl|JTK7,2.7.10.2,ignored
,,,,
`
	table, err := tabio.Read(strings.NewReader(input), ",", "")
	if err != nil {
		t.Fatalf("parse input: %v", err)
	}

	rows := RowsFromTable(table)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	first := rows[0]
	if first.Row != 1 {
		t.Errorf("expected row 1, got %d", first.Row)
	}
	if first.UniProtID != "Q11111" || first.GeneName != "ABL1" {
		t.Errorf("unexpected identifiers: %+v", first)
	}
	if len(first.Synonyms) != 2 || first.Synonyms[1] != "JTK7" {
		t.Errorf("unexpected synonyms: %v", first.Synonyms)
	}
	if first.ECNumber != "2.7.10.2" {
		t.Errorf("unexpected EC number %q", first.ECNumber)
	}

	// A fully empty row still yields an InputRow; parity is the batch
	// runner's job, not the reader's.
	second := rows[1]
	if second.Row != 2 {
		t.Errorf("expected row 2, got %d", second.Row)
	}
	if second.UniProtID != "" {
		t.Errorf("expected empty identifiers, got %+v", second)
	}
}

func TestOutputRow_MatchesColumnCount(t *testing.T) {
	rec := model.ClassificationRecord{
		Row:              3,
		Input:            model.InputRow{Row: 3, UniProtID: "Q11111"},
		TargetID:         "T1",
		FamilyChainIDs:   []string{"F3", "F2"},
		FamilyChainNames: []string{"Kinases", "Enzymes"},
		FullIDPath:       "F3>F2",
		FullNamePath:     "Kinases>Enzymes",
		ResolutionMethod: model.MethodUniProt,
		Matched:          true,
	}

	row := OutputRow(rec, ">")
	if len(row) != len(OutputColumns) {
		t.Fatalf("output row has %d cells for %d columns", len(row), len(OutputColumns))
	}

	byColumn := make(map[string]string, len(row))
	for i, col := range OutputColumns {
		byColumn[col] = row[i]
	}
	if byColumn["row"] != "3" {
		t.Errorf("unexpected row cell %q", byColumn["row"])
	}
	if byColumn["family_chain_ids"] != "F3>F2" {
		t.Errorf("unexpected chain cell %q", byColumn["family_chain_ids"])
	}
	if byColumn["matched"] != "true" {
		t.Errorf("unexpected matched cell %q", byColumn["matched"])
	}
	if byColumn["truncated"] != "false" {
		t.Errorf("unexpected truncated cell %q", byColumn["truncated"])
	}
}
