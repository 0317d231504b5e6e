// Package refstore loads and validates the target and family reference
// tables into an immutable in-memory store. The store is built once at
// startup and is read-only afterwards, which is what makes record-level
// parallelism in the batch runner safe without locking.
package refstore

import (
	"strings"

	"github.com/pharmtools/pharmaclass/internal/model"
	"github.com/pharmtools/pharmaclass/internal/tabio"
)

// Column aliases seen in legacy reference exports. Applied after header
// normalization, so any casing of e.g. HGNC_NAME is accepted.
var columnAliases = map[string]string{
	"swissprot":     "uniprot_id",
	"family_name":   "name",
	"target_name":   "name",
	"class_name":    "class",
	"subclass_name": "subclass",
}

var requiredTargetColumns = []string{
	"target_id",
	"uniprot_id",
	"hgnc_name",
	"hgnc_id",
	"gene_name",
	"synonyms",
	"family_id",
}

var requiredFamilyColumns = []string{
	"family_id",
	"name",
	"parent_family_id",
}

// Store holds both reference tables after load-time validation.
// All lookups are by exact, pre-normalized key.
type Store struct {
	targets    []model.TargetRecord
	families   []model.FamilyRecord
	targetByID map[string]int
	familyByID map[string]int
}

// Targets returns all target records in load order.
func (s *Store) Targets() []model.TargetRecord { return s.targets }

// Families returns all family records in load order.
func (s *Store) Families() []model.FamilyRecord { return s.families }

// TargetByID returns the target record for an id, if present.
func (s *Store) TargetByID(id string) (model.TargetRecord, bool) {
	i, ok := s.targetByID[id]
	if !ok {
		return model.TargetRecord{}, false
	}
	return s.targets[i], true
}

// FamilyByID returns the family record for an id, if present.
func (s *Store) FamilyByID(id string) (model.FamilyRecord, bool) {
	i, ok := s.familyByID[id]
	if !ok {
		return model.FamilyRecord{}, false
	}
	return s.families[i], true
}

// Load validates both tables and builds the store. It returns a
// *SchemaError when a required column is missing and a
// *DuplicateKeyError when a primary key repeats.
func Load(targets, families *tabio.Table) (*Store, error) {
	applyAliases(targets)
	applyAliases(families)

	if missing := missingColumns(targets, requiredTargetColumns); len(missing) > 0 {
		return nil, &SchemaError{Table: "target", Missing: missing}
	}
	if missing := missingColumns(families, requiredFamilyColumns); len(missing) > 0 {
		return nil, &SchemaError{Table: "family", Missing: missing}
	}

	store := &Store{
		targetByID: make(map[string]int, len(targets.Rows)),
		familyByID: make(map[string]int, len(families.Rows)),
	}

	for _, row := range targets.Rows {
		rec := model.TargetRecord{
			TargetID:  row.Get("target_id"),
			UniProtID: row.Get("uniprot_id"),
			HGNCName:  row.Get("hgnc_name"),
			HGNCID:    row.Get("hgnc_id"),
			GeneName:  row.Get("gene_name"),
			Name:      row.Get("name"),
			Synonyms:  SplitSynonyms(row.Get("synonyms")),
			FamilyID:  row.Get("family_id"),
			ECNumber:  row.Get("ec_number"),
			Type:      row.Get("type"),
			Class:     row.Get("class"),
			Subclass:  row.Get("subclass"),
		}
		if rec.TargetID == "" {
			continue
		}
		if _, seen := store.targetByID[rec.TargetID]; seen {
			return nil, &DuplicateKeyError{Table: "target", Column: "target_id", Value: rec.TargetID}
		}
		store.targetByID[rec.TargetID] = len(store.targets)
		store.targets = append(store.targets, rec)
	}

	for _, row := range families.Rows {
		rec := model.FamilyRecord{
			FamilyID:       row.Get("family_id"),
			ParentFamilyID: row.Get("parent_family_id"),
			Name:           row.Get("name"),
			Type:           row.Get("type"),
			Class:          row.Get("class"),
			Subclass:       row.Get("subclass"),
			ECNumber:       row.Get("ec_number"),
		}
		if rec.FamilyID == "" {
			continue
		}
		if _, seen := store.familyByID[rec.FamilyID]; seen {
			return nil, &DuplicateKeyError{Table: "family", Column: "family_id", Value: rec.FamilyID}
		}
		store.familyByID[rec.FamilyID] = len(store.families)
		store.families = append(store.families, rec)
	}

	return store, nil
}

// LoadFiles reads both reference tables from disk and builds the store.
func LoadFiles(targetPath, familyPath, sep, encoding string) (*Store, error) {
	targets, err := tabio.ReadFile(targetPath, sep, encoding)
	if err != nil {
		return nil, err
	}
	families, err := tabio.ReadFile(familyPath, sep, encoding)
	if err != nil {
		return nil, err
	}
	return Load(targets, families)
}

// SplitSynonyms tokenizes a pipe-delimited synonyms cell. Tokens are
// trimmed, a literal "synonyms=" export prefix is stripped, empties are
// dropped, and first-seen order is preserved.
func SplitSynonyms(cell string) []string {
	if cell == "" {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	for _, tok := range strings.Split(cell, "|") {
		tok = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(tok), "synonyms="))
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

func applyAliases(t *tabio.Table) {
	for i, h := range t.Headers {
		canonical, ok := columnAliases[h]
		if !ok {
			continue
		}
		// Never shadow a column that already uses the canonical name.
		if t.HasColumn(canonical) {
			continue
		}
		t.Headers[i] = canonical
		for _, row := range t.Rows {
			if v, present := row[h]; present {
				row[canonical] = v
				delete(row, h)
			}
		}
	}
}

func missingColumns(t *tabio.Table, required []string) []string {
	var missing []string
	for _, col := range required {
		if !t.HasColumn(col) {
			missing = append(missing, col)
		}
	}
	return missing
}
