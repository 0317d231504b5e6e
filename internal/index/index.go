// Package index builds the reverse-lookup indices used by the resolver.
// All five indices are built once from the reference store; per-record
// resolution then costs a handful of map lookups instead of table scans.
package index

import (
	"strings"

	"github.com/pharmtools/pharmaclass/internal/refstore"
)

// CollisionWarning records a synonym that appears on more than one
// target. The first-seen mapping wins; collisions are reported, never
// raised, because they are inherently unresolvable.
type CollisionWarning struct {
	Synonym         string
	KeptTargetID    string
	DroppedTargetID string
}

// Set holds one mapping per identifier kind, normalized key to target_id.
type Set struct {
	byUniProt  map[string]string
	byHGNCName map[string]string
	byHGNCID   map[string]string
	byGeneName map[string]string
	bySynonym  map[string]string

	warnings []CollisionWarning
}

// NormalizeID canonicalizes accession-style identifiers (uppercase).
func NormalizeID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// NormalizeName canonicalizes name-style identifiers (lowercase).
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Build constructs all indices from the store.
func Build(store *refstore.Store) *Set {
	set := &Set{
		byUniProt:  make(map[string]string),
		byHGNCName: make(map[string]string),
		byHGNCID:   make(map[string]string),
		byGeneName: make(map[string]string),
		bySynonym:  make(map[string]string),
	}

	for _, t := range store.Targets() {
		putFirst(set.byUniProt, NormalizeID(t.UniProtID), t.TargetID)
		putFirst(set.byHGNCName, NormalizeName(t.HGNCName), t.TargetID)
		putFirst(set.byHGNCID, NormalizeID(t.HGNCID), t.TargetID)
		putFirst(set.byGeneName, NormalizeName(t.GeneName), t.TargetID)

		for _, syn := range t.Synonyms {
			key := NormalizeName(syn)
			if key == "" {
				continue
			}
			if kept, exists := set.bySynonym[key]; exists {
				if kept != t.TargetID {
					set.warnings = append(set.warnings, CollisionWarning{
						Synonym:         syn,
						KeptTargetID:    kept,
						DroppedTargetID: t.TargetID,
					})
				}
				continue
			}
			set.bySynonym[key] = t.TargetID
		}
	}

	return set
}

func putFirst(m map[string]string, key, targetID string) {
	if key == "" {
		return
	}
	if _, exists := m[key]; exists {
		return
	}
	m[key] = targetID
}

// Warnings returns the synonym collisions seen during the build.
func (s *Set) Warnings() []CollisionWarning { return s.warnings }

// ByUniProt looks up a target by UniProt accession.
func (s *Set) ByUniProt(accession string) (string, bool) {
	id, ok := s.byUniProt[NormalizeID(accession)]
	return id, ok
}

// ByHGNCName looks up a target by HGNC name.
func (s *Set) ByHGNCName(name string) (string, bool) {
	id, ok := s.byHGNCName[NormalizeName(name)]
	return id, ok
}

// ByHGNCID looks up a target by HGNC numeric id.
func (s *Set) ByHGNCID(hgncID string) (string, bool) {
	id, ok := s.byHGNCID[NormalizeID(hgncID)]
	return id, ok
}

// ByGeneName looks up a target by gene name.
func (s *Set) ByGeneName(name string) (string, bool) {
	id, ok := s.byGeneName[NormalizeName(name)]
	return id, ok
}

// BySynonym looks up a target owning a synonym token.
func (s *Set) BySynonym(synonym string) (string, bool) {
	id, ok := s.bySynonym[NormalizeName(synonym)]
	return id, ok
}

// Sizes reports entry counts per index, for verbose diagnostics.
func (s *Set) Sizes() map[string]int {
	return map[string]int{
		"uniprot":   len(s.byUniProt),
		"hgnc_name": len(s.byHGNCName),
		"hgnc_id":   len(s.byHGNCID),
		"gene_name": len(s.byGeneName),
		"synonym":   len(s.bySynonym),
	}
}
