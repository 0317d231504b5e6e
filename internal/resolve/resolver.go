// Package resolve maps an input row to a target (or, failing that, a
// classification) using an ordered list of lookup strategies. The order
// is fixed: UniProt accession, HGNC name, HGNC id, gene name, synonym,
// then the EC-number fallback. Evaluation short-circuits at the first
// hit, so precedence is explicit and each strategy testable on its own.
package resolve

import (
	"fmt"
	"strings"

	"github.com/pharmtools/pharmaclass/internal/index"
	"github.com/pharmtools/pharmaclass/internal/model"
	"github.com/pharmtools/pharmaclass/internal/refstore"
)

// Match is the outcome of resolving one input row. TargetID is empty
// when the EC or name-keyword fallback classified the row without a
// concrete target; in that case the classification labels (and, for the
// EC case, FamilyID) carry the answer.
type Match struct {
	TargetID string
	FamilyID string
	Type     string
	Class    string
	Subclass string
	Method   model.ResolutionMethod
}

// AmbiguousECError reports an EC prefix that matched more than one
// candidate. Resolution fails rather than guessing; callers surface it
// per record, never abort a batch on it.
type AmbiguousECError struct {
	Prefix     string
	Candidates []string
}

func (e *AmbiguousECError) Error() string {
	return fmt.Sprintf("ambiguous EC prefix %q: %d candidates (%s)",
		e.Prefix, len(e.Candidates), strings.Join(e.Candidates, ", "))
}

// Resolver applies the ordered strategy list against immutable indices
// and store. It holds no mutable state, so one Resolver may serve many
// goroutines.
type Resolver struct {
	store *refstore.Store
	set   *index.Set
	cfg   model.ResolverConfig

	strategies []strategy
}

type strategy struct {
	method model.ResolutionMethod
	lookup func(row model.InputRow) (string, bool)
}

// New builds a resolver over the given store and index set.
func New(store *refstore.Store, set *index.Set, cfg model.ResolverConfig) *Resolver {
	r := &Resolver{store: store, set: set, cfg: cfg}
	r.strategies = []strategy{
		{model.MethodUniProt, func(row model.InputRow) (string, bool) {
			if row.UniProtID == "" {
				return "", false
			}
			return set.ByUniProt(row.UniProtID)
		}},
		{model.MethodHGNCName, func(row model.InputRow) (string, bool) {
			if row.HGNCName == "" {
				return "", false
			}
			return set.ByHGNCName(row.HGNCName)
		}},
		{model.MethodHGNCID, func(row model.InputRow) (string, bool) {
			if row.HGNCID == "" {
				return "", false
			}
			return set.ByHGNCID(row.HGNCID)
		}},
		{model.MethodGeneName, func(row model.InputRow) (string, bool) {
			if row.GeneName == "" {
				return "", false
			}
			return set.ByGeneName(row.GeneName)
		}},
		{model.MethodSynonym, r.lookupSynonym},
	}
	return r
}

// Resolve determines the best match for a row. An unresolved row is a
// normal outcome: Method is MethodUnresolved and the error is nil. The
// only error returned is *AmbiguousECError.
func (r *Resolver) Resolve(row model.InputRow) (Match, error) {
	for _, s := range r.strategies {
		if targetID, ok := s.lookup(row); ok {
			return r.matchFromTarget(targetID, s.method), nil
		}
	}

	if row.ECNumber != "" {
		m, err := r.resolveByEC(row.ECNumber)
		if err != nil || m.Method == model.MethodECNumber {
			return m, err
		}
	}

	if r.cfg.NameHeuristic {
		if m, ok := r.resolveByNameKeyword(row); ok {
			return m, nil
		}
	}

	return Match{Method: model.MethodUnresolved}, nil
}

func (r *Resolver) lookupSynonym(row model.InputRow) (string, bool) {
	minLen := r.cfg.MinSynonymLength
	candidates := make([]string, 0, len(row.Synonyms)+1)
	candidates = append(candidates, row.Synonyms...)
	if row.Name != "" {
		candidates = append(candidates, row.Name)
	}
	for _, syn := range candidates {
		if len(strings.TrimSpace(syn)) < minLen {
			continue
		}
		if id, ok := r.set.BySynonym(syn); ok {
			return id, true
		}
	}
	return "", false
}

func (r *Resolver) matchFromTarget(targetID string, method model.ResolutionMethod) Match {
	m := Match{TargetID: targetID, Method: method}
	target, ok := r.store.TargetByID(targetID)
	if !ok {
		return m
	}
	m.FamilyID = target.FamilyID
	m.Type = target.Type
	m.Class = target.Class
	m.Subclass = target.Subclass
	return m
}

// ECPrefix returns the leading components of a dot-separated EC number.
// precision 2 turns "2.7.10.2" into "2.7"; a number with fewer
// components than precision is returned whole.
func ECPrefix(ec string, precision int) string {
	ec = strings.TrimSpace(ec)
	if ec == "" {
		return ""
	}
	if precision <= 0 {
		precision = 1
	}
	parts := strings.Split(ec, ".")
	if len(parts) > precision {
		parts = parts[:precision]
	}
	return strings.Join(parts, ".")
}

// resolveByEC scans reference records whose own EC number shares the
// input's leading prefix. Exactly one candidate family qualifies or the
// lookup fails: one match classifies the row, several are ambiguous.
func (r *Resolver) resolveByEC(ec string) (Match, error) {
	prefix := ECPrefix(ec, r.cfg.ECPrecision)
	if prefix == "" {
		return Match{Method: model.MethodUnresolved}, nil
	}

	type candidate struct {
		familyID string
		typ      string
		class    string
		subclass string
		label    string
	}
	var candidates []candidate
	seenFamilies := make(map[string]bool)

	for _, f := range r.store.Families() {
		if f.ECNumber == "" || ECPrefix(f.ECNumber, r.cfg.ECPrecision) != prefix {
			continue
		}
		if seenFamilies[f.FamilyID] {
			continue
		}
		seenFamilies[f.FamilyID] = true
		candidates = append(candidates, candidate{
			familyID: f.FamilyID,
			typ:      f.Type,
			class:    f.Class,
			subclass: f.Subclass,
			label:    "family:" + f.FamilyID,
		})
	}

	for _, t := range r.store.Targets() {
		if t.ECNumber == "" || ECPrefix(t.ECNumber, r.cfg.ECPrecision) != prefix {
			continue
		}
		// A target whose family already qualified adds no new candidate.
		if t.FamilyID != "" && seenFamilies[t.FamilyID] {
			continue
		}
		if t.FamilyID != "" {
			seenFamilies[t.FamilyID] = true
		}
		typ, class, subclass := t.Type, t.Class, t.Subclass
		if f, ok := r.store.FamilyByID(t.FamilyID); ok {
			if typ == "" {
				typ = f.Type
			}
			if class == "" {
				class = f.Class
			}
			if subclass == "" {
				subclass = f.Subclass
			}
		}
		candidates = append(candidates, candidate{
			familyID: t.FamilyID,
			typ:      typ,
			class:    class,
			subclass: subclass,
			label:    "target:" + t.TargetID,
		})
	}

	switch len(candidates) {
	case 0:
		return Match{Method: model.MethodUnresolved}, nil
	case 1:
		c := candidates[0]
		return Match{
			FamilyID: c.familyID,
			Type:     c.typ,
			Class:    c.class,
			Subclass: c.subclass,
			Method:   model.MethodECNumber,
		}, nil
	default:
		labels := make([]string, len(candidates))
		for i, c := range candidates {
			labels[i] = c.label
		}
		return Match{Method: model.MethodECAmbiguous}, &AmbiguousECError{Prefix: prefix, Candidates: labels}
	}
}

// Keyword classes for descriptive names, checked in order. First match
// wins, mirroring the precedence the reference data itself uses.
var nameKeywordRules = []struct {
	keyword  string
	typ      string
	class    string
	subclass string
}{
	{"kinase", "Enzyme", "Enzyme", "Transferase"},
	{"oxidase", "Enzyme", "Enzyme", "Oxidoreductase"},
	{"reductase", "Enzyme", "Enzyme", "Oxidoreductase"},
	{"hydrolase", "Enzyme", "Enzyme", "Hydrolase"},
	{"protease", "Enzyme", "Enzyme", "Hydrolase"},
	{"phosphatase", "Enzyme", "Enzyme", "Hydrolase"},
	{"atpase", "Transporter", "Transporter", ""},
	{"solute carrier", "Transporter", "Transporter", "SLC superfamily of solute carriers"},
	{"transport", "Transporter", "Transporter", ""},
	{"channel", "Ion channel", "Ion channel", ""},
	{"hormone", "Receptor", "Receptor", "Nuclear hormone receptor"},
}

func (r *Resolver) resolveByNameKeyword(row model.InputRow) (Match, bool) {
	names := append([]string{row.Name}, row.Synonyms...)
	for _, name := range names {
		lower := strings.ToLower(name)
		if lower == "" {
			continue
		}
		for _, rule := range nameKeywordRules {
			if strings.Contains(lower, rule.keyword) {
				return Match{
					Type:     rule.typ,
					Class:    rule.class,
					Subclass: rule.subclass,
					Method:   model.MethodNameKeyword,
				}, true
			}
		}
	}
	return Match{}, false
}
