// Package pipeline orchestrates the classification of input rows:
// resolver first, then the chain builder when a family is known, then
// assembly of the output record. One Classifier serves all rows; after
// construction it only reads shared state, so rows may be classified
// from many goroutines.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/pharmtools/pharmaclass/internal/cache"
	"github.com/pharmtools/pharmaclass/internal/chain"
	"github.com/pharmtools/pharmaclass/internal/index"
	"github.com/pharmtools/pharmaclass/internal/model"
	"github.com/pharmtools/pharmaclass/internal/refstore"
	"github.com/pharmtools/pharmaclass/internal/resolve"
)

const chainCacheTTL = time.Hour

// Classifier classifies input rows against an immutable reference store.
type Classifier struct {
	store    *refstore.Store
	indices  *index.Set
	resolver *resolve.Resolver
	chains   cache.Cache // nil when chain memoization is disabled
	cfg      *model.Config
}

// NewClassifier builds the indices and resolver for a loaded store.
func NewClassifier(store *refstore.Store, cfg *model.Config) *Classifier {
	indices := index.Build(store)

	var chains cache.Cache
	if cfg.Chain.CacheEnabled {
		chains = cache.NewMemoryCache(chainCacheTTL, 2*chainCacheTTL)
	}

	return &Classifier{
		store:    store,
		indices:  indices,
		resolver: resolve.New(store, indices, cfg.Resolver),
		chains:   chains,
		cfg:      cfg,
	}
}

// Indices exposes the built index set, mainly for diagnostics.
func (c *Classifier) Indices() *index.Set { return c.indices }

// Classify produces exactly one output record for a row. Unresolved and
// ambiguous-EC rows come back with Matched=false, never as an error.
func (c *Classifier) Classify(row model.InputRow) model.ClassificationRecord {
	rec := model.ClassificationRecord{
		Row:   row.Row,
		Input: row,
	}

	match, err := c.resolver.Resolve(row)
	rec.ResolutionMethod = match.Method

	var ambiguous *resolve.AmbiguousECError
	if errors.As(err, &ambiguous) {
		rec.Error = ambiguous.Error()
		return rec
	}
	if err != nil {
		rec.Error = err.Error()
		return rec
	}
	if match.Method == model.MethodUnresolved {
		return rec
	}

	rec.Matched = true
	rec.TargetID = match.TargetID
	rec.FamilyID = match.FamilyID
	rec.Type = match.Type
	rec.Class = match.Class
	rec.Subclass = match.Subclass

	if target, ok := c.store.TargetByID(match.TargetID); ok {
		rec.TargetName = target.Name
	}

	if match.FamilyID != "" {
		ch := c.buildChain(match.FamilyID)
		rec.FamilyChainIDs = ch.IDs
		rec.FamilyChainNames = ch.Names
		rec.FullIDPath = ch.IDPath(c.cfg.Chain.Separator)
		rec.FullNamePath = ch.NamePath(c.cfg.Chain.Separator)
		rec.Truncated = ch.Truncated
		if ch.Truncated {
			rec.Error = fmt.Sprintf("family chain truncated at %d entries", len(ch.IDs))
		}

		// Blank classification tiers inherit from the leaf family.
		if leaf, ok := c.store.FamilyByID(match.FamilyID); ok {
			if rec.Type == "" {
				rec.Type = leaf.Type
			}
			if rec.Class == "" {
				rec.Class = leaf.Class
			}
			if rec.Subclass == "" {
				rec.Subclass = leaf.Subclass
			}
		}
	}

	return rec
}

// ClassifyTarget classifies a known target id directly, bypassing the
// resolution strategies. Unknown ids come back unresolved.
func (c *Classifier) ClassifyTarget(targetID string) model.ClassificationRecord {
	rec := model.ClassificationRecord{
		Row:              1,
		ResolutionMethod: model.MethodUnresolved,
	}

	target, ok := c.store.TargetByID(targetID)
	if !ok {
		return rec
	}

	rec.Matched = true
	rec.ResolutionMethod = model.MethodTargetID
	rec.TargetID = target.TargetID
	rec.TargetName = target.Name
	rec.FamilyID = target.FamilyID
	rec.Type = target.Type
	rec.Class = target.Class
	rec.Subclass = target.Subclass

	if target.FamilyID != "" {
		ch := c.buildChain(target.FamilyID)
		rec.FamilyChainIDs = ch.IDs
		rec.FamilyChainNames = ch.Names
		rec.FullIDPath = ch.IDPath(c.cfg.Chain.Separator)
		rec.FullNamePath = ch.NamePath(c.cfg.Chain.Separator)
		rec.Truncated = ch.Truncated
		if leaf, ok := c.store.FamilyByID(target.FamilyID); ok {
			if rec.Type == "" {
				rec.Type = leaf.Type
			}
			if rec.Class == "" {
				rec.Class = leaf.Class
			}
			if rec.Subclass == "" {
				rec.Subclass = leaf.Subclass
			}
		}
	}

	return rec
}

func (c *Classifier) buildChain(familyID string) chain.Chain {
	if c.chains == nil {
		return chain.Build(familyID, c.store, c.cfg.Chain.MaxDepth)
	}

	key := cache.ChainKey(familyID)
	if v, ok := c.chains.Get(key); ok {
		if ch, ok := v.(chain.Chain); ok {
			return ch
		}
	}

	ch := chain.Build(familyID, c.store, c.cfg.Chain.MaxDepth)
	c.chains.Set(key, ch, chainCacheTTL)
	return ch
}
