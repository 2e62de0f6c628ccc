package aggregate

import "github.com/okian/availreport/internal/domain/model"

// Tree is the role → region → bucket drill-down view of a Summary.
type Tree struct {
	Total Stats
	Roles []TreeRole
}

// TreeRole is a canonical role; Total is never part of the tree.
type TreeRole struct {
	Role string
	Stats
	Regions []TreeRegion
}

// TreeRegion lists only buckets that hold at least one associate.
type TreeRegion struct {
	Region string
	Stats
	Buckets []BucketNode
}

// Empty reports whether no bucket survived pruning.
func (r TreeRegion) Empty() bool { return len(r.Buckets) == 0 }

// TreeOption adjusts how a Tree is derived.
type TreeOption func(*treeOptions)

type treeOptions struct {
	pruneEmptyRegions bool
}

// WithPruneEmptyRegions drops regions without associates instead of keeping
// them as empty leaves.
func WithPruneEmptyRegions(prune bool) TreeOption {
	return func(o *treeOptions) { o.pruneEmptyRegions = prune }
}

// Tree reshapes the summary. Every region appears under every role unless
// pruning is enabled; empty buckets are always left out.
func (s *Summary) Tree(opts ...TreeOption) Tree {
	var o treeOptions
	for _, opt := range opts {
		opt(&o)
	}

	t := Tree{Total: s.Total}
	for _, role := range s.Roles {
		if role == model.RoleTotal {
			continue
		}
		overall, _ := s.Scopes[0].Role(role)
		tr := TreeRole{Role: role, Stats: overall.Stats}
		for _, region := range s.Regions {
			scope, _ := s.Scope(region)
			rn, _ := scope.Role(role)
			reg := TreeRegion{Region: region, Stats: rn.Stats}
			for _, b := range rn.Buckets {
				if b.Count > 0 {
					reg.Buckets = append(reg.Buckets, b)
				}
			}
			if reg.Empty() && o.pruneEmptyRegions {
				continue
			}
			tr.Regions = append(tr.Regions, reg)
		}
		t.Roles = append(t.Roles, tr)
	}
	return t
}
