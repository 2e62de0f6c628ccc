// Package aggregate builds the scope/role/bucket summary that every report
// variant renders.
package aggregate

import (
	"cmp"
	"slices"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/okian/availreport/internal/domain/model"
)

// ScopeOverall names the scope spanning every region.
const ScopeOverall = "overall"

// Stats is a count and a mean rounded to one decimal.
type Stats struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
}

// MeanText formats the mean with exactly one decimal.
func (s Stats) MeanText() string { return strconv.FormatFloat(s.Mean, 'f', 1, 64) }

// Associate is one row as listed under a bucket.
type Associate struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Availability int    `json:"availability"`
	Region       string `json:"region"`
	Role         string `json:"role"`
}

// BucketNode is a bucket leaf. Associates are sorted by availability
// descending, then name, then id.
type BucketNode struct {
	Bucket model.Bucket
	Stats
	Associates []Associate
}

// RoleNode holds all four buckets of a role in display order, empty ones
// included.
type RoleNode struct {
	Role string
	Stats
	Buckets []BucketNode
}

// Bucket returns the node for b.
func (r *RoleNode) Bucket(b model.Bucket) *BucketNode {
	for i := range r.Buckets {
		if r.Buckets[i].Bucket == b {
			return &r.Buckets[i]
		}
	}
	return nil
}

// ScopeNode is either the overall scope or one region. Every role of the
// summary is present, Total first.
type ScopeNode struct {
	Scope string
	Stats
	Roles []RoleNode
}

// Role returns the named role node.
func (s *ScopeNode) Role(name string) (*RoleNode, bool) {
	for i := range s.Roles {
		if s.Roles[i].Role == name {
			return &s.Roles[i], true
		}
	}
	return nil, false
}

// Summary is the complete aggregate for one generation call.
type Summary struct {
	Total   Stats
	Regions []string    // distinct, byte-wise ascending
	Roles   []string    // Total, preferred roles seen, then the rest ascending
	Scopes  []ScopeNode // overall first, then Regions in order
}

// Scope returns the named scope node.
func (s *Summary) Scope(name string) (*ScopeNode, bool) {
	for i := range s.Scopes {
		if s.Scopes[i].Scope == name {
			return &s.Scopes[i], true
		}
	}
	return nil, false
}

// Empty reports whether the summary covers no records.
func (s *Summary) Empty() bool { return s.Total.Count == 0 }

// Build aggregates cleaned records in one pass over the input.
func Build(records []model.Record) *Summary {
	regions := distinctRegions(records)
	roles := OrderRoles(records)

	scopeIdx := make(map[string]int, len(regions)+1)
	scopeIdx[ScopeOverall] = 0
	for i, r := range regions {
		scopeIdx[r] = i + 1
	}
	roleIdx := make(map[string]int, len(roles))
	for i, r := range roles {
		roleIdx[r] = i
	}

	acc := make([][]roleAcc, len(regions)+1)
	for i := range acc {
		acc[i] = make([]roleAcc, len(roles))
	}

	for _, rec := range records {
		a := Associate{
			ID:           rec.ID,
			Name:         rec.Name,
			Availability: rec.Availability,
			Region:       rec.Region,
			Role:         roleOf(rec),
		}
		b := model.BucketFor(rec.Availability)
		for _, s := range []int{0, scopeIdx[rec.Region]} {
			acc[s][0].add(b, a) // Total
			acc[s][roleIdx[a.Role]].add(b, a)
		}
	}

	sum := &Summary{
		Regions: regions,
		Roles:   roles,
		Scopes:  make([]ScopeNode, 0, len(regions)+1),
	}
	for s, scope := range append([]string{ScopeOverall}, regions...) {
		node := ScopeNode{Scope: scope, Roles: make([]RoleNode, len(roles))}
		for r, role := range roles {
			node.Roles[r] = acc[s][r].node(role)
		}
		node.Stats = node.Roles[0].Stats
		sum.Scopes = append(sum.Scopes, node)
	}
	sum.Total = sum.Scopes[0].Stats
	return sum
}

// OrderRoles returns Total, then the preferred canonical roles that occur,
// then any other observed roles in ascending order.
func OrderRoles(records []model.Record) []string {
	seen := make(map[string]bool)
	for _, r := range records {
		seen[roleOf(r)] = true
	}
	out := []string{model.RoleTotal}
	preferred := make(map[string]bool, len(model.PreferredRoles))
	for _, p := range model.PreferredRoles {
		preferred[p] = true
		if p != model.RoleTotal && seen[p] {
			out = append(out, p)
		}
	}
	var rest []string
	for r := range seen {
		if !preferred[r] {
			rest = append(rest, r)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

// roleOf keeps a record whose role is literally Total apart from the
// synthetic Total.
func roleOf(r model.Record) string {
	if r.Role == model.RoleTotal {
		return model.RoleNamedTotal
	}
	return r.Role
}

func distinctRegions(records []model.Record) []string {
	set := make(map[string]struct{})
	for _, r := range records {
		set[r.Region] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for r := range set {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

type tally struct {
	count int
	sum   int64
}

func (t *tally) add(v int) {
	t.count++
	t.sum += int64(v)
}

func (t tally) stats() Stats {
	return Stats{Count: t.count, Mean: Mean(t.sum, t.count)}
}

type roleAcc struct {
	all     tally
	buckets [4]tally
	lists   [4][]Associate
}

func (r *roleAcc) add(b model.Bucket, a Associate) {
	r.all.add(a.Availability)
	r.buckets[b].add(a.Availability)
	r.lists[b] = append(r.lists[b], a)
}

func (r *roleAcc) node(role string) RoleNode {
	n := RoleNode{Role: role, Stats: r.all.stats(), Buckets: make([]BucketNode, 0, 4)}
	for _, b := range model.Buckets() {
		list := slices.Clone(r.lists[b])
		if list == nil {
			list = []Associate{}
		}
		SortAssociates(list)
		n.Buckets = append(n.Buckets, BucketNode{Bucket: b, Stats: r.buckets[b].stats(), Associates: list})
	}
	return n
}

// SortAssociates orders by availability descending, then name, then id.
func SortAssociates(list []Associate) {
	slices.SortStableFunc(list, func(a, b Associate) int {
		if c := cmp.Compare(b.Availability, a.Availability); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

// Mean divides sum by count and rounds half away from zero to one
// decimal. An empty set has mean 0.
func Mean(sum int64, count int) float64 {
	if count == 0 {
		return 0
	}
	return decimal.NewFromInt(sum).DivRound(decimal.NewFromInt(int64(count)), 1).InexactFloat64()
}
