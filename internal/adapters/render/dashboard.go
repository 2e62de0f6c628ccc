package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	"github.com/okian/availreport/internal/domain/aggregate"
	"github.com/okian/availreport/internal/domain/model"
)

// DefaultDashboardTitle heads the dashboard when no title is configured.
const DefaultDashboardTitle = "PMS Resource Dashboard"

// Dashboard renders the tab → role card → bucket grid → associate table
// view. All drill-down happens client side from one embedded JSON blob.
type Dashboard struct {
	opts options
}

// NewDashboard constructs a dashboard renderer.
func NewDashboard(opts ...Option) *Dashboard {
	o := defaultOptions(DefaultDashboardTitle)
	for _, opt := range opts {
		opt(&o)
	}
	return &Dashboard{opts: o}
}

// Variant implements Renderer.
func (d *Dashboard) Variant() string { return VariantDashboard }

// Render implements Renderer.
func (d *Dashboard) Render(w io.Writer, sum *aggregate.Summary) error {
	if sum == nil || sum.Empty() {
		return Empty(w)
	}

	payload, err := json.Marshal(d.blob(sum))
	if err != nil {
		return fmt.Errorf("encode dashboard data: %w", err)
	}

	tabs := make([]dashboardTab, 0, len(sum.Scopes))
	for i, s := range sum.Scopes {
		tabs = append(tabs, dashboardTab{Index: i, Label: scopeLabel(i, s.Scope), Active: i == 0, Roles: s.Roles})
	}
	return execute(w, "dashboard.html.tmpl", dashboardPage{
		Title: d.opts.title,
		Total: sum.Total,
		Tabs:  tabs,
		Data:  template.JS(payload),
	})
}

type dashboardPage struct {
	Title string
	Total aggregate.Stats
	Tabs  []dashboardTab
	Data  template.JS
}

type dashboardTab struct {
	Index  int
	Label  string
	Active bool
	Roles  []aggregate.RoleNode
}

// Blob is the JSON document embedded in the dashboard. Scopes are indexed
// by tab position, so any region name is safe as a key.
type Blob struct {
	Title   string          `json:"title"`
	Total   aggregate.Stats `json:"total"`
	Regions []string        `json:"regions"`
	Roles   []string        `json:"roles"`
	Buckets []string        `json:"buckets"`
	Scopes  []BlobScope     `json:"scopes"`
}

// BlobScope is one tab of the dashboard.
type BlobScope struct {
	Scope string `json:"scope"`
	Label string `json:"label"`
	aggregate.Stats
	Roles map[string]BlobRole `json:"roles"`
}

// BlobRole is one role card.
type BlobRole struct {
	aggregate.Stats
	Buckets map[string]BlobBucket `json:"buckets"`
}

// BlobBucket is one bucket card with its associate table.
type BlobBucket struct {
	aggregate.Stats
	Associates []aggregate.Associate `json:"associates"`
}

func (d *Dashboard) blob(sum *aggregate.Summary) Blob {
	b := Blob{
		Title:   d.opts.title,
		Total:   sum.Total,
		Regions: sum.Regions,
		Roles:   sum.Roles,
		Scopes:  make([]BlobScope, 0, len(sum.Scopes)),
	}
	for _, bk := range model.Buckets() {
		b.Buckets = append(b.Buckets, bk.Key())
	}
	for i, s := range sum.Scopes {
		scope := BlobScope{
			Scope: s.Scope,
			Label: scopeLabel(i, s.Scope),
			Stats: s.Stats,
			Roles: make(map[string]BlobRole, len(s.Roles)),
		}
		for _, r := range s.Roles {
			role := BlobRole{Stats: r.Stats, Buckets: make(map[string]BlobBucket, len(r.Buckets))}
			for _, bn := range r.Buckets {
				role.Buckets[bn.Bucket.Key()] = BlobBucket{Stats: bn.Stats, Associates: bn.Associates}
			}
			scope.Roles[r.Role] = role
		}
		b.Scopes = append(b.Scopes, scope)
	}
	return b
}

func scopeLabel(i int, scope string) string {
	if i == 0 {
		return "Overall"
	}
	return scope
}
