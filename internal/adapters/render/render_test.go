package render_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/okian/availreport/internal/adapters/render"
	"github.com/okian/availreport/internal/domain/aggregate"
	"github.com/okian/availreport/internal/domain/model"
	"github.com/okian/availreport/internal/domain/normalize"
	"github.com/okian/availreport/internal/sheetgen"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/tidwall/gjson"
)

const blobOpen = `<script id="report-data" type="application/json">`

func fixtureSummary() *aggregate.Summary {
	res, err := normalize.Normalize(sheetgen.Fixture())
	if err != nil {
		panic(err)
	}
	return aggregate.Build(res.Records)
}

func renderString(r render.Renderer, sum *aggregate.Summary) string {
	var buf bytes.Buffer
	So(r.Render(&buf, sum), ShouldBeNil)
	return buf.String()
}

func extractBlob(doc string) string {
	i := strings.Index(doc, blobOpen)
	So(i, ShouldBeGreaterThanOrEqualTo, 0)
	rest := doc[i+len(blobOpen):]
	j := strings.Index(rest, "</script>")
	So(j, ShouldBeGreaterThan, 0)
	return rest[:j]
}

func TestNew(t *testing.T) {
	Convey("Given variant names", t, func() {
		d, err := render.New(" Dashboard ")
		So(err, ShouldBeNil)
		So(d.Variant(), ShouldEqual, render.VariantDashboard)

		tr, err := render.New("tree")
		So(err, ShouldBeNil)
		So(tr.Variant(), ShouldEqual, render.VariantTree)

		_, err = render.New("sunburst")
		So(errors.Is(err, render.ErrUnknownVariant), ShouldBeTrue)
	})
}

func TestDashboard(t *testing.T) {
	Convey("Given the fixture summary", t, func() {
		sum := fixtureSummary()
		doc := renderString(render.NewDashboard(), sum)
		blob := extractBlob(doc)

		Convey("Then the blob should round-trip the aggregate", func() {
			So(gjson.Valid(blob), ShouldBeTrue)
			So(gjson.Get(blob, "total.count").Int(), ShouldEqual, 10)
			So(gjson.Get(blob, "total.mean").Float(), ShouldEqual, 54.3)
			So(gjson.Get(blob, "regions").String(), ShouldEqual, `["East","North","South"]`)
			So(gjson.Get(blob, "roles").String(), ShouldEqual, `["Total","PGM","PM","SCRUM","TPDL","Developer"]`)
			So(gjson.Get(blob, "buckets").String(), ShouldEqual, `["76-100","51-75","26-50","0-25"]`)

			north := gjson.Get(blob, `scopes.#(scope=="North")`)
			So(north.Get("count").Int(), ShouldEqual, 4)
			So(north.Get("mean").Float(), ShouldEqual, 76.5)
			So(north.Get("roles.Total.buckets.76-100.count").Int(), ShouldEqual, 3)
			So(north.Get("roles.Total.buckets.76-100.mean").Float(), ShouldEqual, 82.0)
			So(north.Get("roles.Total.buckets.76-100.associates.#.id").String(), ShouldEqual, `["E01","E02","E03"]`)

			east := gjson.Get(blob, `scopes.#(scope=="East")`)
			So(east.Get("mean").Float(), ShouldEqual, 20.3)
			So(east.Get("roles.Total.buckets.0-25.count").Int(), ShouldEqual, 2)
			So(east.Get("roles.Total.buckets.0-25.mean").Float(), ShouldEqual, 17.5)
			So(east.Get("roles.SCRUM.count").Int(), ShouldEqual, 1)

			So(gjson.Get(blob, `scopes.#(scope=="South").mean`).Float(), ShouldEqual, 58.7)
			So(gjson.Get(blob, "scopes.0.label").String(), ShouldEqual, "Overall")
		})

		Convey("Then bucket counts should sum to each role count", func() {
			gjson.Get(blob, "scopes").ForEach(func(_, scope gjson.Result) bool {
				scope.Get("roles").ForEach(func(_, role gjson.Result) bool {
					n := int64(0)
					role.Get("buckets").ForEach(func(_, b gjson.Result) bool {
						n += b.Get("count").Int()
						return true
					})
					So(n, ShouldEqual, role.Get("count").Int())
					return true
				})
				return true
			})
		})

		Convey("Then an absent role/region combination should be present but empty", func() {
			pgm := gjson.Get(blob, `scopes.#(scope=="North").roles.PGM`)
			So(pgm.Exists(), ShouldBeTrue)
			So(pgm.Get("count").Int(), ShouldEqual, 0)
			So(pgm.Get("mean").Float(), ShouldEqual, 0)
			for _, b := range model.Buckets() {
				bucket := pgm.Get("buckets." + b.Key())
				So(bucket.Get("count").Int(), ShouldEqual, 0)
				So(bucket.Get("associates").String(), ShouldEqual, "[]")
			}
			So(doc, ShouldContainSubstring, `<div class="role-card no-data" data-scope="2" data-role="PGM">`)
		})

		Convey("Then the markup should carry the header and tabs", func() {
			So(doc, ShouldContainSubstring, "<title>PMS Resource Dashboard</title>")
			So(doc, ShouldContainSubstring, "10 Associates, 54.3% Avg Availability")
			So(doc, ShouldContainSubstring, `<div class="tab active" data-scope="0">Overall</div>`)
			So(doc, ShouldContainSubstring, `<div class="tab" data-scope="3">South</div>`)
			So(doc, ShouldContainSubstring, `<div class="role-card" data-scope="0" data-role="Total">`)
			So(doc, ShouldContainSubstring, `<div class="stat-percentage">76.5%</div>`)
			So(doc, ShouldNotContainSubstring, "http://")
			So(doc, ShouldNotContainSubstring, "https://")
		})

		Convey("Then rendering should be deterministic", func() {
			So(renderString(render.NewDashboard(), fixtureSummary()), ShouldEqual, doc)
		})

		Convey("Then a custom title should be used", func() {
			custom := renderString(render.NewDashboard(render.WithTitle("Bench")), sum)
			So(custom, ShouldContainSubstring, "<title>Bench</title>")
			So(gjson.Get(extractBlob(custom), "title").String(), ShouldEqual, "Bench")
		})
	})

	Convey("Given names that need escaping", t, func() {
		sum := aggregate.Build([]model.Record{
			{ID: "1", Name: "</script><b>x", RawRole: "PM", Role: "PM", Region: `R"&<i>`, Availability: 80},
		})
		doc := renderString(render.NewDashboard(), sum)

		Convey("Then neither markup nor blob should break out of their context", func() {
			So(doc, ShouldNotContainSubstring, "<b>x")
			So(doc, ShouldNotContainSubstring, `R"&<i>`)
			So(strings.Count(doc, "</script>"), ShouldEqual, 2)
			blob := extractBlob(doc)
			So(gjson.Get(blob, "scopes.1.scope").String(), ShouldEqual, `R"&<i>`)
			So(gjson.Get(blob, "scopes.0.roles.Total.buckets.76-100.associates.0.name").String(), ShouldEqual, "</script><b>x")
		})
	})
}

func TestTree(t *testing.T) {
	Convey("Given the fixture summary", t, func() {
		sum := fixtureSummary()
		doc := renderString(render.NewTree(), sum)

		Convey("Then only canonical roles should be tree nodes", func() {
			So(doc, ShouldNotContainSubstring, `data-role="Total"`)
			for _, role := range []string{"PGM", "PM", "SCRUM", "TPDL", "Developer"} {
				So(doc, ShouldContainSubstring, `data-role="`+role+`"`)
			}
		})

		Convey("Then root and role levels should start expanded", func() {
			So(strings.Count(doc, `class="nested active"`), ShouldEqual, 6)
			So(doc, ShouldContainSubstring, `<div class="node node-root"><span class="toggle-icon">&minus;</span>PMS`)
		})

		Convey("Then empty buckets should be pruned", func() {
			So(strings.Count(doc, `class="node node-bucket`), ShouldEqual, 9)
		})

		Convey("Then every region should appear under every role", func() {
			So(strings.Count(doc, `data-region="East"`), ShouldEqual, 5)
			So(doc, ShouldContainSubstring, "No associates found in any availability bucket")
		})

		Convey("Then bucket tables should be sorted", func() {
			ann := strings.Index(doc, "<td>E01</td>")
			cid := strings.Index(doc, "<td>E03</td>")
			So(ann, ShouldBeGreaterThan, 0)
			So(ann, ShouldBeLessThan, cid)
			So(doc, ShouldContainSubstring, `<span class="availability-indicator avail-high"></span>90%`)
		})

		Convey("Then clicks should not propagate to ancestors", func() {
			So(doc, ShouldContainSubstring, "event.stopPropagation()")
		})
	})

	Convey("Given pruning of empty regions", t, func() {
		doc := renderString(render.NewTree(render.WithPruneEmptyRegions(true), render.WithRootLabel("Org")), fixtureSummary())

		Convey("Then regions without associates should be omitted", func() {
			So(strings.Count(doc, `data-region="East"`), ShouldEqual, 3)
			So(doc, ShouldNotContainSubstring, "No associates found in any availability bucket")
			So(doc, ShouldContainSubstring, "</span>Org<span")
		})
	})
}

func TestEmpty(t *testing.T) {
	Convey("Given a summary with no records", t, func() {
		sum := aggregate.Build(nil)

		dash := renderString(render.NewDashboard(render.WithTitle("Other")), sum)
		tree := renderString(render.NewTree(), sum)

		Convey("Then both variants should return the same empty-state document", func() {
			So(dash, ShouldEqual, tree)
			So(dash, ShouldContainSubstring, render.EmptyMessage)
			So(dash, ShouldNotContainSubstring, "report-data")
			So(dash, ShouldNotContainSubstring, "role-card")
		})

		Convey("Then a nil summary should behave the same", func() {
			So(renderString(render.NewDashboard(), nil), ShouldEqual, dash)
		})
	})
}
