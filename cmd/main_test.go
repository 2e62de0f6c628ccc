package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/availreport/internal/config"
	"github.com/okian/availreport/internal/domain/normalize"
	"github.com/okian/availreport/internal/domain/sheet"
	"github.com/okian/availreport/internal/sheetgen"
	"github.com/okian/availreport/pkg/logger"
)

func clearEnv() {
	for _, kv := range os.Environ() {
		if k, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(k, config.EnvPrefix) {
			_ = os.Unsetenv(k)
		}
	}
}

func execute(args ...string) (string, error) {
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFixture(dir, name string, t *sheet.Table) string {
	path := filepath.Join(dir, name)
	if err := sheetgen.WriteFile(path, t); err != nil {
		panic(err)
	}
	return path
}

func TestRootCommand(t *testing.T) {
	convey.Convey("Given the CLI", t, func() {
		clearEnv()
		dir := t.TempDir()

		convey.Convey("When run without arguments", func() {
			out, err := execute()

			convey.Convey("Then it should print usage and write nothing", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "availreport [file]")
				entries, _ := os.ReadDir(dir)
				convey.So(entries, convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When given a workbook", func() {
			input := writeFixture(dir, "team.xlsx", sheetgen.Fixture())
			out, err := execute(input)

			convey.Convey("Then the dashboard should be written next to it", func() {
				convey.So(err, convey.ShouldBeNil)
				data, err := os.ReadFile(filepath.Join(dir, "team_Dashboard.html"))
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldContainSubstring, "10 Associates, 54.3% Avg Availability")
				convey.So(out, convey.ShouldContainSubstring, "dashboard report written to")
			})
		})

		convey.Convey("When the tree variant is requested", func() {
			input := writeFixture(dir, "team.csv", sheetgen.Fixture())
			_, err := execute("--variant", "Tree", input)

			convey.Convey("Then the tree suffix should be used", func() {
				convey.So(err, convey.ShouldBeNil)
				data, err := os.ReadFile(filepath.Join(dir, "team_ImprovedTree.html"))
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(data), convey.ShouldContainSubstring, "PMS Resource Visualization")
			})
		})

		convey.Convey("When the variant comes from the environment", func() {
			_ = os.Setenv("AVAILREPORT_VARIANT", "tree")
			_ = os.Setenv("AVAILREPORT_TREE_SUFFIX", "_Tree.html")
			defer clearEnv()
			input := writeFixture(dir, "team.csv", sheetgen.Fixture())
			_, err := execute(input)

			convey.Convey("Then the configured suffix should be used", func() {
				convey.So(err, convey.ShouldBeNil)
				_, err := os.Stat(filepath.Join(dir, "team_Tree.html"))
				convey.So(err, convey.ShouldBeNil)
			})
		})

		convey.Convey("When rendering the sample with a summary", func() {
			target := filepath.Join(dir, "demo.html")
			out, err := execute("--sample", "--summary", "-o", target)

			convey.Convey("Then the overview should be printed and the file written", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(out, convey.ShouldContainSubstring, "Total associates")
				convey.So(out, convey.ShouldContainSubstring, "63.5%")
				convey.So(out, convey.ShouldContainSubstring, "(50 associates)")
				_, err := os.Stat(target)
				convey.So(err, convey.ShouldBeNil)
			})
		})

		convey.Convey("When a required column is missing", func() {
			tbl := sheet.FromStrings(
				[]string{normalize.ColID, normalize.ColName, normalize.ColRole, normalize.ColAvailability},
				[][]string{{"E1", "Ann", "PM", "80"}},
			)
			input := writeFixture(dir, "bad.csv", tbl)
			_, err := execute(input)

			convey.Convey("Then it should fail without writing output", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "missing columns: Region")
				_, statErr := os.Stat(filepath.Join(dir, "bad_Dashboard.html"))
				convey.So(os.IsNotExist(statErr), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When an unknown variant is given", func() {
			_, err := execute("--variant", "sunburst", "x.csv")

			convey.Convey("Then it should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the file does not exist", func() {
			_, err := execute(filepath.Join(dir, "nope.xlsx"))

			convey.Convey("Then it should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestServeMux(t *testing.T) {
	convey.Convey("Given the HTTP routes built from defaults", t, func() {
		ctx := context.Background()
		c := &cli{cfg: config.New(ctx), log: logger.Nop()}
		mux := c.newMux(ctx)

		convey.Convey("Then the OpenAPI document should be served", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", http.NoBody))
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("Then the sample report should be served", func() {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/report/sample", http.NoBody))
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Body.String(), convey.ShouldContainSubstring, "PMS Resource Dashboard")
		})
	})
}
