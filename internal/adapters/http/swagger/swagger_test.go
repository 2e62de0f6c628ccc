package swagger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/smartystreets/goconvey/convey"
)

func TestSwaggerHandler(t *testing.T) {
	convey.Convey("Given a swagger handler", t, func() {
		ctx := context.Background()
		mux := http.NewServeMux()

		convey.Convey("When registering the swagger handler", func() {
			Register(ctx, mux)

			convey.Convey("Then it should handle /openapi.yaml route", func() {
				req := httptest.NewRequest("GET", "/openapi.yaml", http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)

				convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(w.Header().Get("Content-Type"), convey.ShouldEqual, "application/yaml; charset=utf-8")
				convey.So(w.Body.Bytes(), convey.ShouldResemble, OpenAPI)
			})

			convey.Convey("And the document should describe every route", func() {
				doc, err := yaml.Parser().Unmarshal(OpenAPI)
				convey.So(err, convey.ShouldBeNil)
				paths, ok := doc["paths"].(map[string]interface{})
				convey.So(ok, convey.ShouldBeTrue)
				for _, p := range []string{"/report", "/report/sample", "/summary", "/healthz", "/openapi.yaml"} {
					convey.So(paths, convey.ShouldContainKey, p)
				}
			})
		})

		convey.Convey("When the mux is nil", func() {
			convey.Convey("Then registration should panic", func() {
				convey.So(func() { Register(ctx, nil) }, convey.ShouldPanic)
			})
		})
	})
}
