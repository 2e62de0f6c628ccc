package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

func gather(reg *prometheus.Registry) map[string]*dto.MetricFamily {
	families, err := reg.Gather()
	So(err, ShouldBeNil)
	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(
			WithNamespace("test_ns"),
			WithSubsystem("test_sub"),
			WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
			WithCustomLabels(map[string]string{"env": "test"}),
			WithPrometheusRegistry(registry),
		)

		Convey("Then they should be applied to the manager", func() {
			So(m.namespace, ShouldEqual, "test_ns")
			So(m.subsystem, ShouldEqual, "test_sub")
			So(m.histogramBuckets, ShouldResemble, []float64{0.1, 0.5, 1.0})
			So(m.customLabels["env"], ShouldEqual, "test")
		})

		Convey("Then empty values should keep the defaults", func() {
			d := NewManager(WithNamespace(""), WithSubsystem(""), WithHistogramBuckets(nil), WithPrometheusRegistry(prometheus.NewRegistry()))
			So(d.namespace, ShouldEqual, "availreport")
			So(d.subsystem, ShouldEqual, "generator")
			So(len(d.histogramBuckets), ShouldBeGreaterThan, 0)
		})

		Convey("Then metric names should carry namespace and subsystem", func() {
			m.RecordReport("tree", OutcomeOK, 0.3)
			fams := gather(registry)
			f, ok := fams["test_ns_test_sub_reports_total"]
			So(ok, ShouldBeTrue)
			So(f.GetMetric()[0].GetLabel()[0].GetName(), ShouldEqual, "env")
		})
	})
}

func TestManagerRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When reports are recorded", func() {
			m.RecordReport("dashboard", OutcomeOK, 12)
			m.RecordReport("dashboard", OutcomeOK, 8)
			m.RecordReport("tree", OutcomeEmpty, 2)

			Convey("Then counters should be split by variant and outcome", func() {
				f := gather(registry)["availreport_generator_reports_total"]
				So(f, ShouldNotBeNil)
				So(len(f.GetMetric()), ShouldEqual, 2)
				total := 0.0
				for _, metric := range f.GetMetric() {
					total += metric.GetCounter().GetValue()
				}
				So(total, ShouldEqual, 3)
			})

			Convey("Then latency should be observed per variant", func() {
				f := gather(registry)["availreport_generator_generation_duration_milliseconds"]
				So(f, ShouldNotBeNil)
				So(len(f.GetMetric()), ShouldEqual, 2)
			})
		})

		Convey("When rows are recorded", func() {
			m.RecordRows(10, 2, 1, 7)
			m.RecordRows(5, 0, 0, 5)

			Convey("Then row counters should accumulate and the gauge should hold the last value", func() {
				fams := gather(registry)
				So(fams["availreport_generator_rows_loaded_total"].GetMetric()[0].GetCounter().GetValue(), ShouldEqual, 15)
				So(fams["availreport_generator_rows_dropped_total"].GetMetric()[0].GetCounter().GetValue(), ShouldEqual, 2)
				So(fams["availreport_generator_rows_skipped_total"].GetMetric()[0].GetCounter().GetValue(), ShouldEqual, 1)
				So(fams["availreport_generator_last_report_records"].GetMetric()[0].GetGauge().GetValue(), ShouldEqual, 5)
			})
		})
	})
}

func TestGlobalRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then package-level recorders should not panic", func() {
			So(func() {
				RecordReport("dashboard", OutcomeOK, 1)
				RecordRows(3, 1, 0, 2)
				RecordHTTPRequest("/report", "POST", "200")
				RecordHTTPRequestDuration("/report", "POST", "200", 4.5)
				RecordError("loader", "unsupported_format")
				RecordWatchRegeneration()
			}, ShouldNotPanic)
		})

		Convey("Then the custom registry should expose them", func() {
			RecordWatchRegeneration()
			fams := gather(GetRegistry())
			So(fams, ShouldContainKey, "availreport_generator_watch_regenerations_total")
			So(fams, ShouldContainKey, "availreport_generator_http_requests_total")
			So(fams, ShouldNotContainKey, "go_goroutines")
		})
	})
}
