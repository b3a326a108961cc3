package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/gun110939/demo-flow-send-pwa/pkg/metrics"
)

func TestManager(t *testing.T) {
	Convey("Given a metrics manager on a fresh registry", t, func() {
		registry := prometheus.NewRegistry()
		manager := metrics.NewManager(metrics.WithPrometheusRegistry(registry))

		Convey("Then construction registers all collectors without panicking", func() {
			So(manager, ShouldNotBeNil)

			families, err := registry.Gather()
			So(err, ShouldBeNil)
			// Counters without observations do not gather; gauges do.
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})

	Convey("Given the global manager", t, func() {
		Convey("When recording business metrics", func() {
			So(func() {
				metrics.RecordWorkSubmitted()
				metrics.RecordEvaluation("APPROVED")
				metrics.RecordEscalation("PRE_FINAL")
				metrics.RecordItemCompleted("REJECTED")
				metrics.RecordEvaluateLatency(12.5)
				metrics.UpdatePendingItems(3)
				metrics.UpdateTotalWorkItems(10)
				metrics.UpdateTotalEmployees(250)
				metrics.UpdateCommitteeMembers("FINAL", 5)
				metrics.UpdateLedgerSize(42)
				metrics.RecordHTTPRequest("work_results", "POST", "200")
				metrics.RecordHTTPRequestDuration("work_results", "POST", "200", 4.2)
				metrics.RecordErrorByComponent("repository", "not_found")
				metrics.RecordErrorByEndpoint("evaluate", "POST", "conflict")
			}, ShouldNotPanic)
		})

		Convey("Then the custom registry gathers them", func() {
			families, err := metrics.GetRegistry().Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})
	})
}
