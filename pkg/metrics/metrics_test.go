package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a custom registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should register under the flightdesk namespace", func() {
				So(manager, ShouldNotBeNil)
				manager.snapshotLoads.Inc()
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				So(families, ShouldNotBeEmpty)
				for _, f := range families {
					So(strings.HasPrefix(f.GetName(), "flightdesk_engine_"), ShouldBeTrue)
				}
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("ops"),
				WithSubsystem("sched"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then names and labels follow the options", func() {
				manager.snapshotLoads.Inc()
				expected := `
# HELP ops_sched_snapshot_loads_total Total number of snapshots loaded
# TYPE ops_sched_snapshot_loads_total counter
ops_sched_snapshot_loads_total{env="test"} 1
`
				err := testutil.GatherAndCompare(registry, strings.NewReader(expected), "ops_sched_snapshot_loads_total")
				So(err, ShouldBeNil)
			})
		})

		Convey("When creating two managers on one registry", func() {
			registry := prometheus.NewRegistry()
			_ = NewManager(WithPrometheusRegistry(registry))

			Convey("Then the duplicate registration panics", func() {
				So(func() { NewManager(WithPrometheusRegistry(registry)) }, ShouldPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording snapshot metrics", func() {
			before := testutil.ToFloat64(globalManager.snapshotLoads)
			RecordSnapshotLoad(1_700_000_000)
			UpdateSnapshotRecords(3, 2, 5)
			RecordParseWarning("pilot")
			UpdateStoredRevisions(4)

			Convey("Then the values are visible", func() {
				So(testutil.ToFloat64(globalManager.snapshotLoads), ShouldEqual, before+1)
				So(testutil.ToFloat64(globalManager.snapshotLastUnix), ShouldEqual, 1_700_000_000)
				So(testutil.ToFloat64(globalManager.snapshotRecords.WithLabelValues("mission")), ShouldEqual, 5)
				So(testutil.ToFloat64(globalManager.storedRevisions), ShouldEqual, 4)
			})
		})

		Convey("When recording engine metrics", func() {
			before := testutil.ToFloat64(globalManager.conflictsDetected.WithLabelValues("DoubleBooking"))
			RecordConflict("DoubleBooking")
			RecordCheckSkip("MaintenanceRequired")

			Convey("Then the kind counters move", func() {
				So(testutil.ToFloat64(globalManager.conflictsDetected.WithLabelValues("DoubleBooking")), ShouldEqual, before+1)
				So(func() {
					RecordDetectionLatency(1.5)
					RecordRankingLatency(0.2)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP, error and system metrics", func() {
			Convey("Then nothing panics", func() {
				So(func() {
					RecordHTTPRequest("/conflicts", "GET", "200")
					RecordHTTPRequestDuration("/conflicts", "GET", "200", 3)
					RecordErrorByComponent("service", "no_snapshot")
					RecordErrorByType("client_error", "low")
					RecordErrorByEndpoint("/conflicts", "GET", "client_error")
					RecordErrorLatency("http", "client_error", 1)
					UpdateSystemMemoryUsage(1 << 20)
					UpdateSystemGoroutineCount(12)
					RecordSystemGCPauseTime(0.3)
				}, ShouldNotPanic)
			})
		})

		Convey("When reading the registry", func() {
			Convey("Then it is the custom one", func() {
				So(GetRegistry(), ShouldEqual, customRegistry)
			})
		})
	})
}
