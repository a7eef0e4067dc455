package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/flightdesk/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestInstrument(t *testing.T) {
	Convey("Given an instrumented handler", t, func() {
		s := &Server{logger: logger.Nop()}

		Convey("A panic is answered with 500", func() {
			h := s.instrument("boom", func(http.ResponseWriter, *http.Request) { panic("kaboom") })
			w := httptest.NewRecorder()
			So(func() { h(w, httptest.NewRequest(http.MethodGet, "/boom", nil)) }, ShouldNotPanic)
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			So(w.Body.String(), ShouldContainSubstring, "kaboom")
		})

		Convey("A handler that already wrote keeps its status", func() {
			h := s.instrument("partial", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusAccepted)
				panic("late")
			})
			w := httptest.NewRecorder()
			h(w, httptest.NewRequest(http.MethodGet, "/partial", nil))
			So(w.Code, ShouldEqual, http.StatusAccepted)
		})

		Convey("Implicit 200 responses pass through", func() {
			h := s.instrument("ok", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("ok")) })
			w := httptest.NewRecorder()
			h(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldEqual, "ok")
		})
	})
}

func TestClassify(t *testing.T) {
	Convey("Error statuses map to metric labels", t, func() {
		cases := map[int][2]string{
			http.StatusBadRequest:          {"client_error", "medium"},
			http.StatusNotFound:            {"not_found", "low"},
			http.StatusInternalServerError: {"server_error", "high"},
			http.StatusServiceUnavailable:  {"unavailable", "high"},
		}
		for status, want := range cases {
			kind, severity := classify(status)
			So(kind, ShouldEqual, want[0])
			So(severity, ShouldEqual, want[1])
		}
	})
}
