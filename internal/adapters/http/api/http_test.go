package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/adapters/http/api"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/model"
	"github.com/yvh1223/vihaan-swim-tracker-sub000/internal/domain/standards"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDeps implements api.Dependencies and api.StatsProvider for handler
// tests.
type mockDeps struct {
	known         map[string]bool
	enqueued      []model.RawResult
	refuseEnqueue bool

	results      []model.Result
	records      []api.RecordEntry
	improvements []model.Improvement

	forecast       *model.Forecast
	classification api.Classification
	classifyErr    error
}

func (m *mockDeps) HasResult(_ context.Context, resultID string) bool {
	return m.known[resultID]
}

func (m *mockDeps) Enqueue(_ context.Context, r model.RawResult) bool {
	if m.refuseEnqueue {
		return false
	}
	m.enqueued = append(m.enqueued, r)
	return true
}

func (m *mockDeps) Results(_ context.Context, eventLabel string) ([]model.Result, error) {
	if eventLabel == "" {
		return m.results, nil
	}
	var out []model.Result
	for _, r := range m.results {
		if r.EventLabel == eventLabel {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockDeps) Records(_ context.Context) ([]api.RecordEntry, error) {
	return m.records, nil
}

func (m *mockDeps) Improvements(_ context.Context) ([]model.Improvement, error) {
	return m.improvements, nil
}

func (m *mockDeps) Forecast(_ context.Context, eventLabel string, target time.Time) (*model.Forecast, error) {
	return m.forecast, nil
}

func (m *mockDeps) Classify(_ context.Context, eventLabel string, seconds float64, onDate time.Time) (api.Classification, error) {
	if m.classifyErr != nil {
		return api.Classification{}, m.classifyErr
	}
	return m.classification, nil
}

func (m *mockDeps) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newTestServer(deps *mockDeps) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, deps, 1000).Register(context.Background(), mux)
	return mux
}

func TestPostResult(t *testing.T) {
	Convey("Given the ingest endpoint", t, func() {
		deps := &mockDeps{known: map[string]bool{}}
		mux := newTestServer(deps)

		post := func(body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/results", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)
			return rec
		}

		Convey("When posting a valid result", func() {
			rec := post(`{"result_id":"r1","event_label":"50 FR SCY","date":"2025-07-11","time":"35.15","meet":"Summer Open"}`)

			Convey("Then it acks with 202 and enqueues", func() {
				So(rec.Code, ShouldEqual, http.StatusAccepted)

				var ack struct {
					Status    string `json:"status"`
					ResultID  string `json:"result_id"`
					Duplicate bool   `json:"duplicate"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &ack), ShouldBeNil)
				So(ack.Status, ShouldEqual, "accepted")
				So(ack.ResultID, ShouldEqual, "r1")
				So(ack.Duplicate, ShouldBeFalse)
				So(deps.enqueued, ShouldHaveLength, 1)
				So(deps.enqueued[0].Time, ShouldEqual, "35.15")
			})
		})

		Convey("When posting a no-time sentinel", func() {
			rec := post(`{"result_id":"r2","event_label":"50 FR SCY","date":"2025-07-12","time":"DQ"}`)

			Convey("Then the sentinel passes validation", func() {
				So(rec.Code, ShouldEqual, http.StatusAccepted)
				So(deps.enqueued, ShouldHaveLength, 1)
			})
		})

		Convey("When posting without a result id", func() {
			rec := post(`{"event_label":"50 FR SCY","date":"2025-07-11","time":"35.15"}`)

			Convey("Then the server assigns one", func() {
				So(rec.Code, ShouldEqual, http.StatusAccepted)

				var ack struct {
					ResultID string `json:"result_id"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &ack), ShouldBeNil)
				So(ack.ResultID, ShouldNotBeEmpty)
			})
		})

		Convey("When re-posting a known result id", func() {
			deps.known["r1"] = true
			rec := post(`{"result_id":"r1","event_label":"50 FR SCY","date":"2025-07-11","time":"35.15"}`)

			Convey("Then the ack flags the duplicate but still enqueues", func() {
				So(rec.Code, ShouldEqual, http.StatusAccepted)

				var ack struct {
					Duplicate bool `json:"duplicate"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &ack), ShouldBeNil)
				So(ack.Duplicate, ShouldBeTrue)
				So(deps.enqueued, ShouldHaveLength, 1)
			})
		})

		Convey("When the payload is invalid", func() {
			cases := []string{
				`{"event_label":"","date":"2025-07-11","time":"35.15"}`,
				`{"event_label":"50 FR SCY","date":"","time":"35.15"}`,
				`{"event_label":"50 FR SCY","date":"July 11","time":"35.15"}`,
				`{"event_label":"50 FR SCY","date":"2025-07-11","time":"abc"}`,
				`not json`,
			}
			for _, body := range cases {
				So(post(body).Code, ShouldEqual, http.StatusBadRequest)
			}
			So(deps.enqueued, ShouldBeEmpty)
		})

		Convey("When the queue refuses the result", func() {
			deps.refuseEnqueue = true
			rec := post(`{"result_id":"r9","event_label":"50 FR SCY","date":"2025-07-11","time":"35.15"}`)

			So(rec.Code, ShouldEqual, http.StatusTooManyRequests)
		})
	})
}

func TestGetResults(t *testing.T) {
	Convey("Given stored results", t, func() {
		seconds := 35.15
		deps := &mockDeps{
			results: []model.Result{
				{ResultID: "r1", EventLabel: "50 FR SCY", Date: time.Date(2025, 7, 11, 0, 0, 0, 0, time.UTC), TimeSeconds: &seconds},
				{ResultID: "r2", EventLabel: "50 FR SCY", Date: time.Date(2025, 7, 12, 0, 0, 0, 0, time.UTC)},
			},
		}
		mux := newTestServer(deps)

		Convey("When listing all results", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/results", nil))

			Convey("Then timed and no-time swims render differently", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var out []map[string]interface{}
				So(json.Unmarshal(rec.Body.Bytes(), &out), ShouldBeNil)
				So(out, ShouldHaveLength, 2)
				So(out[0]["time"], ShouldEqual, "35.15")
				So(out[1]["time"], ShouldBeNil)
			})
		})

		Convey("When filtering by event", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/results?event=400+IM+SCY", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(strings.TrimSpace(rec.Body.String()), ShouldEqual, "[]")
		})
	})
}

func TestGetRecords(t *testing.T) {
	Convey("Given a personal-record table", t, func() {
		deps := &mockDeps{
			records: []api.RecordEntry{
				{
					PersonalRecord: model.PersonalRecord{
						EventLabel:  "50 FR SCY",
						TimeSeconds: 35.15,
						Date:        time.Date(2025, 7, 11, 0, 0, 0, 0, time.UTC),
					},
					TimeText: "35.15",
					AgeGroup: "11-12",
					Standard: standards.TierBB,
					NextTarget: &standards.Target{
						Tier:             standards.TierA,
						ThresholdSeconds: 30.69,
						GapSeconds:       4.46,
					},
				},
			},
		}
		mux := newTestServer(deps)

		Convey("When fetching records", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/records", nil))

			Convey("Then the standings columns serialize", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var out []map[string]interface{}
				So(json.Unmarshal(rec.Body.Bytes(), &out), ShouldBeNil)
				So(out, ShouldHaveLength, 1)
				So(out[0]["standard"], ShouldEqual, "BB")
				So(out[0]["time_text"], ShouldEqual, "35.15")
				next := out[0]["next_target"].(map[string]interface{})
				So(next["tier"], ShouldEqual, "A")
			})
		})
	})
}

func TestGetForecast(t *testing.T) {
	Convey("Given the forecast endpoint", t, func() {
		Convey("When the event has a forecast", func() {
			deps := &mockDeps{
				forecast: &model.Forecast{
					EventLabel:       "50 FR SCY",
					TargetDate:       time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
					PredictedSeconds: 34.20,
					Points:           5,
					Confidence:       model.ConfidenceHigh,
				},
			}
			mux := newTestServer(deps)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/forecast/50%20FR%20SCY?target=2025-12-01", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)

			var out map[string]interface{}
			So(json.Unmarshal(rec.Body.Bytes(), &out), ShouldBeNil)
			So(out["predicted_seconds"], ShouldAlmostEqual, 34.20, 0.0001)
			So(out["confidence"], ShouldEqual, "high")
		})

		Convey("When the event has too little history", func() {
			mux := newTestServer(&mockDeps{})

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/forecast/50%20FR%20SCY?target=2025-12-01", nil))

			Convey("Then the placeholder outcome is 404 insufficient_data", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
				So(rec.Body.String(), ShouldContainSubstring, "insufficient_data")
			})
		})

		Convey("When the target is missing or malformed", func() {
			mux := newTestServer(&mockDeps{})

			for _, path := range []string{
				"/forecast/50%20FR%20SCY",
				"/forecast/50%20FR%20SCY?target=tomorrow",
			} {
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			}
		})
	})
}

func TestClassifyEndpoint(t *testing.T) {
	Convey("Given the standards endpoint", t, func() {
		Convey("When the event has a tier table", func() {
			deps := &mockDeps{
				classification: api.Classification{
					EventLabel:  "50 FR SCY",
					AgeGroup:    "11-12",
					TimeSeconds: 31.20,
					Standard:    standards.TierBB,
				},
			}
			mux := newTestServer(deps)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/standards/50%20FR%20SCY?time=31.20&date=2025-07-11", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)

			var out map[string]interface{}
			So(json.Unmarshal(rec.Body.Bytes(), &out), ShouldBeNil)
			So(out["standard"], ShouldEqual, "BB")
			So(out["age_group"], ShouldEqual, "11-12")
		})

		Convey("When no tier table covers the pair", func() {
			deps := &mockDeps{classifyErr: standards.ErrUnknownStandard}
			mux := newTestServer(deps)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/standards/400%20IM%20SCY?time=5:00.00", nil))

			So(rec.Code, ShouldEqual, http.StatusNotFound)
			So(rec.Body.String(), ShouldContainSubstring, "unknown_standard")
		})

		Convey("When the time query is invalid", func() {
			mux := newTestServer(&mockDeps{})

			for _, path := range []string{
				"/standards/50%20FR%20SCY",          // missing time
				"/standards/50%20FR%20SCY?time=DQ",  // sentinel is not gradable
				"/standards/50%20FR%20SCY?time=abc", // malformed
			} {
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			}
		})
	})
}

func TestGetImprovements(t *testing.T) {
	Convey("Given improvement summaries", t, func() {
		deps := &mockDeps{
			improvements: []model.Improvement{
				{
					EventLabel:   "50 FR SCY",
					FirstSeconds: 36.33,
					LastSeconds:  35.15,
					Seconds:      1.18,
					Percent:      3.25,
					Count:        5,
				},
			},
		}
		mux := newTestServer(deps)

		Convey("When fetching improvements", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/improvements", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)

			var out []map[string]interface{}
			So(json.Unmarshal(rec.Body.Bytes(), &out), ShouldBeNil)
			So(out, ShouldHaveLength, 1)
			So(out[0]["seconds"], ShouldAlmostEqual, 1.18, 0.0001)
		})
	})
}

func TestStats(t *testing.T) {
	Convey("Given the stats endpoint", t, func() {
		mux := newTestServer(&mockDeps{})

		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

		So(rec.Code, ShouldEqual, http.StatusOK)
		So(rec.Body.String(), ShouldContainSubstring, "started")
	})
}
