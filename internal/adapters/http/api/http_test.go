package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/subjectscore/internal/adapters/http/api"
	"github.com/okian/subjectscore/internal/domain/scoring"
	"github.com/okian/subjectscore/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
)

// mockDeps backs the handlers with a real scorer and a configurable
// batch cap.
type mockDeps struct {
	scorer   *scoring.RuleScorer
	maxBatch int
}

func newMockDeps(maxBatch int) *mockDeps {
	return &mockDeps{
		scorer:   scoring.NewRuleScorer(),
		maxBatch: maxBatch,
	}
}

func (m *mockDeps) ScoreBatch(ctx context.Context, subjects []string) types.BatchResult {
	return m.scorer.ScoreBatch(ctx, subjects)
}

func (m *mockDeps) MaxBatchSize() int {
	return m.maxBatch
}

type mockStats struct{}

func (m *mockStats) GetStats() map[string]interface{} {
	return map[string]interface{}{"started": true}
}

func newTestMux(maxBatch int) *http.ServeMux {
	mux := http.NewServeMux()
	server := api.NewServer(newMockDeps(maxBatch), &mockStats{})
	server.Register(context.Background(), mux)
	return mux
}

func TestScoreEndpoint(t *testing.T) {
	Convey("Given the API routes", t, func() {
		mux := newTestMux(100)

		Convey("When posting a valid batch", func() {
			body := `{"subject_lines": ["Hi", "WINNER!! FREE FREE FREE"]}`
			req := httptest.NewRequest(http.MethodPost, "/subject-line-scorer", strings.NewReader(body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it returns the batch result", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var result types.BatchResult
				So(json.Unmarshal(rec.Body.Bytes(), &result), ShouldBeNil)
				So(result.Results, ShouldHaveLength, 2)
				So(result.Results[0].Score, ShouldEqual, 100)
				So(result.BestSubject, ShouldEqual, "Hi")
			})

			Convey("And it assigns a request id", func() {
				So(rec.Header().Get("X-Request-ID"), ShouldNotBeEmpty)
			})
		})

		Convey("When posting an empty batch", func() {
			body := `{"subject_lines": []}`
			req := httptest.NewRequest(http.MethodPost, "/subject-line-scorer", strings.NewReader(body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it returns an empty result", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, `"results":[]`)
				So(rec.Body.String(), ShouldContainSubstring, `"best_subject":""`)
			})
		})

		Convey("When posting null entries", func() {
			body := `{"subject_lines": [null, "ok"]}`
			req := httptest.NewRequest(http.MethodPost, "/subject-line-scorer", strings.NewReader(body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then nulls coerce to empty subjects", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var result types.BatchResult
				So(json.Unmarshal(rec.Body.Bytes(), &result), ShouldBeNil)
				So(result.Results[0].Warnings, ShouldResemble, []string{"Empty subject line"})
				So(result.BestSubject, ShouldEqual, "ok")
			})
		})

		Convey("When the subject_lines field is missing", func() {
			req := httptest.NewRequest(http.MethodPost, "/subject-line-scorer", strings.NewReader(`{}`))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it rejects the request", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "bad_request")
			})
		})

		Convey("When the body is not JSON", func() {
			req := httptest.NewRequest(http.MethodPost, "/subject-line-scorer", strings.NewReader("not json"))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it rejects the request", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})

		Convey("When the batch exceeds the cap", func() {
			mux := newTestMux(1)
			body := `{"subject_lines": ["a", "b"]}`
			req := httptest.NewRequest(http.MethodPost, "/subject-line-scorer", strings.NewReader(body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it rejects the request with a dedicated code", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				So(rec.Body.String(), ShouldContainSubstring, "batch_too_large")
			})
		})

		Convey("When using the wrong method", func() {
			req := httptest.NewRequest(http.MethodGet, "/subject-line-scorer", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it is not found", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
			})
		})
	})
}

func TestToolEndpoint(t *testing.T) {
	Convey("Given the API routes", t, func() {
		mux := newTestMux(100)

		Convey("When posting a wrapped batch", func() {
			body := `{"parameters": {"subject_lines": ["Hi", "free cash"]}}`
			req := httptest.NewRequest(http.MethodPost, "/tools/subject-line-scorer", strings.NewReader(body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it behaves exactly like the plain endpoint", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var result types.BatchResult
				So(json.Unmarshal(rec.Body.Bytes(), &result), ShouldBeNil)
				So(result.Results, ShouldHaveLength, 2)
				So(result.BestSubject, ShouldEqual, "Hi")
				So(result.Results[1].Warnings, ShouldContain, "Spam term detected: 'free'")
				So(result.Results[1].Warnings, ShouldContain, "Spam term detected: 'cash'")
			})
		})

		Convey("When the parameters envelope is empty", func() {
			req := httptest.NewRequest(http.MethodPost, "/tools/subject-line-scorer", strings.NewReader(`{"parameters": {}}`))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it rejects the request", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			})
		})
	})
}

func TestDiscoveryEndpoint(t *testing.T) {
	Convey("Given the API routes", t, func() {
		mux := newTestMux(100)

		Convey("When fetching the discovery descriptor", func() {
			req := httptest.NewRequest(http.MethodGet, "/discovery", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it describes the scorer tool", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)

				var doc struct {
					Functions []struct {
						Name       string `json:"name"`
						Endpoint   string `json:"endpoint"`
						HTTPMethod string `json:"http_method"`
						Parameters []struct {
							Name     string `json:"name"`
							Type     string `json:"type"`
							Required bool   `json:"required"`
						} `json:"parameters"`
					} `json:"functions"`
				}
				So(json.Unmarshal(rec.Body.Bytes(), &doc), ShouldBeNil)
				So(doc.Functions, ShouldHaveLength, 1)
				So(doc.Functions[0].Name, ShouldEqual, "subject_line_scorer")
				So(doc.Functions[0].Endpoint, ShouldEqual, "/tools/subject-line-scorer")
				So(doc.Functions[0].HTTPMethod, ShouldEqual, http.MethodPost)
				So(doc.Functions[0].Parameters, ShouldHaveLength, 1)
				So(doc.Functions[0].Parameters[0].Name, ShouldEqual, "subject_lines")
				So(doc.Functions[0].Parameters[0].Required, ShouldBeTrue)
			})
		})
	})
}

func TestHealthAndStats(t *testing.T) {
	Convey("Given the API routes", t, func() {
		mux := newTestMux(100)

		Convey("When fetching health", func() {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then it returns the static status", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, `"status":"ok"`)
			})
		})

		Convey("When fetching metrics", func() {
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then the Prometheus registry is served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
			})
		})

		Convey("When fetching stats", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then the provider snapshot is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, `"started":true`)
			})
		})

		Convey("When fetching the dashboard", func() {
			req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			Convey("Then the embedded page is served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "Subject Line Scorer")
			})
		})
	})
}
