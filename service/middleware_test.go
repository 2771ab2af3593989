package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func TestRecoverPanics(t *testing.T) {
	h := recoverPanics(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var e Error
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &e))
	assert.Equal(t, "system error", e.Kind)
}

func TestInstrumentRecordsRouteTemplate(t *testing.T) {
	reg := prometheus.NewRegistry()
	durations := newDurationHistogram()
	reg.MustRegister(durations)
	router := mux.NewRouter()
	router.Use(withRequestID, instrument(zaptest.NewLogger(t), durations))
	router.HandleFunc("/plans/{id}", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "abc", RequestIDFromContext(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	})
	for _, id := range []string{"1", "2"} {
		req := httptest.NewRequest(http.MethodGet, "/plans/"+id, nil)
		req.Header.Set(RequestIDHeader, "abc")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "abc", rr.Header().Get(RequestIDHeader))
	}
	rr := httptest.NewRecorder()
	promhttp.HandlerFor(reg, promhttp.HandlerOpts{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rr.Body.String(), `serql_http_request_duration_seconds_count{code="204",route="/plans/{id}"} 2`)
}
