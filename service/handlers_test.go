package service_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brimdata/serql/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

const selectSPO = `{
  "kind": "SelectQuery",
  "select": {"kind": "Select", "elems": [
    {"kind": "ProjectionElem", "expr": {"kind": "Var", "name": "s"}}
  ]},
  "body": {"kind": "QueryBody", "from": [{"kind": "From", "path": {"kind": "PathList", "paths": [
    {"kind": "BasicPath",
     "head": {"kind": "NodeList", "elems": [{"kind": "Var", "name": "s"}]},
     "tail": {"kind": "BasicTail",
              "edge": {"kind": "Var", "name": "p"},
              "node": {"kind": "NodeList", "elems": [{"kind": "Var", "name": "o"}]}}}
  ]}}]}
}`

const nullQuery = `{
  "kind": "SelectQuery",
  "select": {"kind": "Select", "elems": [
    {"kind": "ProjectionElem", "expr": {"kind": "Null"}, "alias": "x"}
  ]}
}`

func TestCompileJSON(t *testing.T) {
	_, srv := newCore(t, service.Config{})
	res, body := post(t, srv.URL+"/compile", selectSPO, "")
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Equal(t, service.MediaTypeJSON, res.Header.Get("Content-Type"))
	assert.NotEmpty(t, res.Header.Get(service.RequestIDHeader))
	var out struct {
		Plan struct {
			Kind string `json:"kind"`
		} `json:"plan"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, "Projection", out.Plan.Kind)
}

func TestCompileText(t *testing.T) {
	_, srv := newCore(t, service.Config{})
	res, body := post(t, srv.URL+"/compile", selectSPO, service.MediaTypeText)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.True(t, strings.HasPrefix(body, "Projection s\n"), body)
	assert.Contains(t, body, "StatementPattern ?s ?p ?o")
}

func TestCompileTextQueryParam(t *testing.T) {
	_, srv := newCore(t, service.Config{})
	res, body := post(t, srv.URL+"/compile?text=true", selectSPO, "")
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.True(t, strings.HasPrefix(res.Header.Get("Content-Type"), service.MediaTypeText))
	assert.True(t, strings.HasPrefix(body, "Projection s\n"), body)

	res, body = post(t, srv.URL+"/compile?text=false", selectSPO, "")
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Equal(t, service.MediaTypeJSON, res.Header.Get("Content-Type"))

	res, body = post(t, srv.URL+"/compile?text=maybe", selectSPO, "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	var e service.Error
	require.NoError(t, json.Unmarshal([]byte(body), &e))
	assert.Equal(t, "invalid operation", e.Kind)
	assert.Contains(t, e.Message, `invalid query param "text"`)
}

func TestCompileErrors(t *testing.T) {
	_, srv := newCore(t, service.Config{})

	res, body := post(t, srv.URL+"/compile", nullQuery, "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	var e service.Error
	require.NoError(t, json.Unmarshal([]byte(body), &e))
	assert.Equal(t, "malformed query", e.Kind)
	assert.Contains(t, e.Message, "use BOUND(...) instead")

	res, _ = post(t, srv.URL+"/compile", `{"kind": "Bogus"}`, "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, body = post(t, srv.URL+"/compile", `{"kind": "SelectQuery", "select": {"kind": "Select"}, "body": {"kind": "QueryBody", "from": [{"kind": "From", "path": {"kind": "BasicPath"}}]}}`, "")
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode, body)
}

func TestStatusAndVersion(t *testing.T) {
	_, srv := newCore(t, service.Config{Version: "v1.2.3"})
	post(t, srv.URL+"/compile", selectSPO, "")

	var status service.StatusResponse
	get(t, srv.URL+"/status", &status)
	assert.Equal(t, service.StatusResponse{Ok: true, CacheEntries: 1, CompilesPerMinute: 1}, status)

	var version service.VersionResponse
	get(t, srv.URL+"/version", &version)
	assert.Equal(t, "v1.2.3", version.Version)
}

func TestMetrics(t *testing.T) {
	_, srv := newCore(t, service.Config{})
	post(t, srv.URL+"/compile", selectSPO, "")
	post(t, srv.URL+"/compile", selectSPO, "")
	res, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), "serql_plan_cache_hits_total 1")
	assert.Contains(t, string(b), "serql_plan_cache_misses_total 1")
	assert.Contains(t, string(b), `serql_http_request_duration_seconds_count{code="200",route="/compile"} 2`)
}

func TestCacheDisabled(t *testing.T) {
	_, srv := newCore(t, service.Config{CacheSize: -1})
	post(t, srv.URL+"/compile", selectSPO, "")
	var status service.StatusResponse
	get(t, srv.URL+"/status", &status)
	assert.Equal(t, 0, status.CacheEntries)
}

func TestRequestIDPassthrough(t *testing.T) {
	_, srv := newCore(t, service.Config{})
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/version", nil)
	require.NoError(t, err)
	req.Header.Set(service.RequestIDHeader, "abc")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, "abc", res.Header.Get(service.RequestIDHeader))
}

func newCore(t *testing.T, conf service.Config) (*service.Core, *httptest.Server) {
	if conf.Logger == nil {
		conf.Logger = zaptest.NewLogger(t, zaptest.Level(zap.WarnLevel))
	}
	conf.Registry = prometheus.NewRegistry()
	core, err := service.NewCore(context.Background(), conf)
	require.NoError(t, err)
	srv := httptest.NewServer(core)
	t.Cleanup(srv.Close)
	return core, srv
}

func post(t *testing.T, url, body, accept string) (*http.Response, string) {
	req, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", service.MediaTypeJSON)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(b)
}

func get(t *testing.T, url string, v interface{}) {
	res, err := http.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NoError(t, json.NewDecoder(res.Body).Decode(v))
}
