package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStubServer(t *testing.T, routes map[string]func(http.ResponseWriter)) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		route(w)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func respond(status int, body string) func(http.ResponseWriter) {
	return func(w http.ResponseWriter) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestCheckPassesWhenRequiredKeysArePresent(t *testing.T) {
	srv := newStubServer(t, map[string]func(http.ResponseWriter){
		"/health": respond(http.StatusOK, `{"status":"healthy","uptime":12}`),
	})

	res := NewVerifier(srv.URL).Check(context.Background(), Endpoint{Path: "/health", RequiredKeys: []string{"status"}})

	assert.True(t, res.Passed, res.Reason)
	assert.Equal(t, "/health", res.Endpoint)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Empty(t, res.Reason)
}

func TestCheckFailures(t *testing.T) {
	srv := newStubServer(t, map[string]func(http.ResponseWriter){
		"/missing": respond(http.StatusOK, `{"status":"healthy"}`),
		"/html":    respond(http.StatusOK, `<html></html>`),
		"/error":   respond(http.StatusInternalServerError, `{"status":"broken"}`),
		"/list":    respond(http.StatusOK, `["status"]`),
	})

	tests := []struct {
		name     string
		endpoint Endpoint
		reason   string
	}{
		{"missing key", Endpoint{Path: "/missing", RequiredKeys: []string{"status", "version"}}, "missing expected key 'version' in response"},
		{"invalid json", Endpoint{Path: "/html", RequiredKeys: []string{"status"}}, "invalid JSON response"},
		{"error status", Endpoint{Path: "/error", RequiredKeys: []string{"status"}}, `unexpected status "500 Internal Server Error"`},
		{"not found", Endpoint{Path: "/nope"}, `unexpected status "404 Not Found"`},
		{"not an object", Endpoint{Path: "/list", RequiredKeys: []string{"status"}}, "response is not a JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewVerifier(srv.URL).Check(context.Background(), tt.endpoint)

			assert.False(t, res.Passed)
			assert.Contains(t, res.Reason, tt.reason)
		})
	}
}

func TestCheckAcceptsAnyJSONWithoutRequiredKeys(t *testing.T) {
	srv := newStubServer(t, map[string]func(http.ResponseWriter){
		"/list": respond(http.StatusOK, `[1,2,3]`),
	})

	res := NewVerifier(srv.URL).Check(context.Background(), Endpoint{Path: "/list"})

	assert.True(t, res.Passed, res.Reason)
}

func TestCheckFailsOnNetworkError(t *testing.T) {
	res := NewVerifier(unreachableURL(t)).Check(context.Background(), Endpoint{Path: "/health"})

	assert.False(t, res.Passed)
	assert.NotEmpty(t, res.Reason)
	assert.Zero(t, res.StatusCode)
}

func TestSlowEndpointFailsWithoutStoppingTheRun(t *testing.T) {
	var stalled int32
	slow := stallingServer(t, &stalled)
	fast := newStubServer(t, map[string]func(http.ResponseWriter){
		"/health": respond(http.StatusOK, `{"status":"healthy"}`),
	})

	v := NewVerifier(slow.URL)
	v.Timeout = 50 * time.Millisecond

	endpoints := []Endpoint{{Path: "/"}, {Path: "/api/v1/agent"}}
	summary := v.Run(context.Background(), endpoints, nil)

	require.Equal(t, 2, summary.Total())
	assert.Equal(t, 0, summary.Passed())
	assert.Contains(t, summary.Results[0].Reason, "Client.Timeout exceeded")
	assert.Equal(t, "/api/v1/agent", summary.Results[1].Endpoint)
	assert.EqualValues(t, 2, atomic.LoadInt32(&stalled))

	v.BaseURL = fast.URL
	res := v.Check(context.Background(), Endpoint{Path: "/health", RequiredKeys: []string{"status"}})
	assert.True(t, res.Passed, res.Reason)
}

func TestRunChecksEveryEndpointInOrder(t *testing.T) {
	srv := newStubServer(t, map[string]func(http.ResponseWriter){
		"/a": respond(http.StatusOK, `{"x":1}`),
		"/b": respond(http.StatusBadGateway, `{}`),
		"/c": respond(http.StatusOK, `not json`),
		"/d": respond(http.StatusOK, `{"y":2}`),
	})

	endpoints := []Endpoint{
		{Path: "/a", RequiredKeys: []string{"x"}},
		{Path: "/b"},
		{Path: "/c"},
		{Path: "/d", RequiredKeys: []string{"y"}},
	}

	var observed []string
	summary := NewVerifier(srv.URL).Run(context.Background(), endpoints, func(r Result) {
		observed = append(observed, r.Endpoint)
	})

	require.Equal(t, 4, summary.Total())
	assert.Equal(t, 2, summary.Passed())
	assert.False(t, summary.OK())
	assert.Equal(t, []string{"/b", "/c"}, summary.Failed())
	assert.Equal(t, []string{"/a", "/b", "/c", "/d"}, observed)
}

func TestSummaryOfNoFailuresIsOK(t *testing.T) {
	s := Summary{Results: []Result{{Endpoint: "/", Passed: true}, {Endpoint: "/health", Passed: true}}}

	assert.True(t, s.OK())
	assert.Equal(t, 2, s.Passed())
	assert.Empty(t, s.Failed())
}
