package probe

import (
	"github.com/mittwald/ai-alpha/internal/config"
	"github.com/pkg/errors"
)

var (
	// ErrTimedOut is returned when the service did not become ready within
	// the configured number of attempts.
	ErrTimedOut = errors.New("service did not become ready")

	// ErrChecksFailed is returned when at least one endpoint check failed.
	ErrChecksFailed = errors.New("one or more endpoint checks failed")
)

// Endpoint describes a route and the top-level keys its JSON response must
// contain.
type Endpoint struct {
	Path         string
	RequiredKeys []string
}

// Result is the outcome of checking a single endpoint.
type Result struct {
	Endpoint   string `json:"endpoint"`
	Passed     bool   `json:"passed"`
	Reason     string `json:"reason,omitempty"`
	StatusCode int    `json:"statusCode,omitempty"`
	Body       []byte `json:"-"`
}

type Summary struct {
	Results []Result `json:"results"`
}

func (s Summary) Total() int {
	return len(s.Results)
}

func (s Summary) Passed() int {
	passed := 0
	for i := range s.Results {
		if s.Results[i].Passed {
			passed++
		}
	}
	return passed
}

func (s Summary) OK() bool {
	return s.Passed() == s.Total()
}

// Failed returns the paths of all failed endpoints in check order.
func (s Summary) Failed() []string {
	var failed []string
	for i := range s.Results {
		if !s.Results[i].Passed {
			failed = append(failed, s.Results[i].Endpoint)
		}
	}
	return failed
}

func DefaultEndpoints() []Endpoint {
	return []Endpoint{
		{Path: "/", RequiredKeys: []string{"message", "version", "status"}},
		{Path: "/health", RequiredKeys: []string{"status"}},
		{Path: "/api/v1/agent", RequiredKeys: []string{"agent_name", "agent_type", "capabilities"}},
	}
}

func EndpointsFromConfig(cfg *config.Probe) []Endpoint {
	endpoints := make([]Endpoint, 0, len(cfg.Endpoints))
	for _, e := range cfg.Endpoints {
		endpoints = append(endpoints, Endpoint{
			Path:         e.Path,
			RequiredKeys: append([]string(nil), e.RequiredKeys...),
		})
	}
	return endpoints
}
