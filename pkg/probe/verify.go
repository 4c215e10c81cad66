package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mittwald/ai-alpha/internal/helper"
	log "github.com/sirupsen/logrus"
)

const DefaultRequestTimeout = 5 * time.Second

// Verifier checks endpoints of a running service, each exactly once.
type Verifier struct {
	BaseURL string
	Timeout time.Duration
}

func NewVerifier(baseURL string) *Verifier {
	return &Verifier{
		BaseURL: baseURL,
		Timeout: DefaultRequestTimeout,
	}
}

// Run checks all endpoints in order. A failing endpoint never stops the
// remaining checks. observe, if set, is called with every result as soon as
// it is available.
func (v *Verifier) Run(ctx context.Context, endpoints []Endpoint, observe func(Result)) Summary {
	client := &http.Client{Timeout: v.Timeout}
	summary := Summary{Results: make([]Result, 0, len(endpoints))}

	for _, e := range endpoints {
		result := v.check(ctx, client, e)
		summary.Results = append(summary.Results, result)

		if observe != nil {
			observe(result)
		}
	}

	return summary
}

func (v *Verifier) Check(ctx context.Context, e Endpoint) Result {
	return v.check(ctx, &http.Client{Timeout: v.Timeout}, e)
}

func (v *Verifier) check(ctx context.Context, client *http.Client, e Endpoint) Result {
	urlStr := helper.JoinURL(v.BaseURL, e.Path)
	logger := log.WithFields(log.Fields{"kind": "probe", "endpoint": e.Path, "url": urlStr})

	fail := func(status int, body []byte, format string, args ...interface{}) Result {
		reason := fmt.Sprintf(format, args...)
		logger.WithField("reason", reason).Debug("check failed")
		return Result{Endpoint: e.Path, Passed: false, Reason: reason, StatusCode: status, Body: body}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return fail(0, nil, "invalid request: %s", err)
	}

	res, err := client.Do(req)
	if err != nil {
		return fail(0, nil, "%s", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fail(res.StatusCode, nil, "failed to read response body: %s", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fail(res.StatusCode, body, "unexpected status %q", res.Status)
	}

	var data interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		return fail(res.StatusCode, body, "invalid JSON response - %s", err)
	}

	if len(e.RequiredKeys) > 0 {
		object, ok := data.(map[string]interface{})
		if !ok {
			return fail(res.StatusCode, body, "response is not a JSON object")
		}

		for _, key := range e.RequiredKeys {
			if _, found := object[key]; !found {
				return fail(res.StatusCode, body, "missing expected key '%s' in response", key)
			}
		}
	}

	logger.WithField("status", res.StatusCode).Debug("check passed")
	return Result{Endpoint: e.Path, Passed: true, StatusCode: res.StatusCode, Body: body}
}
