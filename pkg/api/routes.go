package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

func (api *Api) registerRoutes() {
	api.RegisterHandler(api.router, "/", []string{http.MethodGet}, staticJSON(http.StatusOK, rootInfo()))
	api.RegisterHandler(api.router, "/health", []string{http.MethodGet}, staticJSON(http.StatusOK, healthStatus()))
	api.RegisterHandler(api.router, "/openapi.json", []string{http.MethodGet}, staticJSON(http.StatusOK, openAPI()))

	v1 := api.router.PathPrefix("/api/v1").Subrouter()
	api.RegisterHandler(v1, "/agent", []string{http.MethodGet}, staticJSON(http.StatusOK, agentInfo()))

	api.router.NotFoundHandler = staticJSON(http.StatusNotFound, errorDetail{Detail: "Not Found"})
	api.router.MethodNotAllowedHandler = staticJSON(http.StatusMethodNotAllowed, errorDetail{Detail: "Method Not Allowed"})
}

// staticJSON encodes body once; every request is answered with the same bytes.
func staticJSON(status int, body interface{}) http.HandlerFunc {
	out, err := json.Marshal(body)
	if err != nil {
		panic(fmt.Sprintf("static payload %T cannot be encoded: %s", body, err))
	}

	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, status, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, out []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(out)
}
