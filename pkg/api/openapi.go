package api

// openAPIDocument is the machine-readable description of the routes, served
// at /openapi.json.
type openAPIDocument struct {
	OpenAPI string                          `json:"openapi"`
	Info    openAPIInfo                     `json:"info"`
	Paths   map[string]map[string]operation `json:"paths"`
}

type openAPIInfo struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

type operation struct {
	Summary   string              `json:"summary"`
	Responses map[string]response `json:"responses"`
}

type response struct {
	Description string `json:"description"`
}

func getOperation(summary string) map[string]operation {
	return map[string]operation{
		"get": {
			Summary:   summary,
			Responses: map[string]response{"200": {Description: "Successful Response"}},
		},
	}
}

func openAPI() openAPIDocument {
	return openAPIDocument{
		OpenAPI: "3.1.0",
		Info:    openAPIInfo{Title: "AI-Alpha", Version: Version},
		Paths: map[string]map[string]operation{
			"/":             getOperation("Root"),
			"/health":       getOperation("Health Check"),
			"/api/v1/agent": getOperation("Agent Info"),
		},
	}
}
