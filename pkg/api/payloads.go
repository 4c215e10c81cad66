package api

const Version = "1.0.0"

type RootInfo struct {
	Message string `json:"message"`
	Version string `json:"version"`
	Status  string `json:"status"`
}

type HealthStatus struct {
	Status string `json:"status"`
}

type AgentInfo struct {
	AgentName    string   `json:"agent_name"`
	AgentType    string   `json:"agent_type"`
	Capabilities []string `json:"capabilities"`
}

type errorDetail struct {
	Detail string `json:"detail"`
}

func rootInfo() RootInfo {
	return RootInfo{
		Message: "Welcome to AI-Alpha API",
		Version: Version,
		Status:  "running",
	}
}

func healthStatus() HealthStatus {
	return HealthStatus{Status: "healthy"}
}

func agentInfo() AgentInfo {
	return AgentInfo{
		AgentName: "AI-Alpha",
		AgentType: "General Purpose AI Agent",
		Capabilities: []string{
			"Natural language processing",
			"Task automation",
			"Data analysis",
		},
	}
}
