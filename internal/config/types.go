package config

type Endpoint struct {
	Path         string   `hcl:",key"`
	RequiredKeys []string `hcl:"requiredKeys"`
}

// Probe is the content of one or more endpoint files.
type Probe struct {
	Endpoints []Endpoint `hcl:"endpoint"`
}

type Server struct {
	ListenAddress string
	LogLevel      string
	PIDFile       string
}
