package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/mittwald/ai-alpha/internal/helper"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultListenAddress = ":8000"
	DefaultLogLevel      = "info"

	EnvListenAddress = "AI_ALPHA_LISTEN_ADDRESS"
	EnvLogLevel      = "AI_ALPHA_LOG_LEVEL"
	EnvPIDFile       = "AI_ALPHA_PIDFILE"
)

// LoadServer builds the service configuration from the environment. When
// envFile is set, it is loaded first; variables that are already present in
// the environment are not overridden by it.
func LoadServer(envFile string) (*Server, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !os.IsNotExist(errors.Cause(err)) {
				return nil, errors.Wrapf(err, "failed to load env file %q", envFile)
			}
			log.WithField("file", envFile).Debug("env file not found, skipping")
		}
	}

	return &Server{
		ListenAddress: helper.SetDefaultStringIfEmpty(helper.ResolveEnv(os.Getenv(EnvListenAddress)), DefaultListenAddress, "listenAddress", "server"),
		LogLevel:      helper.SetDefaultStringIfEmpty(helper.ResolveEnv(os.Getenv(EnvLogLevel)), DefaultLogLevel, "logLevel", "server"),
		PIDFile:       helper.ResolveEnv(os.Getenv(EnvPIDFile)),
	}, nil
}
