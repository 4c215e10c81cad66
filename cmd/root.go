package cmd

import (
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"os"

	"github.com/mittwald/ai-alpha/internal/config"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	enableProfile bool
	logLevel      string
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&enableProfile, "profile", false, "enable pprof http server")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error); defaults to $"+config.EnvLogLevel+" or info")
}

var rootCmd = &cobra.Command{
	Use:           "ai-alpha",
	Short:         "AI-Alpha - AI agent API",
	Long:          "AI-Alpha serves a small, versioned agent information API and ships a probe to verify a running installation",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := applyLogLevel(logLevel); err != nil {
			return err
		}

		if enableProfile {
			go startProfiler()
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func applyLogLevel(level string) error {
	if level == "" {
		level = os.Getenv(config.EnvLogLevel)
	}
	if level == "" {
		level = config.DefaultLogLevel
	}

	parsed, err := log.ParseLevel(level)
	if err != nil {
		return errors.Wrapf(err, "invalid log level %q", level)
	}
	log.SetLevel(parsed)
	return nil
}

func startProfiler() {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		log.Errorf("pprof server failed to listen: %v", err)
		return
	}
	log.Infof("Starting pprof server on http://%s/debug/pprof/", listener.Addr().String())
	if err := http.Serve(listener, mux); err != nil {
		log.Errorf("pprof server error: %v", err)
	}
}

func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		return
	}

	if shouldRenderError(err) {
		fmt.Fprintln(os.Stderr, renderError(err))
	}
	os.Exit(1)
}
