package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/mittwald/ai-alpha/internal/config"
	"github.com/mittwald/ai-alpha/pkg/api"
	"github.com/mittwald/ai-alpha/pkg/pidfile"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var (
	listenAddress string
	pidFile       string
	envFile       string
)

func init() {
	rootCmd.AddCommand(serve)
	serve.Flags().StringVarP(&listenAddress, "listen-address", "l", "", "address to listen on, either host:port or unix:///path/to.sock; defaults to $"+config.EnvListenAddress+" or "+config.DefaultListenAddress)
	serve.Flags().StringVar(&pidFile, "pidfile", "", "write the process id to this file")
	serve.Flags().StringVar(&envFile, "env-file", ".env", "load environment variables from this file if it exists")
}

var serve = &cobra.Command{
	Use:   "serve",
	Short: "Start the AI-Alpha API",
	Long:  "This sub-command binds the AI-Alpha API to the configured address and serves it until SIGINT or SIGTERM is received",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadServer(envFile)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("listen-address") {
			cfg.ListenAddress = listenAddress
		}
		if cmd.Flags().Changed("pidfile") {
			cfg.PIDFile = pidFile
		}
		if logLevel == "" {
			if err := applyLogLevel(cfg.LogLevel); err != nil {
				return err
			}
		}

		pidFileHandle := pidfile.New(cfg.PIDFile)
		if err := pidFileHandle.Acquire(); err != nil {
			return err
		}

		defer func() {
			if err := pidFileHandle.Release(); err != nil {
				log.WithField("path", pidFileHandle.Path()).Errorf("error while cleaning up the pid file: %s", err)
			}
		}()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		return runServer(ctx, api.NewApi(cfg.ListenAddress))
	},
}

// runServer serves until ctx is done, then shuts the server down gracefully.
func runServer(ctx context.Context, server *api.Api) error {
	errs := make(chan error, 1)
	go func() {
		errs <- server.Start()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		log.Info("received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("forced shutdown")
		return err
	}

	if err := <-errs; err != nil {
		return err
	}

	log.Info("ai-alpha api stopped without error")
	return nil
}
