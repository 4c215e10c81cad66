package cmd

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/mittwald/ai-alpha/internal/config"
	"github.com/mittwald/ai-alpha/pkg/probe"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const DefaultBaseURL = "http://localhost:8000"

type probeFlags struct {
	baseURL        string
	endpointsFile  string
	attempts       int
	interval       time.Duration
	pollTimeout    time.Duration
	requestTimeout time.Duration
	verbose        bool
	json           bool
}

var probeOpts probeFlags

func init() {
	rootCmd.AddCommand(probeCmd)
	resetProbeFlags()
}

func resetProbeFlags() {
	probeOpts = probeFlags{}
	probeCmd.ResetFlags()

	flags := probeCmd.Flags()
	flags.StringVarP(&probeOpts.baseURL, "base-url", "u", DefaultBaseURL, "base URL of the AI-Alpha API to verify")
	flags.StringVarP(&probeOpts.endpointsFile, "endpoints-file", "f", "", "HCL file or directory with endpoint definitions; the built-in endpoints are used when empty")
	flags.IntVar(&probeOpts.attempts, "attempts", probe.DefaultAttempts, "number of readiness attempts before giving up")
	flags.DurationVar(&probeOpts.interval, "interval", probe.DefaultInterval, "delay between readiness attempts")
	flags.DurationVar(&probeOpts.pollTimeout, "poll-timeout", probe.DefaultPollTimeout, "timeout of a single readiness attempt")
	flags.DurationVar(&probeOpts.requestTimeout, "request-timeout", probe.DefaultRequestTimeout, "timeout of a single endpoint check")
	flags.BoolVarP(&probeOpts.verbose, "verbose", "v", false, "print response bodies")
	flags.BoolVar(&probeOpts.json, "json", false, "print the result as JSON")
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Wait for a running AI-Alpha API and verify its endpoints",
	Long: "This sub-command polls the API until it answers with 200 OK, then checks every endpoint once for a " +
		"successful status, a JSON body and the expected keys. It exits with 0 if all checks passed and 1 otherwise.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := probeOpts.options()
		if err != nil {
			return err
		}

		format := probe.FormatText
		if probeOpts.json {
			format = probe.FormatJSON
		}
		reporter := probe.NewReporter(cmd.OutOrStdout(), format, probeOpts.verbose)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		_, err = probe.Run(ctx, opts, reporter)
		return err
	},
}

func (f probeFlags) options() (probe.Options, error) {
	if f.attempts < 1 {
		return probe.Options{}, errors.Errorf("--attempts must be at least 1, got %d", f.attempts)
	}

	opts := probe.DefaultOptions(f.baseURL)
	opts.Attempts = f.attempts
	opts.Interval = f.interval
	opts.PollTimeout = f.pollTimeout
	opts.RequestTimeout = f.requestTimeout

	if f.endpointsFile != "" {
		cfg := config.Probe{}
		if err := cfg.GenerateFromPath(f.endpointsFile); err != nil {
			return probe.Options{}, errors.Wrap(err, "failed to load endpoint definitions")
		}
		opts.Endpoints = probe.EndpointsFromConfig(&cfg)
	}

	return opts, nil
}
