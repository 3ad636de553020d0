// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr/funcr"
	"github.com/hashicorp/go-multierror"

	"github.com/imamik/nfsensor/internal/config"
	"github.com/imamik/nfsensor/internal/metrics"
	"github.com/imamik/nfsensor/internal/platform/prism"
	"github.com/imamik/nfsensor/internal/platform/s3"
	"github.com/imamik/nfsensor/internal/provisioning"
	"github.com/imamik/nfsensor/internal/report"
)

// Log formats accepted by --log-format.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// ErrAborted is returned when the operator declines the confirmation prompt.
var ErrAborted = errors.New("aborted by user")

// Options holds the flags shared by every stage command.
type Options struct {
	ConfigPath  string
	LogFormat   string
	ReportFile  string
	MetricsFile string
	Yes         bool
	Test        bool
}

// Factory function variables - can be replaced in tests.
var (
	loadConfig = config.Load

	newPrismClient = func(cfg *config.Config, rec *metrics.Recorder, readOnly bool) prism.PrismManager {
		opts := []prism.ClientOption{prism.WithMetrics(rec)}
		if readOnly {
			opts = append(opts, prism.WithReadOnly())
		}
		return prism.NewRealClient(cfg, opts...)
	}

	newObjectStore = func(ctx context.Context, cfg config.S3Config) (report.ObjectStore, error) {
		client, err := s3.NewClient(ctx, cfg.Endpoint, cfg.Region, cfg.AccessKey, cfg.SecretKey)
		if err != nil {
			return nil, err
		}
		return client, nil
	}

	confirm       = confirmPrompt
	isInteractive = isInteractiveTTY
	styledOutput  = isStyledTTY

	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// stageRun describes one invocation of a stage.
type stageRun struct {
	phase provisioning.Phase
	// prompt is shown before a mutating run on an interactive terminal.
	prompt string
}

// runStage loads the configuration, connects, runs the stage and publishes
// its report. Per-item failures make the returned error non-nil once every
// output has been written.
func runStage(ctx context.Context, opts Options, run stageRun) error {
	observer, err := newObserver(opts.LogFormat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	rec := metrics.New()
	client := newPrismClient(cfg, rec, opts.Test)
	if err := client.Connect(ctx); err != nil {
		return err
	}
	observer.Printf("Connected to Prism Central at %s", cfg.Endpoint())

	if !opts.Test && !opts.Yes && isInteractive() {
		ok, err := confirm(ctx, run.prompt)
		if err != nil {
			return fmt.Errorf("confirmation failed: %w", err)
		}
		if !ok {
			return ErrAborted
		}
	}

	rep := provisioning.NewReport(run.phase.Name(), opts.Test, rec)
	pCtx := provisioning.NewContext(ctx, cfg, client, rep)
	pCtx.Observer = observer

	runErr := provisioning.RunPhases(pCtx, []provisioning.Phase{run.phase})
	if errors.Is(runErr, provisioning.ErrNoChainsFound) {
		observer.Printf("%v; nothing to do", runErr)
		runErr = nil
	}

	fmt.Fprint(stdout, renderReport(rep, styledOutput()))

	var result *multierror.Error
	if runErr != nil {
		result = multierror.Append(result, runErr)
	} else if err := rep.Err(); err != nil {
		result = multierror.Append(result, fmt.Errorf("%d item(s) failed: %w", len(rep.Failures()), err))
	}
	if err := publish(ctx, opts, cfg, rep, rec, observer); err != nil {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

// publish writes the report file, the metrics textfile and the S3 copy.
func publish(ctx context.Context, opts Options, cfg *config.Config, rep *provisioning.Report, rec *metrics.Recorder, observer provisioning.Observer) error {
	var result *multierror.Error

	if opts.ReportFile != "" {
		if err := report.WriteFile(opts.ReportFile, rep); err != nil {
			result = multierror.Append(result, err)
		} else {
			observer.Printf("Report written to %s", opts.ReportFile)
		}
	}

	if opts.MetricsFile != "" {
		if err := rec.WriteTextfile(opts.MetricsFile); err != nil {
			result = multierror.Append(result, fmt.Errorf("failed to write metrics to %s: %w", opts.MetricsFile, err))
		}
	}

	if cfg.Report.S3.Enabled() {
		store, err := newObjectStore(ctx, cfg.Report.S3)
		if err != nil {
			return multierror.Append(result, err).ErrorOrNil()
		}
		key, err := report.Upload(ctx, store, cfg.Report.S3, rep)
		if err != nil {
			result = multierror.Append(result, err)
		} else {
			observer.Printf("Report uploaded to s3://%s/%s", cfg.Report.S3.Bucket, key)
		}
	}

	return result.ErrorOrNil()
}

// newObserver builds the observer for --log-format.
func newObserver(format string) (provisioning.Observer, error) {
	switch format {
	case LogFormatText, "":
		return provisioning.NewConsoleObserver(), nil
	case LogFormatJSON:
		logger := funcr.NewJSON(func(obj string) {
			fmt.Fprintln(stderr, obj)
		}, funcr.Options{LogTimestamp: true})
		return provisioning.NewLogrObserver(logger), nil
	default:
		return nil, &config.ConfigurationError{Field: "--log-format", Reason: fmt.Sprintf("must be %s or %s, got %q", LogFormatText, LogFormatJSON, format)}
	}
}
