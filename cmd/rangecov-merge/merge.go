package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rscarson/v8-coverage/internal/logging"
	"github.com/rscarson/v8-coverage/internal/metrics"
	"github.com/rscarson/v8-coverage/internal/rangecov"
)

func newMergeCmd() *cobra.Command {
	var (
		outPath    string
		maxWorkers int
		metricsOn  bool
	)

	cmd := &cobra.Command{
		Use:   "merge <file> [file...]",
		Short: "Merge one or more coverage.json files into one",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if metricsOn || viper.GetBool("metrics.enabled") {
				metrics.Register()
			}
			if v := viper.GetInt("merge.max_workers"); v > 0 && maxWorkers == 0 {
				maxWorkers = v
			}

			processes, err := readCoverageFiles(cmd.Context(), args)
			if err != nil {
				return err
			}

			var opts []rangecov.Option
			if maxWorkers > 0 {
				opts = append(opts, rangecov.WithMaxWorkers(maxWorkers))
			}

			merged, err := rangecov.MergeProcesses(cmd.Context(), processes, opts...)
			if err != nil {
				return fmt.Errorf("merge: %w", err)
			}
			if merged == nil {
				merged = &rangecov.ProcessCov{}
			}

			return writeCoverageFile(outPath, merged)
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: stdout)")
	cmd.Flags().IntVar(&maxWorkers, "max-workers", 0, "bound on concurrent per-URL merges (default: GOMAXPROCS)")
	cmd.Flags().BoolVar(&metricsOn, "metrics", false, "register Prometheus collectors for this run")

	return cmd
}

// readCoverageFiles decodes every path concurrently, bounded by GOMAXPROCS,
// and returns the decoded reports in input order.
func readCoverageFiles(ctx context.Context, paths []string) ([]rangecov.ProcessCov, error) {
	processes := make([]rangecov.ProcessCov, len(paths))
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))

	var (
		errMu     sync.Mutex
		decodeErr error
	)
	for i, path := range paths {
		i, path := i, path
		eg.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				errMu.Lock()
				decodeErr = multierr.Append(decodeErr, fmt.Errorf("open %s: %w", path, err))
				errMu.Unlock()
				return nil
			}
			defer f.Close()

			var p rangecov.ProcessCov
			if err := json.NewDecoder(f).Decode(&p); err != nil {
				errMu.Lock()
				decodeErr = multierr.Append(decodeErr, fmt.Errorf("decode %s: %w", path, err))
				errMu.Unlock()
				return nil
			}
			processes[i] = p
			logging.Logger().Debug("loaded coverage report", zap.String("path", path), zap.Int("scripts", len(p.Result)))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if decodeErr != nil {
		return nil, decodeErr
	}
	return processes, nil
}

func writeCoverageFile(path string, p *rangecov.ProcessCov) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
