package rangecov

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/rscarson/v8-coverage/internal/logging"
	"github.com/rscarson/v8-coverage/internal/metrics"
	"github.com/rscarson/v8-coverage/internal/util"
)

// MergeProcesses groups scripts across all processes by URL and merges
// each group independently, then renumbers ScriptID as the URL's 0-based
// ordinal (ascending). It returns nil for an empty input. For a single
// input it normalizes and returns it unchanged in meaning, without
// grouping or renumbering.
//
// Per-URL merges are independent and are dispatched across a bounded
// worker pool (see WithMaxWorkers); one group failing with an
// InvariantViolation does not stop the others from completing; all such
// failures are returned together.
func MergeProcesses(ctx context.Context, processes []ProcessCov, opts ...Option) (*ProcessCov, error) {
	if len(processes) == 0 {
		return nil, nil
	}
	if len(processes) == 1 {
		out := processes[0]
		if err := deepNormalizeProcessCov(&out); err != nil {
			return nil, err
		}
		return &out, nil
	}

	cfg := newConfig(opts...)

	mergeID, err := util.New()
	if err != nil {
		mergeID = "unavailable"
	}
	log := logging.Logger().With(zap.String("merge_id", mergeID))

	var order []string
	groups := map[string][]ScriptCov{}
	for _, p := range processes {
		for _, s := range p.Result {
			if _, seen := groups[s.URL]; !seen {
				order = append(order, s.URL)
			}
			groups[s.URL] = append(groups[s.URL], s)
		}
	}
	sort.Strings(order)

	log.Debug("merging processes", zap.Int("process_count", len(processes)), zap.Int("url_count", len(order)))

	results := make([]ScriptCov, len(order))
	eg, _ := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.maxWorkers)

	var (
		errMu    sync.Mutex
		mergeErr error
	)
	for i, url := range order {
		i, url := i, url
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			merged, err := MergeScripts(groups[url])
			if err != nil {
				errMu.Lock()
				mergeErr = multierr.Append(mergeErr, fmt.Errorf("url %q: %w", url, err))
				errMu.Unlock()
				return nil
			}
			merged.ScriptID = strconv.Itoa(i)
			results[i] = *merged

			metrics.ObserveScriptMergeDuration(time.Since(start))
			metrics.IncScriptMerges()
			log.Debug("merged script group", zap.String("url", url), zap.String("script_id", merged.ScriptID))
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if mergeErr != nil {
		return nil, mergeErr
	}

	metrics.IncProcessMerges()
	return &ProcessCov{Result: results}, nil
}

// deepNormalizeProcessCov normalizes every script in p in place and
// re-sorts them by URL.
func deepNormalizeProcessCov(p *ProcessCov) error {
	for i := range p.Result {
		if err := deepNormalizeScriptCov(&p.Result[i]); err != nil {
			return err
		}
	}
	sort.Slice(p.Result, func(i, j int) bool { return p.Result[i].URL < p.Result[j].URL })
	return nil
}
