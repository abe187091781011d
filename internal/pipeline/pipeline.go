// Package pipeline runs the reconciliation stages over a collection of
// media items. Stages are whole-collection passes: each stage finishes for
// every item before the next begins, and data flows forward only.
package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/reelsort/reelsort/internal/decision"
	"github.com/reelsort/reelsort/internal/media"
	"github.com/reelsort/reelsort/internal/metadata"
	"github.com/reelsort/reelsort/internal/organizer"
	"github.com/reelsort/reelsort/internal/probe"
	"github.com/reelsort/reelsort/internal/report"
	"github.com/reelsort/reelsort/internal/scanner"
	"github.com/reelsort/reelsort/internal/scoring"
)

// Pipeline wires the stages together and carries items through them.
type Pipeline struct {
	scanner  *scanner.Scanner
	resolver *metadata.Resolver
	scorer   *scoring.Scorer
	engine   *decision.Engine
	executor *organizer.Executor
	workers  int
	logger   zerolog.Logger
}

// Options configures a Pipeline.
type Options struct {
	SourceDir string
	Prober    probe.Prober
	Resolver  *metadata.Resolver
	Scorer    *scoring.Scorer
	Engine    *decision.Engine
	Executor  *organizer.Executor
	// Workers bounds concurrent metadata lookups. Zero means sequential.
	Workers int
	Logger  zerolog.Logger
}

// New creates a Pipeline from pre-built stages.
func New(opts Options) *Pipeline {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	return &Pipeline{
		scanner:  scanner.New(opts.SourceDir, opts.Prober, opts.Logger),
		resolver: opts.Resolver,
		scorer:   opts.Scorer,
		engine:   opts.Engine,
		executor: opts.Executor,
		workers:  workers,
		logger:   opts.Logger.With().Str("component", "pipeline").Logger(),
	}
}

// Run executes all stages and returns the populated report. Per-item
// failures are recorded on the item; only scan errors and context
// cancellation abort the run.
func (p *Pipeline) Run(ctx context.Context, rep *report.Report) error {
	items, err := p.scanner.ScanAndGroup(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	p.logger.Info().Int("items", len(items)).Msg("scan complete")

	if err := p.identifyAndScore(ctx, items); err != nil {
		return err
	}

	for _, item := range items {
		p.engine.Decide(item)
	}

	for _, item := range items {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		p.executor.Execute(item)
	}

	for _, item := range items {
		rep.Add(item)
	}
	return nil
}

// identifyAndScore runs metadata resolution and scoring per item. Items are
// independent so lookups run concurrently, bounded by the worker count.
// Scoring happens on the same goroutine as the item's resolution, so no
// cross-item state is shared.
func (p *Pipeline) identifyAndScore(ctx context.Context, items []*media.Item) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for _, item := range items {
		item := item
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			p.resolver.Identify(gctx, item)
			p.scorer.Score(item)
			return nil
		})
	}
	return g.Wait()
}
