package storage

import (
	"fmt"

	"github.com/vovakirdan/coinrun/internal/config"
	"github.com/vovakirdan/coinrun/internal/runner"
)

// RecordFromRun converts a finished run into a journal record.
func RecordFromRun(run runner.Run) (RunRecord, error) {
	cfgYAML, err := config.Encode(run.Config)
	if err != nil {
		return RunRecord{}, fmt.Errorf("storage: cannot encode run config: %w", err)
	}

	rec := RunRecord{
		Variant:    run.Variant,
		Player:     run.Player,
		Seed:       run.Seed,
		TickRate:   run.TickRate,
		ConfigYAML: string(cfgYAML),
		Score:      run.Outcome.Score,
		Frames:     run.Outcome.Stats.Frames,
		Coins:      run.Outcome.Stats.CoinsCollected,
		Recycles:   run.Outcome.Stats.PlatformsRecycled,
		Spawns:     run.Outcome.Stats.EnemiesSpawned,
		EndReason:  run.Outcome.EndReason.String(),
	}
	if run.Trace != nil {
		for _, sp := range run.Trace.Spans() {
			rec.Spans = append(rec.Spans, Span{Mask: sp.Mask, Frames: sp.Frames})
		}
	}
	return rec, nil
}

// Run rebuilds a replayable run from a record loaded with LoadRun.
func (r RunRecord) Run() (runner.Run, error) {
	cfg, err := config.Parse([]byte(r.ConfigYAML))
	if err != nil {
		return runner.Run{}, fmt.Errorf("storage: run %s has a bad config: %w", r.ID, err)
	}

	spans := make([]runner.InputSpan, 0, len(r.Spans))
	for _, sp := range r.Spans {
		spans = append(spans, runner.InputSpan{Mask: sp.Mask, Frames: sp.Frames})
	}

	return runner.Run{
		Variant:  r.Variant,
		Player:   r.Player,
		Seed:     r.Seed,
		TickRate: r.TickRate,
		Config:   cfg,
		Trace:    runner.TraceFromSpans(spans),
		Outcome: runner.Outcome{
			Score:     r.Score,
			EndReason: runner.ParseEndReason(r.EndReason),
			Stats: runner.Stats{
				Frames:            r.Frames,
				CoinsCollected:    r.Coins,
				PlatformsRecycled: r.Recycles,
				EnemiesSpawned:    r.Spawns,
			},
		},
	}, nil
}
