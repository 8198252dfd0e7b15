package runner

import (
	"math/rand"

	"github.com/vovakirdan/coinrun/internal/config"
	"github.com/vovakirdan/coinrun/internal/core"
)

// InputSpan is a run of consecutive frames with the same input mask.
type InputSpan struct {
	Mask   uint8
	Frames int
}

// Trace records the input of every simulated frame of a run, run-length encoded.
type Trace struct {
	spans  []InputSpan
	frames int
}

// NewTrace creates an empty trace.
func NewTrace() *Trace {
	return &Trace{}
}

// TraceFromSpans rebuilds a trace from stored spans. Empty spans are dropped
// and adjacent equal masks are merged.
func TraceFromSpans(spans []InputSpan) *Trace {
	t := NewTrace()
	for _, sp := range spans {
		for i := 0; i < sp.Frames; i++ {
			t.Add(sp.Mask)
		}
	}
	return t
}

// Add appends one frame.
func (t *Trace) Add(mask uint8) {
	t.frames++
	if n := len(t.spans); n > 0 && t.spans[n-1].Mask == mask {
		t.spans[n-1].Frames++
		return
	}
	t.spans = append(t.spans, InputSpan{Mask: mask, Frames: 1})
}

// Frames returns the number of recorded frames.
func (t *Trace) Frames() int {
	return t.frames
}

// Spans returns a copy of the encoded spans.
func (t *Trace) Spans() []InputSpan {
	return append([]InputSpan(nil), t.spans...)
}

// Each calls fn for every recorded frame in order until fn returns false.
func (t *Trace) Each(fn func(mask uint8) bool) {
	for _, sp := range t.spans {
		for i := 0; i < sp.Frames; i++ {
			if !fn(sp.Mask) {
				return
			}
		}
	}
}

// Outcome summarizes a finished (or abandoned) run.
type Outcome struct {
	Score     int
	EndReason EndReason
	Stats     Stats
}

// Run is everything needed to replay a run and check its result.
type Run struct {
	Variant  string
	Player   string
	Seed     int64
	TickRate int
	Config   config.RunnerConfig
	Trace    *Trace
	Outcome  Outcome
}

// newRunRand returns the random source a run with the given seed uses.
func newRunRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// frameMillis is the frame duration Game uses for the given tick rate.
func frameMillis(tickRate int) float64 {
	return core.RuntimeConfig{TickRate: tickRate}.FrameMillis()
}

// Replay re-simulates a run from its seed and input trace. The clock starts
// at zero and advances by one frame before every update, as in Game.
func Replay(cfg config.RunnerConfig, seed int64, tickRate int, trace *Trace) Outcome {
	s := NewSession(cfg, newRunRand(seed))
	s.Start()

	dt := frameMillis(tickRate)
	now := 0.0
	trace.Each(func(mask uint8) bool {
		s.SetInput(InputFromMask(mask))
		now += dt
		s.Update(now)
		return s.Phase() == PhaseRunning
	})

	return Outcome{
		Score:     s.Score(),
		EndReason: s.EndReason(),
		Stats:     s.Stats(),
	}
}

// Verify replays the run and reports whether the stored outcome is reproduced.
func (r Run) Verify() (Outcome, bool) {
	got := Replay(r.Config, r.Seed, r.TickRate, r.Trace)
	return got, got == r.Outcome
}
