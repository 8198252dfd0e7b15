package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchBuiltin(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults should parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultRunnerConfig()) {
		t.Errorf("embedded YAML and DefaultRunnerConfig() differ:\n%+v\n%+v", cfg, DefaultRunnerConfig())
	}
}

func TestParsePartialOverride(t *testing.T) {
	data := []byte(`
physics:
  gravity: 0.8
recycle:
  avoid_overlap_on_recycle: true
`)
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if cfg.Physics.Gravity != 0.8 {
		t.Errorf("gravity = %f, expected 0.8", cfg.Physics.Gravity)
	}
	if !cfg.Recycle.AvoidOverlap {
		t.Error("avoid_overlap_on_recycle should be true")
	}
	// Untouched values keep their defaults
	if cfg.Physics.JumpPower != 10 {
		t.Errorf("jump_power = %f, expected default 10", cfg.Physics.JumpPower)
	}
	if len(cfg.Platforms) != 4 {
		t.Errorf("platform layout should be kept, got %d platforms", len(cfg.Platforms))
	}
}

func TestParseEmptyDocument(t *testing.T) {
	cfg, err := Parse([]byte("# nothing here\n"))
	if err != nil {
		t.Fatalf("comment-only document should parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultRunnerConfig()) {
		t.Error("empty document should yield defaults")
	}
}

func TestParseRejectsUnknownFields(t *testing.T) {
	if _, err := Parse([]byte("physics:\n  gravty: 1\n")); err == nil {
		t.Error("misspelled field should be rejected")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RunnerConfig)
		errSub string
	}{
		{"zero world", func(c *RunnerConfig) { c.World.Width = 0 }, "world size"},
		{"inverted width range", func(c *RunnerConfig) { c.Recycle.MinWidth = 200 }, "min_width"},
		{"inverted height band", func(c *RunnerConfig) { c.Recycle.MinFromBottom = 300 }, "min_from_bottom"},
		{"inverted spawn interval", func(c *RunnerConfig) { c.Enemies.SpawnIntervalMin = 4000 }, "spawn_interval_min"},
		{"platform without width", func(c *RunnerConfig) { c.Platforms[1].Width = 0 }, "platforms[1]"},
		{"negative max enemies", func(c *RunnerConfig) { c.Enemies.MaxEnemies = -1 }, "max_enemies"},
	}

	if err := DefaultRunnerConfig().Validate(); err != nil {
		t.Fatalf("defaults should be valid: %v", err)
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.errSub) {
				t.Errorf("error %q should mention %q", err, tc.errSub)
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runner.yaml")
	if err := os.WriteFile(path, []byte("enemies:\n  max_enemies: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Enemies.MaxEnemies != 2 {
		t.Errorf("max_enemies = %d, expected 2", cfg.Enemies.MaxEnemies)
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom config should be an error")
	}
}

func TestLoadSourceSkipsBrokenLocalFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(localConfigPath, []byte("world: [not, a, map]\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, source, err := LoadSource("")
	if err != nil {
		t.Fatalf("LoadSource() failed: %v", err)
	}
	if source != "" || !reflect.DeepEqual(cfg, DefaultRunnerConfig()) {
		t.Errorf("broken local file: source %q, want embedded defaults", source)
	}
	if ResolvePath("") != localConfigPath {
		t.Errorf("ResolvePath still finds %q", localConfigPath)
	}

	if err := os.WriteFile(localConfigPath, []byte("enemies:\n  max_enemies: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, source, err = LoadSource("")
	if err != nil {
		t.Fatalf("LoadSource() failed: %v", err)
	}
	if source != localConfigPath || cfg.Enemies.MaxEnemies != 3 {
		t.Errorf("source %q max_enemies %d, want %q and 3", source, cfg.Enemies.MaxEnemies, localConfigPath)
	}
}

func TestResolvePathCustom(t *testing.T) {
	if got := ResolvePath("/tmp/custom.yaml"); got != "/tmp/custom.yaml" {
		t.Errorf("ResolvePath should prefer the custom path, got %q", got)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := DefaultRunnerConfig()
	cfg.Recycle.AvoidOverlap = true

	data, err := Encode(cfg)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	back, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() of encoded config failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, back) {
		t.Error("encoded config should parse back to the same value")
	}
}

func TestClone(t *testing.T) {
	cfg := DefaultRunnerConfig()
	clone := cfg.Clone()
	clone.Platforms[0].X = 99
	clone.Coins.Layout[0].X = 99

	if cfg.Platforms[0].X == 99 || cfg.Coins.Layout[0].X == 99 {
		t.Error("Clone should not share layout slices")
	}
}

func TestPresets(t *testing.T) {
	if _, err := ParsePreset("impossible"); err == nil {
		t.Error("unknown preset should be rejected")
	}

	normal := DefaultRunnerConfig()
	ApplyPreset(&normal, DifficultyNormal)
	if !reflect.DeepEqual(normal, DefaultRunnerConfig()) {
		t.Error("normal preset should keep the loaded config")
	}

	fixed := DefaultRunnerConfig()
	ApplyPreset(&fixed, DifficultyFixed)
	if fixed.Physics.SpeedIncrement != 0 || fixed.Enemies.SpawnIntervalStep != 0 {
		t.Error("fixed preset should disable both ramps")
	}

	for _, p := range []DifficultyPreset{DifficultyEasy, DifficultyHard} {
		cfg := DefaultRunnerConfig()
		ApplyPreset(&cfg, p)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s produced an invalid config: %v", p, err)
		}
	}
}

func TestWatchReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runner.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	w, err := Watch(path)
	if err != nil {
		t.Fatalf("Watch() failed: %v", err)
	}
	defer w.Close()

	// Unrelated files in the same directory are ignored
	if err := os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("physics:\n  gravity: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case name := <-w.Events:
		if filepath.Base(name) != "runner.yaml" {
			t.Errorf("event for %q, expected runner.yaml", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no change event received")
	}
}
