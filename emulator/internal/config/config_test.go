package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Emulator.SampleRate != time.Second {
		t.Errorf("Expected rate 1s, got %v", cfg.Emulator.SampleRate)
	}
	if cfg.Output.TargetURL != "http://localhost:8080" {
		t.Errorf("Expected default target, got %q", cfg.Output.TargetURL)
	}
}

func TestLoad_Flags(t *testing.T) {
	cfg, err := Load([]string{"-target", "", "-output", "out.jsonl", "-duration", "10s", "-speed", "12.5", "-seed", "7"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Output.TargetURL != "" || cfg.Output.FilePath != "out.jsonl" {
		t.Errorf("Unexpected output: %+v", cfg.Output)
	}
	if cfg.Emulator.Duration != 10*time.Second || cfg.Emulator.Seed != 7 {
		t.Errorf("Unexpected emulator config: %+v", cfg.Emulator)
	}
	if cfg.Route.SpeedKPH != 12.5 {
		t.Errorf("Expected speed 12.5, got %v", cfg.Route.SpeedKPH)
	}
}

func TestLoad_ScenarioWithOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tempo.yaml")
	scenario := `
emulator:
  duration: 20m
  rate: 500ms
  jitter: 0s
route:
  speed_kph: 14
  lost_fix_probability: 0
steps:
  cadence: 180
heart_rate:
  base: 165
`
	if err := os.WriteFile(path, []byte(scenario), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load([]string{"-scenario", path, "-cadence", "170"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Emulator.Duration != 20*time.Minute || cfg.Emulator.SampleRate != 500*time.Millisecond {
		t.Errorf("Scenario durations not applied: %+v", cfg.Emulator)
	}
	if cfg.Route.SpeedKPH != 14 || cfg.HeartRate.BaseValue != 165 {
		t.Errorf("Scenario values not applied: speed=%v bpm=%d", cfg.Route.SpeedKPH, cfg.HeartRate.BaseValue)
	}
	if cfg.Steps.Cadence != 170 {
		t.Errorf("Expected flag to override scenario cadence, got %d", cfg.Steps.Cadence)
	}
	// поля, которых нет в сценарии, остаются по умолчанию
	if cfg.HeartRate.MaxValue != 200 {
		t.Errorf("Expected default max bpm, got %d", cfg.HeartRate.MaxValue)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := [][]string{
		{"-duration", "0s"},
		{"-rate", "10ms", "-jitter", "20ms"},
		{"-target", "", "-output", ""},
		{"-speed", "-1"},
	}
	for _, args := range tests {
		if _, err := Load(args); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Load(%v): expected ErrInvalidConfig, got %v", args, err)
		}
	}
}

func TestLoad_MissingScenario(t *testing.T) {
	if _, err := Load([]string{"-scenario", filepath.Join(t.TempDir(), "none.yaml")}); err == nil {
		t.Error("Expected error for missing scenario file")
	}
}
