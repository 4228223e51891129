package emulator

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Krimson/exstats/emulator/internal/config"
	"github.com/Krimson/exstats/emulator/internal/generators"
	"github.com/Krimson/exstats/emulator/internal/models"
)

type collectingSender struct {
	mu      sync.Mutex
	samples []models.Sample
}

func (c *collectingSender) Send(ctx context.Context, s models.Sample) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.samples = append(c.samples, s)
	return nil
}

func (c *collectingSender) Validate() error { return nil }
func (c *collectingSender) Close() error    { return nil }

func TestEmulator_Run(t *testing.T) {
	cfg := config.Default()
	cfg.Emulator.Duration = 200 * time.Millisecond
	cfg.Emulator.SampleRate = 20 * time.Millisecond
	cfg.Emulator.Jitter = 0
	cfg.Route.LostFixProbability = 0

	sender := &collectingSender{}
	e := NewEmulator(
		generators.NewRouteGenerator(cfg.Route, 1),
		generators.NewStepGenerator(cfg.Steps, 1),
		generators.NewHeartRateGenerator(cfg.HeartRate, 1),
		sender,
		cfg.Emulator,
	)

	stats, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if stats.Ticks < 3 {
		t.Errorf("Expected at least 3 ticks, got %d", stats.Ticks)
	}
	if stats.Sent != len(sender.samples) {
		t.Errorf("Expected %d sent, got %d", len(sender.samples), stats.Sent)
	}

	prev := -1
	for i, s := range sender.samples {
		if err := s.Validate(); err != nil {
			t.Errorf("Sample %d invalid: %v", i, err)
		}
		if s.Steps < prev {
			t.Errorf("Sample %d: steps went backwards %d -> %d", i, prev, s.Steps)
		}
		prev = s.Steps
	}
}

func TestEmulator_RejectsInvalidGenerator(t *testing.T) {
	cfg := config.Default()
	cfg.HeartRate.MinValue = 300

	e := NewEmulator(
		generators.NewRouteGenerator(cfg.Route, 1),
		generators.NewStepGenerator(cfg.Steps, 1),
		generators.NewHeartRateGenerator(cfg.HeartRate, 1),
		&collectingSender{},
		cfg.Emulator,
	)

	if _, err := e.Run(context.Background()); err == nil {
		t.Error("Expected validation error")
	}
}

func TestTicker_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ticks := NewTicker(5*time.Millisecond, 2*time.Millisecond).Tick(ctx)

	<-ticks
	<-ticks
	cancel()

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ticks:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("Tick channel not closed after cancel")
		}
	}
}
