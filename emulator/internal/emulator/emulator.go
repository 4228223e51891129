package emulator

import (
	"context"
	"log"
	"time"

	"github.com/Krimson/exstats/emulator/internal/config"
	"github.com/Krimson/exstats/emulator/internal/generators"
	"github.com/Krimson/exstats/emulator/internal/models"
	"github.com/Krimson/exstats/emulator/internal/senders"
)

type Emulator struct {
	route     generators.PositionGenerator
	steps     generators.StepCounter
	heartRate generators.HeartRateGenerator
	sender    senders.DataSender
	config    config.EmulatorConfig
}

// RunStats итоги работы эмулятора
type RunStats struct {
	Ticks  int
	Sent   int
	Failed int
}

func NewEmulator(
	route generators.PositionGenerator,
	steps generators.StepCounter,
	heartRate generators.HeartRateGenerator,
	sender senders.DataSender,
	cfg config.EmulatorConfig,
) *Emulator {
	return &Emulator{
		route:     route,
		steps:     steps,
		heartRate: heartRate,
		sender:    sender,
		config:    cfg,
	}
}

// Run генерирует показания до истечения Duration или отмены ctx
func (e *Emulator) Run(ctx context.Context) (RunStats, error) {
	var stats RunStats

	for _, g := range []generators.Generator{e.route, e.steps, e.heartRate} {
		if err := g.Validate(); err != nil {
			return stats, err
		}
	}

	ctx, cancel := context.WithTimeout(ctx, e.config.Duration)
	defer cancel()

	log.Printf("[EMULATOR] Starting for %v with rate %v", e.config.Duration, e.config.SampleRate)

	ticker := NewTicker(e.config.SampleRate, e.config.Jitter)
	var last time.Time
	for tickTime := range ticker.Tick(ctx) {
		// шаг модели считается по реальному времени, джиттер влияет только на метку
		now := time.Now()
		var dt time.Duration
		if !last.IsZero() {
			dt = now.Sub(last)
		}
		last = now

		sample := models.Sample{
			Timestamp: tickTime,
			Position:  e.route.Next(dt),
			Steps:     e.steps.Next(dt),
			HeartRate: e.heartRate.Next(),
		}
		stats.Ticks++

		if err := e.sender.Send(ctx, sample); err != nil {
			if ctx.Err() != nil {
				break
			}
			stats.Failed++
			log.Printf("[WARN] Send error: %v", err)
			continue
		}
		stats.Sent++
	}

	log.Printf("[EMULATOR] Stopped: ticks=%d sent=%d failed=%d", stats.Ticks, stats.Sent, stats.Failed)
	return stats, nil
}
