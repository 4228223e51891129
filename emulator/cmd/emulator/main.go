package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Krimson/exstats/emulator/internal/config"
	"github.com/Krimson/exstats/emulator/internal/emulator"
	"github.com/Krimson/exstats/emulator/internal/generators"
	"github.com/Krimson/exstats/emulator/internal/senders"
	"github.com/Krimson/exstats/emulator/internal/track"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("[FATAL] Failed to load configuration: %v", err)
	}

	var route generators.PositionGenerator
	if cfg.Route.TrackFile != "" {
		points, err := track.ReadCSVFile(cfg.Route.TrackFile)
		if err != nil {
			log.Fatalf("[FATAL] Failed to read track: %v", err)
		}
		log.Printf("[INFO] Replaying track %s (%d points)", cfg.Route.TrackFile, len(points))
		route = track.NewReplay(points)
	} else {
		route = generators.NewRouteGenerator(cfg.Route, cfg.Emulator.Seed)
	}
	steps := generators.NewStepGenerator(cfg.Steps, cfg.Emulator.Seed)
	heartRate := generators.NewHeartRateGenerator(cfg.HeartRate, cfg.Emulator.Seed)

	var (
		outputs    []senders.DataSender
		fileSender *senders.FileSender
	)
	if cfg.Output.TargetURL != "" {
		httpSender := senders.NewHTTPSender(cfg.Output.TargetURL, cfg.Output.RequestsPerSecond)
		if err := httpSender.Validate(); err != nil {
			log.Printf("[WARN] Tracker at %s is not reachable yet: %v", cfg.Output.TargetURL, err)
		}
		outputs = append(outputs, httpSender)
	}
	if cfg.Output.FilePath != "" {
		fileSender, err = senders.NewFileSender(cfg.Output.FilePath)
		if err != nil {
			log.Fatalf("[FATAL] Failed to init file sender: %v", err)
		}
		outputs = append(outputs, fileSender)
	}
	sender := senders.NewMultiSender(outputs...)
	defer sender.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Создание и запуск эмулятора
	emu := emulator.NewEmulator(route, steps, heartRate, sender, cfg.Emulator)
	stats, err := emu.Run(ctx)
	if err != nil {
		log.Fatalf("[FATAL] Emulator failed: %v", err)
	}

	log.Printf("[INFO] Done: %d ticks, %d failed, bpm avg %.1f",
		stats.Ticks, stats.Failed, heartRate.GetStats().AverageValue)
	if fileSender != nil {
		written := fileSender.GetStats()
		log.Printf("[INFO] %s: %d lines, %d rejected", cfg.Output.FilePath, written.Lines, written.Errors)
	}
}
