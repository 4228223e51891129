package generators

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/Krimson/exstats/emulator/internal/config"
	"github.com/Krimson/exstats/emulator/internal/models"
)

type heartRateGenerator struct {
	rand   *rand.Rand
	config config.HeartRateConfig
	stats  GeneratorStats
	mu     sync.RWMutex
}

// NewHeartRateGenerator создает генератор пульса с редкими недостоверными показаниями
func NewHeartRateGenerator(cfg config.HeartRateConfig, seed int64) HeartRateGenerator {
	return &heartRateGenerator{
		rand:   rand.New(rand.NewSource(newRand(seed))),
		config: cfg,
	}
}

func (g *heartRateGenerator) Next() models.HeartRate {
	g.mu.Lock()
	defer g.mu.Unlock()

	value := g.config.BaseValue
	if g.config.Variability > 0 {
		value += g.rand.Intn(g.config.Variability*2+1) - g.config.Variability
	}

	// Ограничиваем физиологическими пределами
	if value < g.config.MinValue {
		value = g.config.MinValue
	}
	if value > g.config.MaxValue {
		value = g.config.MaxValue
	}

	// Достоверное показание 80..100, недостоверное 20..59
	confidence := 80 + g.rand.Intn(21)
	if g.rand.Float64() < g.config.LowConfidenceProbability {
		confidence = 20 + g.rand.Intn(40)
		g.stats.LowConfidenceCount++
	}

	g.stats.record(value)
	return models.HeartRate{BPM: value, Confidence: confidence}
}

func (g *heartRateGenerator) Validate() error {
	if g.config.MinValue > g.config.MaxValue {
		return fmt.Errorf("%w: min %d > max %d", ErrInvalidConfig, g.config.MinValue, g.config.MaxValue)
	}
	if g.config.Variability < 0 {
		return fmt.Errorf("%w: negative variability", ErrInvalidConfig)
	}
	return nil
}

func (g *heartRateGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.stats = GeneratorStats{}
}

func (g *heartRateGenerator) Seed(seed int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rand.Seed(seed)
}

func (g *heartRateGenerator) GetStats() GeneratorStats {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.stats
}
