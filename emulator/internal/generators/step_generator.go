package generators

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/Krimson/exstats/emulator/internal/config"
)

type stepGenerator struct {
	rand   *rand.Rand
	config config.StepsConfig
	// total дробный счетчик; наружу отдается целая часть
	total float64
	mu    sync.Mutex
}

// NewStepGenerator создает счетчик шагов с каденсом и вариабельностью
func NewStepGenerator(cfg config.StepsConfig, seed int64) StepCounter {
	return &stepGenerator{
		rand:   rand.New(rand.NewSource(newRand(seed))),
		config: cfg,
		total:  float64(cfg.StartCount),
	}
}

func (g *stepGenerator) Next(dt time.Duration) int {
	g.mu.Lock()
	defer g.mu.Unlock()

	cadence := g.config.Cadence
	if g.config.Variability > 0 {
		cadence += g.rand.Intn(g.config.Variability*2+1) - g.config.Variability
	}
	if cadence < 0 {
		cadence = 0
	}

	g.total += float64(cadence) / 60 * dt.Seconds()
	return int(g.total)
}

func (g *stepGenerator) Validate() error {
	if g.config.Cadence < 0 || g.config.Variability < 0 {
		return fmt.Errorf("%w: negative cadence", ErrInvalidConfig)
	}
	return nil
}

func (g *stepGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.total = float64(g.config.StartCount)
}

func (g *stepGenerator) Seed(seed int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rand.Seed(seed)
}
