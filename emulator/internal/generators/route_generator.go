package generators

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/Krimson/exstats/emulator/internal/config"
	"github.com/Krimson/exstats/emulator/internal/models"
	"github.com/Krimson/exstats/pkg/geo"
)

// bearingDrift максимальный поворот курса за секунду, градусы
const bearingDrift = 3.0

type routeGenerator struct {
	rand    *rand.Rand
	config  config.RouteConfig
	current geo.Point
	bearing float64
	mu      sync.Mutex
}

// NewRouteGenerator создает генератор маршрута, идущего по курсу с заданной скоростью
func NewRouteGenerator(cfg config.RouteConfig, seed int64) PositionGenerator {
	g := &routeGenerator{
		rand:   rand.New(rand.NewSource(newRand(seed))),
		config: cfg,
	}
	g.Reset()
	return g
}

func (g *routeGenerator) Next(dt time.Duration) models.Position {
	g.mu.Lock()
	defer g.mu.Unlock()

	speed := g.config.SpeedKPH + (g.rand.Float64()*2-1)*g.config.SpeedVariability
	if speed < 0 {
		speed = 0
	}

	seconds := dt.Seconds()
	g.bearing += (g.rand.Float64()*2 - 1) * bearingDrift * seconds
	g.current = geo.Offset(g.current, g.bearing, speed/3.6*seconds)

	// Без отметки датчик не сообщает координаты, но бегун продолжает движение
	if g.rand.Float64() < g.config.LostFixProbability {
		return models.Position{}
	}

	return models.Position{
		Lat:   g.current.Lat,
		Lon:   g.current.Lon,
		Speed: speed,
		Fix:   true,
	}
}

func (g *routeGenerator) Validate() error {
	if g.config.StartLat < -90 || g.config.StartLat > 90 || g.config.StartLon < -180 || g.config.StartLon > 180 {
		return fmt.Errorf("%w: start point out of range", ErrInvalidConfig)
	}
	if g.config.SpeedKPH < 0 {
		return fmt.Errorf("%w: negative speed", ErrInvalidConfig)
	}
	return nil
}

func (g *routeGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.current = geo.Point{Lat: g.config.StartLat, Lon: g.config.StartLon}
	g.bearing = g.config.Bearing
}

func (g *routeGenerator) Seed(seed int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.rand.Seed(seed)
}
