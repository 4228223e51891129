package generators

import (
	"errors"
	"time"

	"github.com/Krimson/exstats/emulator/internal/models"
)

// Ошибки генераторов
var (
	ErrInvalidConfig = errors.New("invalid generator configuration")
)

// Generator базовый интерфейс для всех генераторов данных
type Generator interface {
	// Validate проверяет корректность настроек генератора
	Validate() error

	// Reset сбрасывает состояние генератора
	Reset()

	// Seed устанавливает seed для случайного генератора
	Seed(seed int64)
}

// PositionGenerator генератор GPS отметок
type PositionGenerator interface {
	Generator

	// Next сдвигает позицию на dt и возвращает отметку
	Next(dt time.Duration) models.Position
}

// StepCounter генератор абсолютного счетчика шагов
type StepCounter interface {
	Generator

	// Next добавляет шаги за dt и возвращает счетчик
	Next(dt time.Duration) int
}

// HeartRateGenerator генератор показаний пульсометра
type HeartRateGenerator interface {
	Generator

	// Next возвращает очередное показание
	Next() models.HeartRate

	// GetStats возвращает статистику работы генератора
	GetStats() GeneratorStats
}

// GeneratorStats содержит статистику генератора
type GeneratorStats struct {
	TotalValuesGenerated int     `json:"total_values_generated"`
	MinValueGenerated    int     `json:"min_value_generated"`
	MaxValueGenerated    int     `json:"max_value_generated"`
	AverageValue         float64 `json:"average_value"`
	LastValue            int     `json:"last_value"`
	LowConfidenceCount   int     `json:"low_confidence_count"`
}

func (s *GeneratorStats) record(value int) {
	s.TotalValuesGenerated++
	if s.TotalValuesGenerated == 1 || value < s.MinValueGenerated {
		s.MinValueGenerated = value
	}
	if value > s.MaxValueGenerated {
		s.MaxValueGenerated = value
	}
	s.AverageValue += (float64(value) - s.AverageValue) / float64(s.TotalValuesGenerated)
	s.LastValue = value
}

func newRand(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}
