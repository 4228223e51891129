package emulator

import (
	"context"
	"math/rand"
	"time"
)

// Ticker управляет временными интервалами эмулятора
type Ticker struct {
	interval time.Duration
	jitter   time.Duration // Случайное отклонение для реалистичности
}

func NewTicker(interval, jitter time.Duration) *Ticker {
	return &Ticker{
		interval: interval,
		jitter:   jitter,
	}
}

// Tick возвращает канал, который отправляет метки времени с заданным интервалом.
// Канал закрывается при отмене контекста.
func (t *Ticker) Tick(ctx context.Context) <-chan time.Time {
	tickChan := make(chan time.Time)

	go func() {
		defer close(tickChan)

		// Первый тик сразу
		select {
		case tickChan <- time.Now():
		case <-ctx.Done():
			return
		}

		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()

		for {
			select {
			case tickTime := <-ticker.C:
				select {
				case tickChan <- t.addJitter(tickTime):
				case <-ctx.Done():
					return
				}

			case <-ctx.Done():
				return
			}
		}
	}()

	return tickChan
}

func (t *Ticker) addJitter(baseTime time.Time) time.Time {
	if t.jitter <= 0 {
		return baseTime
	}
	jitterDuration := time.Duration(float64(t.jitter) * (rand.Float64()*2 - 1))
	return baseTime.Add(jitterDuration)
}
