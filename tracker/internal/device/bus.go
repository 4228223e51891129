package device

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/Krimson/exstats/pkg/exstats"
)

// ErrBusStopped шина остановлена и не принимает события
var ErrBusStopped = errors.New("device bus stopped")

// Bus реализует exstats.Host. Все события, тики таймеров и внешние вызовы
// выполняются в одной горутине Run, поэтому сессии работают без блокировок.
type Bus struct {
	queue chan func()
	done  chan struct{}
	once  sync.Once
	clock func() time.Time

	power *Power

	// Поля ниже используются только из горутины Run
	steps    int
	seq      int
	gpsSubs  []subscriber[exstats.GeoFix]
	stepSubs []subscriber[int]
	hrmSubs  []subscriber[exstats.HeartRate]
	timers   map[int]*timer

	stats struct {
		mu          sync.RWMutex
		dispatched  int64
		droppedTick int64
	}
}

type subscriber[T any] struct {
	id int
	fn func(T)
}

type timer struct {
	cancelled bool
	stop      chan struct{}
}

// Option дополнительная настройка шины
type Option func(*Bus)

// WithClock подменяет источник времени
func WithClock(clock func() time.Time) Option {
	return func(b *Bus) {
		b.clock = clock
	}
}

// WithPowerObserver вызывается при включении/выключении датчика
func WithPowerObserver(fn func(sensor exstats.Sensor, on bool)) Option {
	return func(b *Bus) {
		b.power = NewPower(fn)
	}
}

// NewBus создает шину с очередью заданного размера
func NewBus(queueSize int, options ...Option) *Bus {
	if queueSize <= 0 {
		queueSize = 1
	}
	b := &Bus{
		queue:  make(chan func(), queueSize),
		done:   make(chan struct{}),
		clock:  time.Now,
		power:  NewPower(nil),
		timers: make(map[int]*timer),
	}
	for _, o := range options {
		o(b)
	}
	return b
}

// Run обрабатывает очередь до отмены контекста или Stop
func (b *Bus) Run(ctx context.Context) {
	log.Printf("[INFO] Device bus started")
	defer log.Printf("[INFO] Device bus stopped")

	for {
		select {
		case <-ctx.Done():
			b.Stop()
			return
		case <-b.done:
			return
		case fn := <-b.queue:
			fn()
			b.incrementDispatched()
		}
	}
}

// Stop останавливает шину и все таймеры
func (b *Bus) Stop() {
	b.once.Do(func() {
		close(b.done)
	})
}

// Post ставит функцию в очередь шины
func (b *Bus) Post(ctx context.Context, fn func()) error {
	select {
	case <-b.done:
		return ErrBusStopped
	default:
	}

	select {
	case b.queue <- fn:
		return nil
	case <-b.done:
		return ErrBusStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Call выполняет fn в горутине шины и ждет завершения.
// Нельзя вызывать из обработчиков самой шины.
func (b *Bus) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if err := b.Post(ctx, func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}

	select {
	case <-finished:
		return nil
	case <-b.done:
		return ErrBusStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PushGPS доставляет GPS отметку подписчикам
func (b *Bus) PushGPS(ctx context.Context, fix exstats.GeoFix) error {
	return b.Post(ctx, func() {
		for _, s := range append([]subscriber[exstats.GeoFix](nil), b.gpsSubs...) {
			s.fn(fix)
		}
	})
}

// PushSteps обновляет счетчик шагов устройства и уведомляет подписчиков
func (b *Bus) PushSteps(ctx context.Context, total int) error {
	return b.Post(ctx, func() {
		b.steps = total
		for _, s := range append([]subscriber[int](nil), b.stepSubs...) {
			s.fn(total)
		}
	})
}

// PushHeartRate доставляет показание пульса подписчикам
func (b *Bus) PushHeartRate(ctx context.Context, sample exstats.HeartRate) error {
	return b.Post(ctx, func() {
		for _, s := range append([]subscriber[exstats.HeartRate](nil), b.hrmSubs...) {
			s.fn(sample)
		}
	})
}

// ===== exstats.Host =====

func (b *Bus) SubscribeGPS(fn func(exstats.GeoFix)) func() {
	b.seq++
	id := b.seq
	b.gpsSubs = append(b.gpsSubs, subscriber[exstats.GeoFix]{id: id, fn: fn})
	return func() { b.gpsSubs = unsubscribe(b.gpsSubs, id) }
}

func (b *Bus) SubscribeSteps(fn func(int)) func() {
	b.seq++
	id := b.seq
	b.stepSubs = append(b.stepSubs, subscriber[int]{id: id, fn: fn})
	return func() { b.stepSubs = unsubscribe(b.stepSubs, id) }
}

func (b *Bus) SubscribeHeartRate(fn func(exstats.HeartRate)) func() {
	b.seq++
	id := b.seq
	b.hrmSubs = append(b.hrmSubs, subscriber[exstats.HeartRate]{id: id, fn: fn})
	return func() { b.hrmSubs = unsubscribe(b.hrmSubs, id) }
}

func (b *Bus) CurrentStepCount() int {
	return b.steps
}

func (b *Bus) SetSensorPower(sensor exstats.Sensor, on bool, owner string) {
	b.power.Set(sensor, on, owner)
}

// ScheduleRepeating запускает таймер; колбэк выполняется в горутине шины.
// Если очередь переполнена, тик пропускается.
func (b *Bus) ScheduleRepeating(interval time.Duration, fn func()) func() {
	b.seq++
	id := b.seq
	t := &timer{stop: make(chan struct{})}
	b.timers[id] = t

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				select {
				case b.queue <- func() {
					if !t.cancelled {
						fn()
					}
				}:
				default:
					b.incrementDroppedTick()
					log.Printf("[WARN] Event queue full, tick dropped")
				}
			case <-t.stop:
				return
			case <-b.done:
				return
			}
		}
	}()

	return func() {
		if t.cancelled {
			return
		}
		t.cancelled = true
		close(t.stop)
		delete(b.timers, id)
	}
}

func (b *Bus) Now() time.Time {
	return b.clock()
}

// Power возвращает менеджер питания датчиков
func (b *Bus) Power() *Power {
	return b.power
}

// GetStats возвращает число обработанных событий и пропущенных тиков
func (b *Bus) GetStats() (dispatched, droppedTicks int64) {
	b.stats.mu.RLock()
	defer b.stats.mu.RUnlock()
	return b.stats.dispatched, b.stats.droppedTick
}

func (b *Bus) incrementDispatched() {
	b.stats.mu.Lock()
	b.stats.dispatched++
	b.stats.mu.Unlock()
}

func (b *Bus) incrementDroppedTick() {
	b.stats.mu.Lock()
	b.stats.droppedTick++
	b.stats.mu.Unlock()
}

func unsubscribe[T any](subs []subscriber[T], id int) []subscriber[T] {
	for i, s := range subs {
		if s.id == id {
			return append(subs[:i], subs[i+1:]...)
		}
	}
	return subs
}
