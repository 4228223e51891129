package exstats

import (
	"time"

	"github.com/Krimson/exstats/pkg/format"
)

const (
	// DefaultOwner тег владельца для запросов питания датчиков
	DefaultOwner = "exs"

	// TickInterval период пересчета каденса, времени и устаревания пульса
	TickInterval = time.Second
)

// Session набор выбранных статистик и их общее состояние.
//
// Session не потокобезопасна: все обработчики, тики и чтения должны
// выполняться в одном потоке, который обеспечивает Host.
type Session struct {
	host   Host
	opts   Options
	locale format.Locale
	owner  string

	state    State
	selected statSet
	stats    []*Stat

	listeners []listener
	nextID    int

	needGPS bool
	needHRM bool
	cancels []func()
	closed  bool
}

type listener struct {
	id int
	fn func(Event)
}

// Option дополнительная настройка сессии
type Option func(*Session)

// WithOwner задает тег владельца для запросов питания датчиков
func WithOwner(owner string) Option {
	return func(s *Session) {
		if owner != "" {
			s.owner = owner
		}
	}
}

// WithLocale задает локаль для дистанции и скорости
func WithLocale(locale format.Locale) Option {
	return func(s *Session) {
		if locale != nil {
			s.locale = locale
		}
	}
}

// New создает статистики по списку ids, включает нужные датчики,
// подписывается на события хоста и запускает ежесекундный тик.
// Неизвестные идентификаторы пропускаются.
func New(host Host, ids []StatID, opts Options, options ...Option) *Session {
	s := &Session{
		host:   host,
		opts:   opts.normalize(),
		locale: format.Metric,
		owner:  DefaultOwner,
	}
	for _, o := range options {
		o(s)
	}

	// Порядок статистик - порядок каталога, повторы схлопываются
	for _, id := range ids {
		s.selected.add(id)
	}
	for _, info := range catalog {
		if !s.selected.has(info.ID) {
			continue
		}
		s.stats = append(s.stats, s.buildStat(info.ID))
		switch info.ID {
		case StatDist, StatPaceAvg, StatPaceCur, StatSpeed:
			s.needGPS = true
		case StatBPM:
			s.needHRM = true
		}
	}

	if s.needGPS {
		host.SetSensorPower(SensorGPS, true, s.owner)
	}
	if s.needHRM {
		host.SetSensorPower(SensorHeartRate, true, s.owner)
	}

	s.cancels = append(s.cancels,
		host.SubscribeGPS(s.onGPS),
		host.SubscribeSteps(s.onStep),
		host.SubscribeHeartRate(s.onHeartRate),
		host.ScheduleRepeating(TickInterval, s.tick),
	)

	s.reset()
	return s
}

// Start начинает тренировку и полностью сбрасывает состояние
func (s *Session) Start() {
	s.state.Active = true
	s.reset()
}

// Stop останавливает накопление; накопленные значения остаются доступны.
// Подписки и таймер продолжают работать.
func (s *Session) Stop() {
	if s.state.Active {
		s.state.StopTime = s.host.Now()
	}
	s.state.Active = false
}

// Close останавливает сессию, отписывается от событий, отменяет таймер
// и снимает запросы питания датчиков
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.Stop()
	for _, cancel := range s.cancels {
		if cancel != nil {
			cancel()
		}
	}
	s.cancels = nil
	if s.needGPS {
		s.host.SetSensorPower(SensorGPS, false, s.owner)
	}
	if s.needHRM {
		s.host.SetSensorPower(SensorHeartRate, false, s.owner)
	}
	s.listeners = nil
	s.closed = true
}

// Active сообщает, идет ли накопление
func (s *Session) Active() bool {
	return s.state.Active
}

// State возвращает копию текущего состояния
func (s *Session) State() State {
	return s.state
}

// Options возвращает настройки сессии
func (s *Session) Options() Options {
	return s.opts
}

// Owner возвращает тег владельца запросов питания
func (s *Session) Owner() string {
	return s.owner
}

// Stats возвращает выбранные статистики в порядке каталога
func (s *Session) Stats() []*Stat {
	stats := make([]*Stat, len(s.stats))
	copy(stats, s.stats)
	return stats
}

// Stat возвращает статистику по идентификатору, если она была выбрана
func (s *Session) Stat(id StatID) (*Stat, bool) {
	for _, stat := range s.stats {
		if stat.ID == id {
			return stat, true
		}
	}
	return nil, false
}

// Listen регистрирует слушателя сигналов, возвращает функцию отписки.
// Слушатели вызываются синхронно после изменения состояния.
func (s *Session) Listen(fn func(Event)) func() {
	s.nextID++
	id := s.nextID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

// emit отправляет сигнал по статистике, если она была выбрана
func (s *Session) emit(signal Signal, id StatID) {
	if !s.selected.has(id) {
		return
	}
	stat, _ := s.Stat(id)
	listeners := append([]listener(nil), s.listeners...)
	for _, l := range listeners {
		l.fn(Event{Signal: signal, Stat: stat})
	}
}

func (s *Session) reset() {
	s.state.reset(s.host.Now(), s.host.CurrentStepCount(), s.opts)
}

func (s *Session) elapsedMS() int64 {
	return s.state.ElapsedMS(s.host.Now())
}

// steps шаги с начала сессии; после остановки значение замораживается
func (s *Session) steps() int {
	total := s.state.LastStepCount
	if s.state.Active {
		total = s.host.CurrentStepCount()
	}
	if n := total - s.state.StartSteps; n > 0 {
		return n
	}
	return 0
}
