package exstats

import (
	"time"
)

// fakeHost хост с ручными часами и синхронной доставкой событий
type fakeHost struct {
	now   time.Time
	steps int

	gps   map[int]func(GeoFix)
	step  map[int]func(int)
	hrm   map[int]func(HeartRate)
	ticks map[int]func()
	seq   int

	power    map[Sensor]map[string]bool
	interval time.Duration
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		now:   time.Unix(1700000000, 0),
		gps:   make(map[int]func(GeoFix)),
		step:  make(map[int]func(int)),
		hrm:   make(map[int]func(HeartRate)),
		ticks: make(map[int]func()),
		power: make(map[Sensor]map[string]bool),
	}
}

func (h *fakeHost) SubscribeGPS(fn func(GeoFix)) func() {
	h.seq++
	id := h.seq
	h.gps[id] = fn
	return func() { delete(h.gps, id) }
}

func (h *fakeHost) SubscribeSteps(fn func(int)) func() {
	h.seq++
	id := h.seq
	h.step[id] = fn
	return func() { delete(h.step, id) }
}

func (h *fakeHost) SubscribeHeartRate(fn func(HeartRate)) func() {
	h.seq++
	id := h.seq
	h.hrm[id] = fn
	return func() { delete(h.hrm, id) }
}

func (h *fakeHost) CurrentStepCount() int { return h.steps }

func (h *fakeHost) SetSensorPower(sensor Sensor, on bool, owner string) {
	if h.power[sensor] == nil {
		h.power[sensor] = make(map[string]bool)
	}
	if on {
		h.power[sensor][owner] = true
	} else {
		delete(h.power[sensor], owner)
	}
}

func (h *fakeHost) powered(sensor Sensor) bool {
	return len(h.power[sensor]) > 0
}

func (h *fakeHost) ScheduleRepeating(interval time.Duration, fn func()) func() {
	h.seq++
	id := h.seq
	h.ticks[id] = fn
	h.interval = interval
	return func() { delete(h.ticks, id) }
}

func (h *fakeHost) Now() time.Time { return h.now }

func (h *fakeHost) advance(d time.Duration) { h.now = h.now.Add(d) }

// tick сдвигает часы на секунду и вызывает таймеры
func (h *fakeHost) tick() {
	h.advance(time.Second)
	for _, fn := range h.ticks {
		fn()
	}
}

func (h *fakeHost) pushGPS(fix GeoFix) {
	for _, fn := range h.gps {
		fn(fix)
	}
}

func (h *fakeHost) pushSteps(total int) {
	h.steps = total
	for _, fn := range h.step {
		fn(total)
	}
}

func (h *fakeHost) pushHeartRate(sample HeartRate) {
	for _, fn := range h.hrm {
		fn(sample)
	}
}

// recorder собирает сигналы сессии
type recorder struct {
	events []Event
}

func (r *recorder) listen(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) count(signal Signal, id StatID) int {
	n := 0
	for _, e := range r.events {
		if e.Signal == signal && e.Stat.ID == id {
			n++
		}
	}
	return n
}

func (r *recorder) reset() {
	r.events = nil
}

// allStats все идентификаторы каталога
func allStats() []StatID {
	ids := make([]StatID, 0, len(catalog))
	for _, info := range catalog {
		ids = append(ids, info.ID)
	}
	return ids
}
