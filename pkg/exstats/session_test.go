package exstats

import (
	"testing"
	"time"

	"github.com/Krimson/exstats/pkg/format"
)

func TestList(t *testing.T) {
	list := List()
	expected := []StatID{StatTime, StatDist, StatStep, StatBPM, StatPaceAvg, StatPaceCur, StatSpeed, StatCadence}
	if len(list) != len(expected) {
		t.Fatalf("Expected %d stats, got %d", len(expected), len(list))
	}
	for i, id := range expected {
		if list[i].ID != id {
			t.Errorf("Position %d: expected %s, got %s", i, id, list[i].ID)
		}
	}
	if list[3].Name != "Heart (BPM)" {
		t.Errorf("Unexpected name for bpm: %q", list[3].Name)
	}

	// список - копия
	list[0].Name = "changed"
	if List()[0].Name != "Time" {
		t.Error("List must return a copy")
	}
}

func TestNew_SelectsStatsInCatalogOrder(t *testing.T) {
	host := newFakeHost()
	s := New(host, []StatID{StatCadence, StatTime, "bogus", StatTime}, DefaultOptions())

	stats := s.Stats()
	if len(stats) != 2 {
		t.Fatalf("Expected 2 stats, got %d", len(stats))
	}
	if stats[0].ID != StatTime || stats[1].ID != StatCadence {
		t.Errorf("Unexpected order: %s, %s", stats[0].ID, stats[1].ID)
	}
	if _, ok := s.Stat(StatDist); ok {
		t.Error("dist was not selected")
	}

	titles := map[StatID]string{}
	s = New(host, allStats(), DefaultOptions())
	for _, st := range s.Stats() {
		titles[st.ID] = st.Title
	}
	expected := map[StatID]string{
		StatTime: "Time", StatDist: "Dist", StatStep: "Steps", StatBPM: "BPM",
		StatPaceAvg: "A Pace", StatPaceCur: "C Pace", StatSpeed: "Speed", StatCadence: "Cadence",
	}
	for id, title := range expected {
		if titles[id] != title {
			t.Errorf("%s: expected title %q, got %q", id, title, titles[id])
		}
	}
}

func TestNew_SensorPower(t *testing.T) {
	tests := []struct {
		name string
		ids  []StatID
		gps  bool
		hrm  bool
	}{
		{"time only", []StatID{StatTime, StatStep, StatCadence}, false, false},
		{"distance", []StatID{StatDist}, true, false},
		{"pace", []StatID{StatPaceCur}, true, false},
		{"speed", []StatID{StatSpeed}, true, false},
		{"heart", []StatID{StatBPM}, false, true},
		{"all", allStats(), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host := newFakeHost()
			New(host, tt.ids, DefaultOptions())
			if host.powered(SensorGPS) != tt.gps {
				t.Errorf("GPS power: expected %v", tt.gps)
			}
			if host.powered(SensorHeartRate) != tt.hrm {
				t.Errorf("HRM power: expected %v", tt.hrm)
			}
			if host.interval != TickInterval {
				t.Errorf("Expected tick interval %v, got %v", TickInterval, host.interval)
			}
		})
	}
}

func TestClose_ReleasesOnlyOwnPower(t *testing.T) {
	host := newFakeHost()
	a := New(host, []StatID{StatDist, StatBPM}, DefaultOptions(), WithOwner("a"))
	b := New(host, []StatID{StatSpeed}, DefaultOptions(), WithOwner("b"))

	a.Close()
	if !host.powered(SensorGPS) {
		t.Error("GPS must stay on while b holds it")
	}
	if host.powered(SensorHeartRate) {
		t.Error("HRM must be off after a closed")
	}

	b.Close()
	if host.powered(SensorGPS) {
		t.Error("GPS must be off after both closed")
	}
	if len(host.gps) != 0 || len(host.step) != 0 || len(host.hrm) != 0 || len(host.ticks) != 0 {
		t.Error("Close must unsubscribe handlers and cancel the timer")
	}

	// повторный Close безопасен
	a.Close()
}

func TestStart_ResetsState(t *testing.T) {
	host := newFakeHost()
	host.steps = 500
	opts := DefaultOptions()
	opts.Notify.Steps.Increment = 100
	opts.Notify.Time.Increment = 60000
	opts.Notify.Dist.Increment = 1000
	s := New(host, allStats(), opts)

	s.Start()
	host.pushGPS(GeoFix{Lat: 0, Lon: 0, Speed: 10, Fix: true})
	host.pushGPS(GeoFix{Lat: 0.001, Lon: 0, Speed: 10, Fix: true})
	host.pushSteps(540)
	host.pushHeartRate(HeartRate{BPM: 130, Confidence: 90})
	host.tick()

	st := s.State()
	if st.Distance == 0 || st.StepsPerMinute == 0 || st.BPM == 0 {
		t.Fatalf("Expected accumulated state, got %+v", st)
	}

	host.advance(5 * time.Second)
	host.steps = 700
	s.Start()

	st = s.State()
	if !st.Active {
		t.Error("Expected active session")
	}
	if st.Distance != 0 || st.StepsPerMinute != 0 || st.BPM != 0 || st.BPMAge != 0 {
		t.Errorf("Accumulators not reset: %+v", st)
	}
	if st.AvgSpeed != 0 || st.CurSpeed != 0 {
		t.Errorf("Speeds not reset: %+v", st)
	}
	if !st.StartTime.Equal(host.now) || st.StartSteps != 700 || st.LastStepCount != 700 {
		t.Errorf("Epoch markers not re-stamped: start=%v steps=%d", st.StartTime, st.StartSteps)
	}
	if st.StepHistory != [HistorySeconds]int{} {
		t.Error("Step history not cleared")
	}
	if st.CurrentFix.Fix || st.LastFix.Fix {
		t.Error("Fixes not cleared")
	}
	if st.Notify.Steps.Next != 800 || st.Notify.Dist.Next != 1000 || st.Notify.Time.Next != 60000 {
		t.Errorf("Thresholds not re-armed: %+v", st.Notify)
	}
}

func TestStartImmediatelyAfterNew(t *testing.T) {
	host := newFakeHost()
	host.steps = 42
	s := New(host, allStats(), DefaultOptions())
	host.advance(3 * time.Second)
	host.steps = 50
	s.Start()

	st := s.State()
	if st.Distance != 0 || st.StepsPerMinute != 0 || st.BPM != 0 {
		t.Errorf("Unexpected state after start: %+v", st)
	}
	if !st.StartTime.Equal(host.now) || st.StartSteps != 50 {
		t.Errorf("Expected markers re-stamped to current values, got %v / %d", st.StartTime, st.StartSteps)
	}
}

func TestStop_FreezesAccumulators(t *testing.T) {
	host := newFakeHost()
	s := New(host, allStats(), DefaultOptions())
	s.Start()

	host.pushGPS(GeoFix{Lat: 10, Lon: 10, Speed: 12, Fix: true})
	host.advance(500 * time.Millisecond)
	host.pushGPS(GeoFix{Lat: 10.001, Lon: 10, Speed: 12, Fix: true})
	host.pushSteps(10)
	host.tick()
	host.tick()

	s.Stop()
	frozen := s.State()
	elapsed, _ := s.Stat(StatTime)
	steps, _ := s.Stat(StatStep)
	frozenElapsed := elapsed.Value()

	host.pushGPS(GeoFix{Lat: 10.01, Lon: 10, Speed: 12, Fix: true})
	host.pushSteps(50)
	host.tick()
	host.tick()

	st := s.State()
	if st.Distance != frozen.Distance || st.CurSpeed != frozen.CurSpeed || st.AvgSpeed != frozen.AvgSpeed {
		t.Errorf("GPS accumulators changed after stop")
	}
	if st.StepHistory != frozen.StepHistory || st.StepsPerMinute != frozen.StepsPerMinute {
		t.Errorf("Step accumulators changed after stop")
	}
	if elapsed.Value() != frozenElapsed {
		t.Errorf("Elapsed time changed after stop: %v -> %v", frozenElapsed, elapsed.Value())
	}
	if steps.Value() != 10 {
		t.Errorf("Expected steps frozen at 10, got %v", steps.Value())
	}
	if st.Active {
		t.Error("Expected inactive session")
	}
}

func TestStatStrings(t *testing.T) {
	host := newFakeHost()
	s := New(host, allStats(), Options{PaceLength: 1000}, WithLocale(format.Metric))
	s.Start()

	get := func(id StatID) *Stat {
		st, ok := s.Stat(id)
		if !ok {
			t.Fatalf("stat %s missing", id)
		}
		return st
	}

	if got := get(StatBPM).String(); got != "--" {
		t.Errorf("bpm placeholder: got %q", got)
	}
	if got := get(StatPaceAvg).String(); got != format.PacePlaceholder {
		t.Errorf("pace placeholder: got %q", got)
	}
	if got := get(StatTime).String(); got != "00:00" {
		t.Errorf("time: got %q", got)
	}

	host.pushHeartRate(HeartRate{BPM: 142, Confidence: 100})
	if got := get(StatBPM).String(); got != "142" {
		t.Errorf("bpm: got %q", got)
	}

	host.advance(3661 * time.Second)
	if got := get(StatTime).String(); got != "1:01:01" {
		t.Errorf("time: got %q", got)
	}
	if got := get(StatTime).Value(); got != 3661000 {
		t.Errorf("time value: got %v", got)
	}

	host.pushSteps(77)
	if got := get(StatStep).String(); got != "77" {
		t.Errorf("steps: got %q", got)
	}
	if got := get(StatCadence).String(); got != "0" {
		t.Errorf("cadence: got %q", got)
	}
	if got := get(StatDist).String(); got != "0m" {
		t.Errorf("dist: got %q", got)
	}
	if got := get(StatSpeed).String(); got != "0.0kph" {
		t.Errorf("speed: got %q", got)
	}
}

func TestOptionsNormalize(t *testing.T) {
	host := newFakeHost()
	s := New(host, nil, Options{PaceLength: -5, Notify: NotifySettings{Dist: NotifyOptions{Increment: -1}}})
	opts := s.Options()
	if opts.PaceLength != DefaultPaceLength {
		t.Errorf("Expected default pace length, got %d", opts.PaceLength)
	}
	if opts.Notify.Dist.Increment != 0 {
		t.Errorf("Expected negative increment disabled, got %d", opts.Notify.Dist.Increment)
	}
	if s.Owner() != DefaultOwner {
		t.Errorf("Expected default owner, got %q", s.Owner())
	}
}

func TestListen_Unsubscribe(t *testing.T) {
	host := newFakeHost()
	s := New(host, []StatID{StatBPM}, DefaultOptions())
	rec := &recorder{}
	stop := s.Listen(rec.listen)

	host.pushHeartRate(HeartRate{BPM: 100, Confidence: 80})
	stop()
	host.pushHeartRate(HeartRate{BPM: 101, Confidence: 80})

	if n := rec.count(SignalChanged, StatBPM); n != 1 {
		t.Errorf("Expected 1 event before unsubscribe, got %d", n)
	}
}
