package exstats

import "testing"

func TestThreshold_SingleStepAdvance(t *testing.T) {
	th := Threshold{}
	th.arm(1000, 0)

	steps := []struct {
		current float64
		fire    bool
		next    float64
	}{
		{950, false, 1000},
		{1050, true, 2000},
		{1900, false, 2000},
		{3500, true, 3000},
		{3500, true, 4000},
		{3500, false, 4000},
	}

	for i, step := range steps {
		if got := th.cross(step.current); got != step.fire {
			t.Errorf("step %d: expected fire=%v, got %v", i, step.fire, got)
		}
		if th.Next != step.next {
			t.Errorf("step %d: expected next=%v, got %v", i, step.next, th.Next)
		}
	}
}

func TestThreshold_Disabled(t *testing.T) {
	th := Threshold{}
	th.arm(0, 500)
	if th.cross(1e9) {
		t.Error("Disabled channel must never fire")
	}
	if th.Next != 0 {
		t.Errorf("Disabled channel must not advance, got %v", th.Next)
	}
}

func TestNotify_Distance(t *testing.T) {
	host := newFakeHost()
	opts := DefaultOptions()
	opts.Notify.Dist.Increment = 1000
	s := New(host, []StatID{StatDist}, opts)
	rec := &recorder{}
	s.Listen(rec.listen)
	s.Start()

	host.pushGPS(GeoFix{Lat: 0, Lon: 0, Fix: true})
	host.pushGPS(GeoFix{Lat: latForMeters(950), Lon: 0, Fix: true})
	if rec.count(SignalNotify, StatDist) != 0 {
		t.Fatal("No notification expected below 1000m")
	}

	host.pushGPS(GeoFix{Lat: latForMeters(1050), Lon: 0, Fix: true})
	if rec.count(SignalNotify, StatDist) != 1 {
		t.Fatalf("Expected 1 notification, got %d", rec.count(SignalNotify, StatDist))
	}
	if next := s.State().Notify.Dist.Next; next != 2000 {
		t.Errorf("Expected next threshold 2000, got %v", next)
	}

	host.pushGPS(GeoFix{Lat: latForMeters(3500), Lon: 0, Fix: true})
	if rec.count(SignalNotify, StatDist) != 2 {
		t.Fatalf("Expected only one more notification, got %d", rec.count(SignalNotify, StatDist))
	}
	if next := s.State().Notify.Dist.Next; next != 3000 {
		t.Errorf("Expected next threshold 3000, got %v", next)
	}
}

func TestNotify_DistanceWithoutStatStillAdvances(t *testing.T) {
	host := newFakeHost()
	opts := DefaultOptions()
	opts.Notify.Dist.Increment = 100
	s := New(host, []StatID{StatSpeed}, opts)
	rec := &recorder{}
	s.Listen(rec.listen)
	s.Start()

	host.pushGPS(GeoFix{Lat: 0, Lon: 0, Fix: true})
	host.pushGPS(GeoFix{Lat: latForMeters(150), Lon: 0, Fix: true})

	for _, e := range rec.events {
		if e.Signal == SignalNotify {
			t.Fatal("No notify signal expected for an unselected stat")
		}
	}
	if next := s.State().Notify.Dist.Next; next != 200 {
		t.Errorf("Expected threshold to advance to 200, got %v", next)
	}
}

func TestNotify_Steps(t *testing.T) {
	host := newFakeHost()
	host.steps = 1000
	opts := DefaultOptions()
	opts.Notify.Steps.Increment = 100
	s := New(host, []StatID{StatStep}, opts)
	rec := &recorder{}
	s.Listen(rec.listen)
	s.Start()

	host.pushSteps(1050)
	host.pushSteps(1099)
	if rec.count(SignalNotify, StatStep) != 0 {
		t.Fatal("No notification expected before 1100 steps")
	}
	host.pushSteps(1100)
	if rec.count(SignalNotify, StatStep) != 1 {
		t.Fatal("Expected notification at 1100 steps")
	}
	host.pushSteps(1500)
	if rec.count(SignalNotify, StatStep) != 2 {
		t.Errorf("Expected exactly 2 notifications, got %d", rec.count(SignalNotify, StatStep))
	}
	if next := s.State().Notify.Steps.Next; next != 1300 {
		t.Errorf("Expected next threshold 1300, got %v", next)
	}
}

func TestNotify_Time(t *testing.T) {
	host := newFakeHost()
	opts := DefaultOptions()
	opts.Notify.Time.Increment = 30000
	s := New(host, []StatID{StatTime}, opts)
	rec := &recorder{}
	s.Listen(rec.listen)
	s.Start()

	for i := 1; i <= 29; i++ {
		host.tick()
	}
	if rec.count(SignalNotify, StatTime) != 0 {
		t.Fatal("No notification expected before 30s")
	}
	host.tick()
	if rec.count(SignalNotify, StatTime) != 1 {
		t.Fatal("Expected notification at 30s")
	}
	for i := 31; i <= 59; i++ {
		host.tick()
	}
	if rec.count(SignalNotify, StatTime) != 1 {
		t.Fatal("Expected a single notification before 60s")
	}
	host.tick()
	if rec.count(SignalNotify, StatTime) != 2 {
		t.Errorf("Expected second notification at 60s, got %d", rec.count(SignalNotify, StatTime))
	}
}
