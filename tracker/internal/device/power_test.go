package device

import (
	"testing"

	"github.com/Krimson/exstats/pkg/exstats"
)

func TestPower_RefCountedByOwner(t *testing.T) {
	var changes []bool
	p := NewPower(func(sensor exstats.Sensor, on bool) {
		if sensor == exstats.SensorGPS {
			changes = append(changes, on)
		}
	})

	p.Set(exstats.SensorGPS, true, "a")
	p.Set(exstats.SensorGPS, true, "a")
	p.Set(exstats.SensorGPS, true, "b")
	if !p.Powered(exstats.SensorGPS) {
		t.Fatal("Expected GPS on")
	}

	p.Set(exstats.SensorGPS, false, "a")
	if !p.Powered(exstats.SensorGPS) {
		t.Fatal("GPS must stay on while b holds it")
	}
	if owners := p.Owners(exstats.SensorGPS); len(owners) != 1 || owners[0] != "b" {
		t.Errorf("Expected owners [b], got %v", owners)
	}

	p.Set(exstats.SensorGPS, false, "b")
	if p.Powered(exstats.SensorGPS) {
		t.Fatal("Expected GPS off")
	}

	// лишнее выключение не меняет состояние
	p.Set(exstats.SensorGPS, false, "c")

	if len(changes) != 2 || !changes[0] || changes[1] {
		t.Errorf("Expected on/off transitions, got %v", changes)
	}
}

func TestPower_Snapshot(t *testing.T) {
	p := NewPower(nil)
	p.Set(exstats.SensorHeartRate, true, "exs")

	snapshot := p.Snapshot()
	if len(snapshot) != 2 {
		t.Fatalf("Expected 2 sensors, got %d", len(snapshot))
	}
	if snapshot[0].Sensor != exstats.SensorGPS || snapshot[0].On {
		t.Errorf("Unexpected GPS state: %+v", snapshot[0])
	}
	if snapshot[1].Sensor != exstats.SensorHeartRate || !snapshot[1].On || snapshot[1].Owners[0] != "exs" {
		t.Errorf("Unexpected HRM state: %+v", snapshot[1])
	}
}
