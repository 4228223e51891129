package exstats

import (
	"errors"
	"testing"
)

func TestAppendMenuItems(t *testing.T) {
	settings := DefaultOptions()
	settings.Notify.Time.Increment = 300000
	settings.Notify.Steps.Increment = 777 // нет в перечислении
	saves := 0

	menu := NewMenu()
	AppendMenuItems(menu, &settings, func() { saves++ })

	items := menu.Items()
	titles := []string{"Pace", "Ntfy Dist", "Ntfy Time", "Ntfy Steps"}
	if len(items) != len(titles) {
		t.Fatalf("Expected %d items, got %d", len(titles), len(items))
	}
	for i, title := range titles {
		if items[i].Title != title {
			t.Errorf("Item %d: expected %q, got %q", i, title, items[i].Title)
		}
	}

	timeItem, _ := menu.Item("Ntfy Time")
	if timeItem.Value != 4 || timeItem.Format(timeItem.Value) != "5min" {
		t.Errorf("Expected Ntfy Time at 5min, got %d", timeItem.Value)
	}
	stepItem, _ := menu.Item("Ntfy Steps")
	if stepItem.Value != 0 {
		t.Errorf("Unknown value must map to index 0, got %d", stepItem.Value)
	}

	pace, _ := menu.Item("Pace")
	if err := pace.Set(3); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if settings.PaceLength != 42195 {
		t.Errorf("Expected marathon pace length, got %d", settings.PaceLength)
	}

	dist, _ := menu.Item("Ntfy Dist")
	if err := dist.Set(2); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if settings.Notify.Dist.Increment != 1609 {
		t.Errorf("Expected 1 mile notifications, got %d", settings.Notify.Dist.Increment)
	}
	if saves != 2 {
		t.Errorf("Expected 2 saves, got %d", saves)
	}

	if err := dist.Set(5); !errors.Is(err, ErrMenuValueOutOfRange) {
		t.Errorf("Expected out of range error, got %v", err)
	}
	if saves != 2 {
		t.Error("Rejected value must not save")
	}
}

func TestMenuItem_Choices(t *testing.T) {
	settings := DefaultOptions()
	menu := NewMenu()
	AppendMenuItems(menu, &settings, nil)

	steps, ok := menu.Item("Ntfy Steps")
	if !ok {
		t.Fatal("Ntfy Steps missing")
	}
	expected := []string{"Off", "100", "500", "1000", "5000", "10000"}
	choices := steps.Choices()
	if len(choices) != len(expected) {
		t.Fatalf("Expected %d choices, got %d", len(expected), len(choices))
	}
	for i := range expected {
		if choices[i] != expected[i] {
			t.Errorf("Choice %d: expected %q, got %q", i, expected[i], choices[i])
		}
	}

	// повторное добавление заменяет пункты
	AppendMenuItems(menu, &settings, nil)
	if len(menu.Items()) != 4 {
		t.Errorf("Expected 4 items after re-append, got %d", len(menu.Items()))
	}
}
