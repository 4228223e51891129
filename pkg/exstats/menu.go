package exstats

import (
	"errors"
	"fmt"
)

// ErrMenuValueOutOfRange значение пункта меню вне допустимого диапазона
var ErrMenuValueOutOfRange = errors.New("menu value out of range")

// MenuItem пункт меню настроек с выбором из перечисления
type MenuItem struct {
	Title    string
	Min      int
	Max      int
	Value    int
	Format   func(v int) string
	OnChange func(v int)
}

// Set выбирает значение и вызывает OnChange
func (it *MenuItem) Set(v int) error {
	if v < it.Min || v > it.Max {
		return fmt.Errorf("%w: %s=%d (allowed %d..%d)", ErrMenuValueOutOfRange, it.Title, v, it.Min, it.Max)
	}
	it.Value = v
	if it.OnChange != nil {
		it.OnChange(v)
	}
	return nil
}

// Choices возвращает подписи всех вариантов
func (it *MenuItem) Choices() []string {
	choices := make([]string, 0, it.Max-it.Min+1)
	for v := it.Min; v <= it.Max; v++ {
		choices = append(choices, it.Format(v))
	}
	return choices
}

// Menu упорядоченный набор пунктов меню
type Menu struct {
	items []*MenuItem
}

// NewMenu создает пустое меню
func NewMenu() *Menu {
	return &Menu{}
}

// Add добавляет пункт; пункт с тем же заголовком заменяется
func (m *Menu) Add(item *MenuItem) {
	for i, existing := range m.items {
		if existing.Title == item.Title {
			m.items[i] = item
			return
		}
	}
	m.items = append(m.items, item)
}

// Items возвращает пункты в порядке добавления
func (m *Menu) Items() []*MenuItem {
	items := make([]*MenuItem, len(m.items))
	copy(items, m.items)
	return items
}

// Item ищет пункт по заголовку
func (m *Menu) Item(title string) (*MenuItem, bool) {
	for _, item := range m.items {
		if item.Title == title {
			return item, true
		}
	}
	return nil, false
}

var (
	paceNames = []string{"1000m", "1 mile", "1/2 Mthn", "Marathon"}
	paceAmts  = []int64{1000, 1609, 21098, 42195}

	distNames = []string{"Off", "1000m", "1 mile", "1/2 Mthn", "Marathon"}
	distAmts  = []int64{0, 1000, 1609, 21098, 42195}

	timeNames = []string{"Off", "30s", "1min", "2min", "5min", "10min", "30min", "1hr"}
	timeAmts  = []int64{0, 30000, 60000, 120000, 300000, 600000, 1800000, 3600000}

	stepNames = []string{"Off", "100", "500", "1000", "5000", "10000"}
	stepAmts  = []int64{0, 100, 500, 1000, 5000, 10000}
)

// AppendMenuItems добавляет в меню пункты темпа и трех каналов уведомлений.
// Каждое изменение записывается в settings и вызывает save.
func AppendMenuItems(menu *Menu, settings *Options, save func()) {
	changed := func() {
		if save != nil {
			save()
		}
	}

	menu.Add(enumItem("Pace", paceNames, paceAmts, int64(settings.PaceLength), func(v int64) {
		settings.PaceLength = int(v)
		changed()
	}))
	menu.Add(enumItem("Ntfy Dist", distNames, distAmts, settings.Notify.Dist.Increment, func(v int64) {
		settings.Notify.Dist.Increment = v
		changed()
	}))
	menu.Add(enumItem("Ntfy Time", timeNames, timeAmts, settings.Notify.Time.Increment, func(v int64) {
		settings.Notify.Time.Increment = v
		changed()
	}))
	menu.Add(enumItem("Ntfy Steps", stepNames, stepAmts, settings.Notify.Steps.Increment, func(v int64) {
		settings.Notify.Steps.Increment = v
		changed()
	}))
}

// enumItem пункт меню над перечислением; неизвестное текущее значение - индекс 0
func enumItem(title string, names []string, amounts []int64, current int64, apply func(int64)) *MenuItem {
	value := 0
	for i, amt := range amounts {
		if amt == current {
			value = i
			break
		}
	}
	return &MenuItem{
		Title:    title,
		Min:      0,
		Max:      len(names) - 1,
		Value:    value,
		Format:   func(v int) string { return names[v] },
		OnChange: func(v int) { apply(amounts[v]) },
	}
}
