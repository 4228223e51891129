package device

import (
	"log"
	"sort"
	"sync"

	"github.com/Krimson/exstats/pkg/exstats"
)

// Power управляет питанием датчиков. Датчик включен, пока его держит
// хотя бы один владелец; запросы одного владельца не суммируются.
type Power struct {
	mu     sync.RWMutex
	owners map[exstats.Sensor]map[string]struct{}

	onChange func(sensor exstats.Sensor, on bool)
}

// SensorPower состояние питания датчика
type SensorPower struct {
	Sensor exstats.Sensor `json:"sensor"`
	On     bool           `json:"on"`
	Owners []string       `json:"owners"`
}

// NewPower создает менеджер питания; onChange вызывается при включении/выключении
func NewPower(onChange func(sensor exstats.Sensor, on bool)) *Power {
	return &Power{
		owners:   make(map[exstats.Sensor]map[string]struct{}),
		onChange: onChange,
	}
}

// Set регистрирует или снимает запрос владельца
func (p *Power) Set(sensor exstats.Sensor, on bool, owner string) {
	p.mu.Lock()
	owners, ok := p.owners[sensor]
	if !ok {
		owners = make(map[string]struct{})
		p.owners[sensor] = owners
	}
	wasOn := len(owners) > 0
	if on {
		owners[owner] = struct{}{}
	} else {
		delete(owners, owner)
	}
	isOn := len(owners) > 0
	p.mu.Unlock()

	if wasOn == isOn {
		return
	}
	if isOn {
		log.Printf("[POWER] %s on (owner=%s)", sensor, owner)
	} else {
		log.Printf("[POWER] %s off (last owner=%s)", sensor, owner)
	}
	if p.onChange != nil {
		p.onChange(sensor, isOn)
	}
}

// Powered сообщает, включен ли датчик
func (p *Power) Powered(sensor exstats.Sensor) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.owners[sensor]) > 0
}

// Owners возвращает отсортированный список владельцев датчика
func (p *Power) Owners(sensor exstats.Sensor) []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	owners := make([]string, 0, len(p.owners[sensor]))
	for owner := range p.owners[sensor] {
		owners = append(owners, owner)
	}
	sort.Strings(owners)
	return owners
}

// Snapshot возвращает состояние всех известных датчиков
func (p *Power) Snapshot() []SensorPower {
	sensors := []exstats.Sensor{exstats.SensorGPS, exstats.SensorHeartRate}
	result := make([]SensorPower, 0, len(sensors))
	for _, sensor := range sensors {
		owners := p.Owners(sensor)
		result = append(result, SensorPower{
			Sensor: sensor,
			On:     len(owners) > 0,
			Owners: owners,
		})
	}
	return result
}
