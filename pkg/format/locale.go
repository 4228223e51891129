package format

import (
	"fmt"
	"math"
	"strings"
)

// Locale форматирует расстояние и скорость для отображения
type Locale interface {
	// Distance форматирует расстояние в метрах
	Distance(meters float64) string

	// Speed форматирует скорость в км/ч
	Speed(kph float64) string
}

const metersPerMile = 1609.344

var (
	// Metric - километры и км/ч
	Metric Locale = metricLocale{}

	// Imperial - мили и мили в час
	Imperial Locale = imperialLocale{}
)

type metricLocale struct{}

func (metricLocale) Distance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%dm", int64(math.Round(meters)))
	}
	return fmt.Sprintf("%.2fkm", meters/1000)
}

func (metricLocale) Speed(kph float64) string {
	return fmt.Sprintf("%.1fkph", kph)
}

type imperialLocale struct{}

func (imperialLocale) Distance(meters float64) string {
	miles := meters / metersPerMile
	if miles < 0.1 {
		return fmt.Sprintf("%dyd", int64(math.Round(meters/0.9144)))
	}
	return fmt.Sprintf("%.2fmi", miles)
}

func (imperialLocale) Speed(kph float64) string {
	return fmt.Sprintf("%.1fmph", kph*1000/metersPerMile)
}

// LocaleByName возвращает локаль по имени, по умолчанию Metric
func LocaleByName(name string) Locale {
	switch strings.ToLower(name) {
	case "imperial", "en_us", "en_gb":
		return Imperial
	default:
		return Metric
	}
}
