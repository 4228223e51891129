package format

import (
	"fmt"
	"math"
)

// PacePlaceholder показывается вместо темпа, когда скорость слишком мала
const PacePlaceholder = "__:__"

// MinPaceSpeed порог скорости (м/с, ~600 м/ч), ниже которого темп не считается
const MinPaceSpeed = 0.1667

// Elapsed форматирует длительность в миллисекундах как H:MM:SS или MM:SS.
// Часы не дополняются нулями.
func Elapsed(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	hrs := ms / 3600000
	mins := (ms / 60000) % 60
	secs := (ms / 1000) % 60

	if hrs == 0 {
		return fmt.Sprintf("%02d:%02d", mins, secs)
	}
	return fmt.Sprintf("%d:%02d:%02d", hrs, mins, secs)
}

// Pace форматирует время прохождения paceLength метров при скорости
// speed (м/с) как MM:SS
func Pace(speed float64, paceLength int) string {
	if speed < MinPaceSpeed || math.IsNaN(speed) {
		return PacePlaceholder
	}
	pace := int64(math.Round(float64(paceLength) / speed)) // секунд на paceLength
	return fmt.Sprintf("%02d:%02d", pace/60, pace%60)
}
