package models

import (
	"errors"
	"time"
)

// Ошибки валидации
var (
	ErrInvalidPosition  = errors.New("invalid position")
	ErrInvalidSteps     = errors.New("invalid step count")
	ErrInvalidHeartRate = errors.New("invalid heart rate")
	ErrInvalidTimestamp = errors.New("invalid timestamp")
)

// Position GPS отметка
type Position struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
	// Speed скорость в км/ч
	Speed float64 `json:"speed" yaml:"speed"`
	Fix   bool    `json:"fix" yaml:"fix"`
}

// HeartRate показание пульсометра
type HeartRate struct {
	BPM        int `json:"bpm"`
	Confidence int `json:"confidence"`
}

// Sample показания всех датчиков на одном тике
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	Position  Position  `json:"gps"`
	// Steps абсолютный счетчик шагов устройства
	Steps     int       `json:"steps"`
	HeartRate HeartRate `json:"hrm"`
}

// Validate проверяет корректность данных
func (s Sample) Validate() error {
	if s.Position.Lat < -90 || s.Position.Lat > 90 || s.Position.Lon < -180 || s.Position.Lon > 180 {
		return ErrInvalidPosition
	}
	if s.Position.Speed < 0 {
		return ErrInvalidPosition
	}
	if s.Steps < 0 {
		return ErrInvalidSteps
	}
	if s.HeartRate.BPM < 0 || s.HeartRate.BPM > 250 || s.HeartRate.Confidence < 0 || s.HeartRate.Confidence > 100 {
		return ErrInvalidHeartRate
	}
	if s.Timestamp.IsZero() {
		return ErrInvalidTimestamp
	}
	return nil
}
