package session

import (
	"errors"
	"time"

	"github.com/Krimson/exstats/pkg/exstats"
	"github.com/Krimson/exstats/tracker/internal/device"
)

var (
	// ErrSessionNotFound сессия с таким ID не создавалась или уже удалена
	ErrSessionNotFound = errors.New("session not found")
	// ErrUnknownStat запрошена статистика, которой нет в каталоге
	ErrUnknownStat = errors.New("unknown stat")
	// ErrNoStats не выбрано ни одной статистики
	ErrNoStats = errors.New("no stats selected")
	// ErrMenuItemNotFound пункта меню с таким заголовком нет
	ErrMenuItemNotFound = errors.New("menu item not found")
)

// OwnerPrefix префикс тега владельца датчиков для сессий трекера
const OwnerPrefix = exstats.DefaultOwner + ":"

// CreateSessionRequest запрос на создание сессии
type CreateSessionRequest struct {
	Stats []exstats.StatID `json:"stats"`
	// Options если не заданы, берутся из хранилища настроек
	Options *exstats.Options `json:"options,omitempty"`
}

// StatSnapshot текущее значение одной статистики
type StatSnapshot struct {
	ID    exstats.StatID `json:"id"`
	Title string         `json:"title"`
	Value float64        `json:"value"`
	Text  string         `json:"text"`
}

// Snapshot состояние сессии для API
type Snapshot struct {
	ID        string          `json:"id"`
	Owner     string          `json:"owner"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	ElapsedMS int64           `json:"elapsed_ms"`
	Distance  float64         `json:"distance"`
	BPM       int             `json:"bpm"`
	Cadence   int             `json:"cadence"`
	Options   exstats.Options `json:"options"`
	Stats     []StatSnapshot  `json:"stats"`
}

// GPSRequest GPS отметка для инъекции в шину
type GPSRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	// Speed скорость в км/ч
	Speed float64 `json:"speed"`
	Fix   bool    `json:"fix"`
}

// StepsRequest абсолютный счетчик шагов устройства
type StepsRequest struct {
	Count int `json:"count"`
}

// HeartRateRequest показание пульсометра
type HeartRateRequest struct {
	BPM        int `json:"bpm"`
	Confidence int `json:"confidence"`
}

// PowerResponse состояние питания датчиков
type PowerResponse struct {
	Sensors []device.SensorPower `json:"sensors"`
}

// MenuItemResponse пункт меню настроек
type MenuItemResponse struct {
	Title   string   `json:"title"`
	Value   int      `json:"value"`
	Choices []string `json:"choices"`
}

// MenuUpdateRequest выбор варианта пункта меню
type MenuUpdateRequest struct {
	Value int `json:"value"`
}
