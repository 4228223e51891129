package exstats

import "time"

// StatID идентификатор статистики тренировки
type StatID string

const (
	StatTime    StatID = "time"
	StatDist    StatID = "dist"
	StatStep    StatID = "step"
	StatBPM     StatID = "bpm"
	StatPaceAvg StatID = "pacea"
	StatPaceCur StatID = "pacec"
	StatSpeed   StatID = "speed"
	StatCadence StatID = "caden"
)

// StatInfo описывает доступный тип статистики
type StatInfo struct {
	Name string `json:"name"`
	ID   StatID `json:"id"`
}

// catalog фиксированный порядок статистик; индекс используется в statSet
var catalog = []StatInfo{
	{Name: "Time", ID: StatTime},
	{Name: "Distance", ID: StatDist},
	{Name: "Steps", ID: StatStep},
	{Name: "Heart (BPM)", ID: StatBPM},
	{Name: "Pace (avg)", ID: StatPaceAvg},
	{Name: "Pace (curr)", ID: StatPaceCur},
	{Name: "Speed", ID: StatSpeed},
	{Name: "Cadence", ID: StatCadence},
}

// List возвращает список доступных статистик
func List() []StatInfo {
	list := make([]StatInfo, len(catalog))
	copy(list, catalog)
	return list
}

// Valid проверяет, что идентификатор есть в каталоге
func (id StatID) Valid() bool {
	return statIndex(id) >= 0
}

func statIndex(id StatID) int {
	for i, info := range catalog {
		if info.ID == id {
			return i
		}
	}
	return -1
}

// statSet набор выбранных статистик (битовая маска по индексу каталога)
type statSet uint16

func (s statSet) has(id StatID) bool {
	i := statIndex(id)
	return i >= 0 && s&(1<<uint(i)) != 0
}

func (s *statSet) add(id StatID) {
	if i := statIndex(id); i >= 0 {
		*s |= 1 << uint(i)
	}
}

// GeoFix одна GPS отметка. Speed - мгновенная скорость в км/ч
type GeoFix struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Speed float64 `json:"speed"`
	Fix   bool    `json:"fix"`
}

// HeartRate показание пульсометра
type HeartRate struct {
	BPM        int `json:"bpm"`
	Confidence int `json:"confidence"`
}

// Sensor тип датчика, питанием которого управляет хост
type Sensor string

const (
	SensorGPS       Sensor = "gps"
	SensorHeartRate Sensor = "heart-rate"
)

// Signal тип сигнала, отправляемого слушателям статистики
type Signal string

const (
	// SignalChanged значение статистики изменилось
	SignalChanged Signal = "changed"
	// SignalNotify пересечен порог уведомления
	SignalNotify Signal = "notify"
)

// Event сигнал по конкретной статистике
type Event struct {
	Signal Signal
	Stat   *Stat
}

// Host источник событий устройства (GPS, шагомер, пульсометр, таймер, питание)
type Host interface {
	// SubscribeGPS подписывает обработчик на GPS отметки, возвращает функцию отписки
	SubscribeGPS(fn func(GeoFix)) func()

	// SubscribeSteps подписывает обработчик на абсолютный счетчик шагов
	SubscribeSteps(fn func(int)) func()

	// SubscribeHeartRate подписывает обработчик на показания пульса
	SubscribeHeartRate(fn func(HeartRate)) func()

	// CurrentStepCount возвращает текущий абсолютный счетчик шагов
	CurrentStepCount() int

	// SetSensorPower включает/выключает датчик; запросы считаются по тегу владельца
	SetSensorPower(sensor Sensor, on bool, owner string)

	// ScheduleRepeating вызывает fn каждые interval, возвращает функцию отмены
	ScheduleRepeating(interval time.Duration, fn func()) func()

	// Now возвращает текущее время (монотонный источник)
	Now() time.Time
}
