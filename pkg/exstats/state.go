package exstats

import "time"

const (
	// HistorySeconds длина окна истории шагов
	HistorySeconds = 60

	// BPMMaxAge через сколько тиков без уверенного показания пульс сбрасывается
	BPMMaxAge = 60

	// MinConfidence минимальная уверенность пульсометра
	MinConfidence = 60

	// speedSmoothing коэффициент экспоненциального сглаживания текущей скорости
	speedSmoothing = 0.2
)

// State накопленное состояние сессии
type State struct {
	Active    bool      `json:"active"`
	StartTime time.Time `json:"startTime"`
	StopTime  time.Time `json:"stopTime"`

	StartSteps    int `json:"startSteps"`
	LastStepCount int `json:"lastStepCount"`

	LastFix    GeoFix `json:"lastFix"`
	CurrentFix GeoFix `json:"currentFix"`

	// Distance пройденная дистанция в метрах
	Distance float64 `json:"distance"`
	// AvgSpeed средняя скорость за всю сессию, м/с
	AvgSpeed float64 `json:"avgSpeed"`
	// CurSpeed сглаженная текущая скорость, м/с
	CurSpeed float64 `json:"curSpeed"`

	// StepHistory шаги за каждую секунду последней минуты (0 - текущая секунда)
	StepHistory    [HistorySeconds]int `json:"stepHistory"`
	StepsPerMinute int                 `json:"stepsPerMinute"`

	BPM    int `json:"bpm"`
	BPMAge int `json:"bpmAge"`

	Notify NotifyState `json:"notify"`
}

// reset полностью сбрасывает накопители и заново ставит отметки начала
func (st *State) reset(now time.Time, steps int, opts Options) {
	st.StartTime = now
	st.StopTime = now
	st.StartSteps = steps
	st.LastStepCount = steps
	st.LastFix = GeoFix{}
	st.CurrentFix = GeoFix{}
	st.StepHistory = [HistorySeconds]int{}
	st.StepsPerMinute = 0
	st.Distance = 0
	st.AvgSpeed = 0
	st.CurSpeed = 0
	st.BPM = 0
	st.BPMAge = 0

	st.Notify.Dist.arm(opts.Notify.Dist.Increment, st.Distance)
	st.Notify.Steps.arm(opts.Notify.Steps.Increment, float64(st.StartSteps))
	st.Notify.Time.arm(opts.Notify.Time.Increment, 0)
}

// elapsed возвращает длительность сессии; после остановки время замораживается
func (st *State) elapsed(now time.Time) time.Duration {
	end := now
	if !st.Active {
		end = st.StopTime
	}
	if d := end.Sub(st.StartTime); d > 0 {
		return d
	}
	return 0
}

// ElapsedMS длительность сессии в миллисекундах на момент now
func (st State) ElapsedMS(now time.Time) int64 {
	return st.elapsed(now).Milliseconds()
}

// stepsInWindow сумма шагов в окне истории
func (st *State) stepsInWindow() int {
	sum := 0
	for _, v := range st.StepHistory {
		sum += v
	}
	return sum
}

// shiftHistory сдвигает историю на секунду, самая старая запись отбрасывается
func (st *State) shiftHistory() {
	copy(st.StepHistory[1:], st.StepHistory[:HistorySeconds-1])
	st.StepHistory[0] = 0
}
