package exstats

import (
	"strconv"

	"github.com/Krimson/exstats/pkg/format"
)

// Stat одна статистика тренировки. Не хранит собственного состояния,
// значение читается из состояния сессии.
type Stat struct {
	ID    StatID `json:"id"`
	Title string `json:"title"`

	value func() float64
	text  func() string
}

// Value возвращает числовое значение статистики
func (st *Stat) Value() float64 {
	return st.value()
}

// String возвращает отформатированное значение для отображения
func (st *Stat) String() string {
	return st.text()
}

// buildStat создает статистику, привязанную к сессии
func (s *Session) buildStat(id StatID) *Stat {
	switch id {
	case StatTime:
		// После Stop время не растет, в отличие от часов устройства,
		// которые продолжают отсчет от startTime
		stat := &Stat{ID: id, Title: "Time"}
		stat.value = func() float64 { return float64(s.elapsedMS()) }
		stat.text = func() string { return format.Elapsed(s.elapsedMS()) }
		return stat

	case StatDist:
		return &Stat{
			ID:    id,
			Title: "Dist",
			value: func() float64 { return s.state.Distance },
			text:  func() string { return s.locale.Distance(s.state.Distance) },
		}

	case StatStep:
		return &Stat{
			ID:    id,
			Title: "Steps",
			value: func() float64 { return float64(s.steps()) },
			text:  func() string { return strconv.Itoa(s.steps()) },
		}

	case StatBPM:
		return &Stat{
			ID:    id,
			Title: "BPM",
			value: func() float64 { return float64(s.state.BPM) },
			text: func() string {
				if s.state.BPM == 0 {
					return "--"
				}
				return strconv.Itoa(s.state.BPM)
			},
		}

	case StatPaceAvg:
		return &Stat{
			ID:    id,
			Title: "A Pace",
			value: func() float64 { return s.state.AvgSpeed },
			text:  func() string { return format.Pace(s.state.AvgSpeed, s.opts.PaceLength) },
		}

	case StatPaceCur:
		return &Stat{
			ID:    id,
			Title: "C Pace",
			value: func() float64 { return s.state.CurSpeed },
			text:  func() string { return format.Pace(s.state.CurSpeed, s.opts.PaceLength) },
		}

	case StatSpeed:
		return &Stat{
			ID:    id,
			Title: "Speed",
			value: func() float64 { return s.state.CurSpeed * 3.6 },
			text:  func() string { return s.locale.Speed(s.state.CurSpeed * 3.6) },
		}

	case StatCadence:
		return &Stat{
			ID:    id,
			Title: "Cadence",
			value: func() float64 { return float64(s.state.StepsPerMinute) },
			text:  func() string { return strconv.Itoa(s.state.StepsPerMinute) },
		}
	}
	return nil
}
