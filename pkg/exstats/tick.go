package exstats

import "math"

// tick вызывается раз в секунду: каденс, время, устаревание пульса,
// уведомления по времени
func (s *Session) tick() {
	if !s.state.Active {
		return
	}
	st := &s.state
	duration := s.elapsedMS()

	// Каденс - шаги за последнюю минуту, пересчитанные на минуту
	// если с начала прошло меньше минуты
	window := duration
	if window > HistorySeconds*1000 {
		window = HistorySeconds * 1000
	}
	st.StepsPerMinute = 0
	if window > 0 {
		st.StepsPerMinute = int(math.Round(60000 * float64(st.stepsInWindow()) / float64(window)))
	}
	s.emit(SignalChanged, StatCadence)

	st.shiftHistory()
	s.emit(SignalChanged, StatTime)

	st.BPMAge++
	if st.BPM != 0 && st.BPMAge > BPMMaxAge {
		st.BPM = 0
		s.emit(SignalChanged, StatBPM)
	}

	if st.Notify.Time.cross(float64(duration)) {
		s.emit(SignalNotify, StatTime)
	}
}
