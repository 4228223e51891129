package exstats

import "github.com/Krimson/exstats/pkg/geo"

// onGPS учитывает новую GPS отметку: дистанцию, среднюю и текущую скорость
func (s *Session) onGPS(fix GeoFix) {
	if !fix.Fix || !s.state.Active {
		return
	}

	st := &s.state
	st.LastFix = st.CurrentFix
	st.CurrentFix = fix
	if st.LastFix.Fix {
		st.Distance += geo.DistanceMeters(
			geo.Point{Lat: st.LastFix.Lat, Lon: st.LastFix.Lon},
			geo.Point{Lat: fix.Lat, Lon: fix.Lon},
		)
	}
	s.emit(SignalChanged, StatDist)

	st.AvgSpeed = 0
	if duration := s.elapsedMS(); duration > 0 {
		st.AvgSpeed = st.Distance * 1000 / float64(duration)
	}
	speed := fix.Speed
	if speed < 0 {
		speed = 0
	}
	st.CurSpeed = st.CurSpeed*(1-speedSmoothing) + speed*speedSmoothing/3.6
	s.emit(SignalChanged, StatPaceAvg)
	s.emit(SignalChanged, StatPaceCur)
	s.emit(SignalChanged, StatSpeed)

	if st.Notify.Dist.cross(st.Distance) {
		s.emit(SignalNotify, StatDist)
	}
}

// onStep учитывает новое значение абсолютного счетчика шагов
func (s *Session) onStep(total int) {
	if !s.state.Active {
		return
	}
	s.emit(SignalChanged, StatStep)

	st := &s.state
	// Счетчик устройства мог сброситься - такой скачок не считаем шагами
	if delta := total - st.LastStepCount; delta > 0 {
		st.StepHistory[0] += delta
	}
	st.LastStepCount = total

	if st.Notify.Steps.cross(float64(total)) {
		s.emit(SignalNotify, StatStep)
	}
}

// onHeartRate принимает уверенное показание пульса.
// Не зависит от Active: пульс отслеживается и вне тренировки.
func (s *Session) onHeartRate(h HeartRate) {
	if h.Confidence < MinConfidence {
		return
	}
	bpm := h.BPM
	if bpm < 0 {
		bpm = 0
	}
	s.state.BPM = bpm
	s.state.BPMAge = 0
	s.emit(SignalChanged, StatBPM)
}
