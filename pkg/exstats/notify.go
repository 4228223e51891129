package exstats

// Threshold канал уведомлений: шаг и следующий порог
type Threshold struct {
	Increment float64 `json:"increment"`
	Next      float64 `json:"next"`
}

// NotifyState пороги уведомлений по дистанции, шагам и времени.
// Time хранится в миллисекундах от начала сессии.
type NotifyState struct {
	Dist  Threshold `json:"dist"`
	Steps Threshold `json:"steps"`
	Time  Threshold `json:"time"`
}

// arm выставляет первый порог относительно base
func (t *Threshold) arm(increment int64, base float64) {
	t.Increment = float64(increment)
	t.Next = 0
	if increment > 0 {
		t.Next = base + t.Increment
	}
}

// cross проверяет пересечение порога. За один вызов порог сдвигается
// не более чем на один шаг, пропущенные пороги не догоняются.
func (t *Threshold) cross(current float64) bool {
	if t.Increment <= 0 || current < t.Next {
		return false
	}
	t.Next += t.Increment
	return true
}
