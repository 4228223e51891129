package exstats

// DefaultPaceLength дистанция для расчета темпа по умолчанию (1 км)
const DefaultPaceLength = 1000

// NotifyOptions настройки одного канала уведомлений.
// Increment: 0 - выключено, иначе шаг в метрах, шагах или миллисекундах
type NotifyOptions struct {
	Increment int64 `json:"increment"`
}

// NotifySettings настройки всех каналов уведомлений
type NotifySettings struct {
	Dist  NotifyOptions `json:"dist"`
	Steps NotifyOptions `json:"steps"`
	Time  NotifyOptions `json:"time"`
}

// Options настройки сессии
type Options struct {
	// PaceLength дистанция в метрах, по которой считается темп
	PaceLength int            `json:"paceLength"`
	Notify     NotifySettings `json:"notify"`
}

// DefaultOptions возвращает настройки по умолчанию
func DefaultOptions() Options {
	return Options{PaceLength: DefaultPaceLength}
}

// normalize подставляет значения по умолчанию вместо некорректных
func (o Options) normalize() Options {
	if o.PaceLength <= 0 {
		o.PaceLength = DefaultPaceLength
	}
	if o.Notify.Dist.Increment < 0 {
		o.Notify.Dist.Increment = 0
	}
	if o.Notify.Steps.Increment < 0 {
		o.Notify.Steps.Increment = 0
	}
	if o.Notify.Time.Increment < 0 {
		o.Notify.Time.Increment = 0
	}
	return o
}
