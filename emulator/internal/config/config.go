package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig некорректные параметры эмулятора
var ErrInvalidConfig = errors.New("invalid emulator configuration")

type Config struct {
	Emulator  EmulatorConfig  `yaml:"emulator"`
	Route     RouteConfig     `yaml:"route"`
	Steps     StepsConfig     `yaml:"steps"`
	HeartRate HeartRateConfig `yaml:"heart_rate"`
	Output    OutputConfig    `yaml:"output"`
}

type EmulatorConfig struct {
	Duration   time.Duration `yaml:"duration"`
	SampleRate time.Duration `yaml:"rate"`
	Jitter     time.Duration `yaml:"jitter"`
	// Seed 0 - случайный
	Seed int64 `yaml:"seed"`
}

type RouteConfig struct {
	StartLat float64 `yaml:"start_lat"`
	StartLon float64 `yaml:"start_lon"`
	// Bearing начальный курс в градусах
	Bearing float64 `yaml:"bearing"`
	// SpeedKPH целевая скорость в км/ч
	SpeedKPH         float64 `yaml:"speed_kph"`
	SpeedVariability float64 `yaml:"speed_variability"`
	// LostFixProbability вероятность потери GPS отметки на тике
	LostFixProbability float64 `yaml:"lost_fix_probability"`
	// TrackFile CSV трек для воспроизведения вместо генерации
	TrackFile string `yaml:"track_file"`
}

type StepsConfig struct {
	// Cadence шагов в минуту
	Cadence     int `yaml:"cadence"`
	Variability int `yaml:"variability"`
	// StartCount начальное значение счетчика устройства
	StartCount int `yaml:"start_count"`
}

type HeartRateConfig struct {
	MinValue    int `yaml:"min"`
	MaxValue    int `yaml:"max"`
	BaseValue   int `yaml:"base"`
	Variability int `yaml:"variability"`
	// LowConfidenceProbability вероятность показания с низкой достоверностью
	LowConfidenceProbability float64 `yaml:"low_confidence_probability"`
}

type OutputConfig struct {
	// TargetURL адрес трекера; пустой - только файл
	TargetURL string `yaml:"target_url"`
	FilePath  string `yaml:"file"`
	// RequestsPerSecond ограничение запросов к трекеру
	RequestsPerSecond float64 `yaml:"requests_per_second"`
}

// Default возвращает настройки пробежки по умолчанию: 10 км/ч, 165 шагов/мин, пульс 145
func Default() Config {
	return Config{
		Emulator: EmulatorConfig{
			Duration:   5 * time.Minute,
			SampleRate: time.Second,
			Jitter:     50 * time.Millisecond,
		},
		Route: RouteConfig{
			StartLat:           55.7558,
			StartLon:           37.6173,
			Bearing:            90,
			SpeedKPH:           10,
			SpeedVariability:   1.5,
			LostFixProbability: 0.02,
		},
		Steps: StepsConfig{
			Cadence:     165,
			Variability: 8,
		},
		HeartRate: HeartRateConfig{
			MinValue:                 60,
			MaxValue:                 200,
			BaseValue:                145,
			Variability:              6,
			LowConfidenceProbability: 0.05,
		},
		Output: OutputConfig{
			TargetURL:         "http://localhost:8080",
			FilePath:          "",
			RequestsPerSecond: 20,
		},
	}
}

// Load разбирает аргументы командной строки. Если задан -scenario, значения
// читаются из YAML, а явно указанные флаги имеют приоритет.
func Load(args []string) (*Config, error) {
	defaults := Default()
	fs := flag.NewFlagSet("emulator", flag.ContinueOnError)

	scenario := fs.String("scenario", "", "YAML файл сценария")
	target := fs.String("target", defaults.Output.TargetURL, "Адрес трекера (пусто - не отправлять)")
	output := fs.String("output", defaults.Output.FilePath, "Выходной JSONL файл")
	rps := fs.Float64("rps", defaults.Output.RequestsPerSecond, "Максимум запросов к трекеру в секунду")
	duration := fs.Duration("duration", defaults.Emulator.Duration, "Длительность работы")
	rate := fs.Duration("rate", defaults.Emulator.SampleRate, "Частота дискретизации")
	jitter := fs.Duration("jitter", defaults.Emulator.Jitter, "Случайное отклонение меток времени")
	seed := fs.Int64("seed", 0, "Seed генераторов (0 - случайный)")
	track := fs.String("track", "", "CSV трек для воспроизведения")
	speed := fs.Float64("speed", defaults.Route.SpeedKPH, "Скорость, км/ч")
	cadence := fs.Int("cadence", defaults.Steps.Cadence, "Каденс, шагов в минуту")
	bpm := fs.Int("bpm", defaults.HeartRate.BaseValue, "Базовый пульс")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := defaults
	if *scenario != "" {
		if err := loadScenario(*scenario, &cfg); err != nil {
			return nil, err
		}
	}

	overrides := map[string]func(){
		"target":   func() { cfg.Output.TargetURL = *target },
		"output":   func() { cfg.Output.FilePath = *output },
		"rps":      func() { cfg.Output.RequestsPerSecond = *rps },
		"duration": func() { cfg.Emulator.Duration = *duration },
		"rate":     func() { cfg.Emulator.SampleRate = *rate },
		"jitter":   func() { cfg.Emulator.Jitter = *jitter },
		"seed":     func() { cfg.Emulator.Seed = *seed },
		"track":    func() { cfg.Route.TrackFile = *track },
		"speed":    func() { cfg.Route.SpeedKPH = *speed },
		"cadence":  func() { cfg.Steps.Cadence = *cadence },
		"bpm":      func() { cfg.HeartRate.BaseValue = *bpm },
	}
	fs.Visit(func(f *flag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply()
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadScenario(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read scenario %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse scenario %s: %w", path, err)
	}
	return nil
}

// Validate проверяет согласованность параметров
func (c *Config) Validate() error {
	switch {
	case c.Emulator.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive", ErrInvalidConfig)
	case c.Emulator.SampleRate <= 0:
		return fmt.Errorf("%w: rate must be positive", ErrInvalidConfig)
	case c.Emulator.Jitter < 0 || c.Emulator.Jitter >= c.Emulator.SampleRate:
		return fmt.Errorf("%w: jitter must be in [0, rate)", ErrInvalidConfig)
	case c.Route.SpeedKPH < 0 || c.Route.SpeedVariability < 0:
		return fmt.Errorf("%w: speed must not be negative", ErrInvalidConfig)
	case c.Route.LostFixProbability < 0 || c.Route.LostFixProbability > 1:
		return fmt.Errorf("%w: lost fix probability must be in [0, 1]", ErrInvalidConfig)
	case c.Steps.Cadence < 0 || c.Steps.Variability < 0 || c.Steps.StartCount < 0:
		return fmt.Errorf("%w: steps settings must not be negative", ErrInvalidConfig)
	case c.HeartRate.MinValue > c.HeartRate.MaxValue || c.HeartRate.Variability < 0:
		return fmt.Errorf("%w: heart rate range is empty", ErrInvalidConfig)
	case c.HeartRate.LowConfidenceProbability < 0 || c.HeartRate.LowConfidenceProbability > 1:
		return fmt.Errorf("%w: low confidence probability must be in [0, 1]", ErrInvalidConfig)
	case c.Output.TargetURL == "" && c.Output.FilePath == "":
		return fmt.Errorf("%w: either -target or -output is required", ErrInvalidConfig)
	}
	return nil
}
