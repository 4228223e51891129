package settings

import (
	"context"
	"errors"
	"sync"

	"github.com/Krimson/exstats/pkg/exstats"
)

// ErrSettingsNotFound профиль настроек еще не сохранялся
var ErrSettingsNotFound = errors.New("settings not found")

// Store хранилище настроек сессий по профилям
type Store interface {
	Load(ctx context.Context, profile string) (*exstats.Options, error)
	Save(ctx context.Context, profile string, opts *exstats.Options) error
}

// LoadOrDefault загружает профиль, а если его нет, возвращает настройки по умолчанию
func LoadOrDefault(ctx context.Context, store Store, profile string) (*exstats.Options, error) {
	opts, err := store.Load(ctx, profile)
	if errors.Is(err, ErrSettingsNotFound) {
		defaults := exstats.DefaultOptions()
		return &defaults, nil
	}
	if err != nil {
		return nil, err
	}
	return opts, nil
}

// MemoryStore хранит настройки в памяти процесса
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]exstats.Options
}

// NewMemoryStore создает пустое хранилище в памяти
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]exstats.Options)}
}

func (s *MemoryStore) Load(ctx context.Context, profile string) (*exstats.Options, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	opts, ok := s.profiles[profile]
	if !ok {
		return nil, ErrSettingsNotFound
	}
	return &opts, nil
}

func (s *MemoryStore) Save(ctx context.Context, profile string, opts *exstats.Options) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[profile] = *opts
	return nil
}
