package session

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/Krimson/exstats/pkg/exstats"
	"github.com/Krimson/exstats/pkg/format"
	"github.com/Krimson/exstats/tracker/internal/device"
	"github.com/Krimson/exstats/tracker/internal/settings"
	"github.com/Krimson/exstats/tracker/internal/websocket"
	"github.com/google/uuid"
)

// Publisher получает сигналы статистик всех сессий
type Publisher interface {
	Publish(msg websocket.Message)
}

// Manager управляет сессиями тренировки поверх одной шины устройства
type Manager struct {
	bus         *device.Bus
	store       settings.Store
	profile     string
	publisher   Publisher
	locale      format.Locale
	callTimeout time.Duration

	mu       sync.RWMutex
	sessions map[string]*entry

	// settingsMu сериализует чтение-изменение-запись настроек
	settingsMu sync.Mutex
}

type entry struct {
	id        string
	createdAt time.Time
	session   *exstats.Session
	unlisten  func()
}

// release отписывает сессию и освобождает датчики; вызывать в горутине шины
func (e *entry) release() {
	e.unlisten()
	e.session.Close()
}

// Config параметры менеджера
type Config struct {
	Profile     string
	Locale      format.Locale
	CallTimeout time.Duration
}

// NewManager создает новый менеджер сессий
func NewManager(bus *device.Bus, store settings.Store, publisher Publisher, cfg Config) *Manager {
	if cfg.Locale == nil {
		cfg.Locale = format.Metric
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = 2 * time.Second
	}
	if cfg.Profile == "" {
		cfg.Profile = "default"
	}
	return &Manager{
		bus:         bus,
		store:       store,
		profile:     cfg.Profile,
		publisher:   publisher,
		locale:      cfg.Locale,
		callTimeout: cfg.CallTimeout,
		sessions:    make(map[string]*entry),
	}
}

// call выполняет fn в горутине шины с таймаутом
func (m *Manager) call(ctx context.Context, fn func()) error {
	ctx, cancel := context.WithTimeout(ctx, m.callTimeout)
	defer cancel()
	if err := m.bus.Call(ctx, fn); err != nil {
		return fmt.Errorf("device bus call failed: %w", err)
	}
	return nil
}

func (m *Manager) lookup(id string) (*entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return e, nil
}

// Create создает сессию с выбранными статистиками. Датчики включаются сразу,
// запись начинается после Start.
func (m *Manager) Create(ctx context.Context, req *CreateSessionRequest) (*Snapshot, error) {
	if len(req.Stats) == 0 {
		return nil, ErrNoStats
	}
	for _, id := range req.Stats {
		if !id.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStat, id)
		}
	}

	var opts exstats.Options
	if req.Options != nil {
		opts = *req.Options
	} else {
		stored, err := settings.LoadOrDefault(ctx, m.store, m.profile)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
		opts = *stored
	}

	e := &entry{
		id:        uuid.New().String(),
		createdAt: time.Now(),
	}

	// Вызов может завершиться по таймауту, когда fn уже стоит в очереди шины.
	// Тогда fn выполнится позже и должна сама закрыть созданную сессию.
	var (
		createMu  sync.Mutex
		cancelled bool
		snap      *Snapshot
	)
	err := m.call(ctx, func() {
		createMu.Lock()
		defer createMu.Unlock()

		e.session = exstats.New(m.bus, req.Stats, opts,
			exstats.WithOwner(OwnerPrefix+e.id),
			exstats.WithLocale(m.locale),
		)
		e.unlisten = e.session.Listen(m.forward(e.id))
		if cancelled {
			e.release()
			log.Printf("[WARN] Closed session %s created after failed call", e.id)
			return
		}
		snap = m.snapshot(e)
	})
	if err != nil {
		createMu.Lock()
		cancelled = true
		built := e.session != nil
		createMu.Unlock()

		if built {
			// fn успела выполниться, но ответ не дождались
			if postErr := m.bus.Post(context.Background(), e.release); postErr != nil {
				log.Printf("[ERROR] Failed to release session %s: %v", e.id, postErr)
			}
		}
		return nil, err
	}

	m.mu.Lock()
	m.sessions[e.id] = e
	m.mu.Unlock()

	log.Printf("[SESSION] Created new session: %s, stats: %v", e.id, req.Stats)
	return snap, nil
}

// forward пересылает сигналы сессии в publisher. Выполняется в горутине шины,
// поэтому значения статистик читаются здесь же.
func (m *Manager) forward(id string) func(exstats.Event) {
	return func(ev exstats.Event) {
		if m.publisher == nil || ev.Stat == nil {
			return
		}
		m.publisher.Publish(websocket.Message{
			SessionID: id,
			Signal:    string(ev.Signal),
			Stat:      string(ev.Stat.ID),
			Title:     ev.Stat.Title,
			Value:     ev.Stat.Value(),
			Text:      ev.Stat.String(),
			Timestamp: m.bus.Now().UnixMilli(),
		})
	}
}

// snapshot собирает состояние; вызывать только в горутине шины
func (m *Manager) snapshot(e *entry) *Snapshot {
	st := e.session.State()
	snap := &Snapshot{
		ID:        e.id,
		Owner:     e.session.Owner(),
		Active:    st.Active,
		CreatedAt: e.createdAt,
		ElapsedMS: st.ElapsedMS(m.bus.Now()),
		Distance:  st.Distance,
		BPM:       st.BPM,
		Cadence:   st.StepsPerMinute,
		Options:   e.session.Options(),
	}
	for _, stat := range e.session.Stats() {
		snap.Stats = append(snap.Stats, StatSnapshot{
			ID:    stat.ID,
			Title: stat.Title,
			Value: stat.Value(),
			Text:  stat.String(),
		})
	}
	return snap
}

// Start начинает запись сессии, сбрасывая накопленное
func (m *Manager) Start(ctx context.Context, id string) (*Snapshot, error) {
	e, err := m.lookup(id)
	if err != nil {
		return nil, err
	}

	var snap *Snapshot
	if err := m.call(ctx, func() {
		e.session.Start()
		snap = m.snapshot(e)
	}); err != nil {
		return nil, err
	}

	log.Printf("[SESSION] Started session: %s", id)
	return snap, nil
}

// Stop останавливает запись; накопленные значения сохраняются
func (m *Manager) Stop(ctx context.Context, id string) (*Snapshot, error) {
	e, err := m.lookup(id)
	if err != nil {
		return nil, err
	}

	var snap *Snapshot
	if err := m.call(ctx, func() {
		e.session.Stop()
		snap = m.snapshot(e)
	}); err != nil {
		return nil, err
	}

	log.Printf("[SESSION] Stopped session: %s, duration: %dms", id, snap.ElapsedMS)
	return snap, nil
}

// Snapshot возвращает текущее состояние сессии
func (m *Manager) Snapshot(ctx context.Context, id string) (*Snapshot, error) {
	e, err := m.lookup(id)
	if err != nil {
		return nil, err
	}

	var snap *Snapshot
	if err := m.call(ctx, func() { snap = m.snapshot(e) }); err != nil {
		return nil, err
	}
	return snap, nil
}

// List возвращает все сессии в порядке создания
func (m *Manager) List(ctx context.Context) ([]*Snapshot, error) {
	m.mu.RLock()
	entries := make([]*entry, 0, len(m.sessions))
	for _, e := range m.sessions {
		entries = append(entries, e)
	}
	m.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].createdAt.Before(entries[j].createdAt)
	})

	snaps := make([]*Snapshot, 0, len(entries))
	if err := m.call(ctx, func() {
		for _, e := range entries {
			snaps = append(snaps, m.snapshot(e))
		}
	}); err != nil {
		return nil, err
	}
	return snaps, nil
}

// Delete закрывает сессию: отписывает обработчики и освобождает датчики
func (m *Manager) Delete(ctx context.Context, id string) error {
	e, err := m.lookup(id)
	if err != nil {
		return err
	}

	// Запись удаляется только после Close, даже если fn выполнится
	// уже после таймаута вызова
	if err := m.call(ctx, func() {
		e.release()
		m.mu.Lock()
		if m.sessions[id] == e {
			delete(m.sessions, id)
		}
		m.mu.Unlock()
	}); err != nil {
		return err
	}

	log.Printf("[SESSION] Deleted session: %s", id)
	return nil
}

// CloseAll закрывает все сессии при остановке сервиса
func (m *Manager) CloseAll(ctx context.Context) {
	m.mu.RLock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	m.mu.RUnlock()

	for _, id := range ids {
		if err := m.Delete(ctx, id); err != nil {
			log.Printf("[WARN] Failed to close session %s: %v", id, err)
		}
	}
}

// ===== Настройки =====

// Settings возвращает сохраненные настройки профиля
func (m *Manager) Settings(ctx context.Context) (*exstats.Options, error) {
	return settings.LoadOrDefault(ctx, m.store, m.profile)
}

// UpdateSettings сохраняет настройки профиля. Действуют для новых сессий.
func (m *Manager) UpdateSettings(ctx context.Context, opts *exstats.Options) error {
	m.settingsMu.Lock()
	defer m.settingsMu.Unlock()

	if err := m.store.Save(ctx, m.profile, opts); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	log.Printf("[SETTINGS] Saved profile %s: pace=%dm", m.profile, opts.PaceLength)
	return nil
}

// buildMenu строит меню над текущими настройками; save вызывается при выборе варианта
func (m *Manager) buildMenu(ctx context.Context, save func(opts *exstats.Options)) (*exstats.Menu, error) {
	opts, err := settings.LoadOrDefault(ctx, m.store, m.profile)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	menu := exstats.NewMenu()
	exstats.AppendMenuItems(menu, opts, func() {
		if save != nil {
			save(opts)
		}
	})
	return menu, nil
}

// Menu возвращает пункты меню настроек
func (m *Manager) Menu(ctx context.Context) ([]MenuItemResponse, error) {
	menu, err := m.buildMenu(ctx, nil)
	if err != nil {
		return nil, err
	}

	items := make([]MenuItemResponse, 0, len(menu.Items()))
	for _, item := range menu.Items() {
		items = append(items, menuItemResponse(item))
	}
	return items, nil
}

// SetMenuValue выбирает вариант пункта меню и сохраняет настройки
func (m *Manager) SetMenuValue(ctx context.Context, title string, value int) (*MenuItemResponse, error) {
	m.settingsMu.Lock()
	defer m.settingsMu.Unlock()

	var saveErr error
	menu, err := m.buildMenu(ctx, func(opts *exstats.Options) {
		saveErr = m.store.Save(ctx, m.profile, opts)
	})
	if err != nil {
		return nil, err
	}

	item, ok := menu.Item(title)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMenuItemNotFound, title)
	}
	if err := item.Set(value); err != nil {
		return nil, err
	}
	if saveErr != nil {
		return nil, fmt.Errorf("failed to save settings: %w", saveErr)
	}

	log.Printf("[SETTINGS] %s set to %s", title, item.Format(item.Value))
	resp := menuItemResponse(item)
	return &resp, nil
}

func menuItemResponse(item *exstats.MenuItem) MenuItemResponse {
	return MenuItemResponse{
		Title:   item.Title,
		Value:   item.Value,
		Choices: item.Choices(),
	}
}

// ===== Устройство =====

// PushGPS передает GPS отметку в шину
func (m *Manager) PushGPS(ctx context.Context, req *GPSRequest) error {
	return m.bus.PushGPS(ctx, exstats.GeoFix{Lat: req.Lat, Lon: req.Lon, Speed: req.Speed, Fix: req.Fix})
}

// PushSteps передает счетчик шагов в шину
func (m *Manager) PushSteps(ctx context.Context, req *StepsRequest) error {
	return m.bus.PushSteps(ctx, req.Count)
}

// PushHeartRate передает показание пульса в шину
func (m *Manager) PushHeartRate(ctx context.Context, req *HeartRateRequest) error {
	return m.bus.PushHeartRate(ctx, exstats.HeartRate{BPM: req.BPM, Confidence: req.Confidence})
}

// Power возвращает состояние питания датчиков
func (m *Manager) Power() PowerResponse {
	return PowerResponse{Sensors: m.bus.Power().Snapshot()}
}
