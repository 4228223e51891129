package session

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Krimson/exstats/pkg/exstats"
	"github.com/Krimson/exstats/tracker/internal/device"
	"github.com/gorilla/mux"
)

// HTTPHandler обрабатывает HTTP запросы трекера
type HTTPHandler struct {
	manager *Manager
}

// NewHTTPHandler создает новый HTTP обработчик
func NewHTTPHandler(manager *Manager) *HTTPHandler {
	return &HTTPHandler{
		manager: manager,
	}
}

// RegisterRoutes регистрирует маршруты в роутере
func (h *HTTPHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/stats", h.ListStats).Methods("GET")

	sessions := router.PathPrefix("/api/sessions").Subrouter()
	sessions.HandleFunc("", h.CreateSession).Methods("POST")
	sessions.HandleFunc("", h.ListSessions).Methods("GET")
	sessions.HandleFunc("/{id}", h.GetSession).Methods("GET")
	sessions.HandleFunc("/{id}/start", h.StartSession).Methods("POST")
	sessions.HandleFunc("/{id}/stop", h.StopSession).Methods("POST")
	sessions.HandleFunc("/{id}", h.DeleteSession).Methods("DELETE")

	dev := router.PathPrefix("/api/device").Subrouter()
	dev.HandleFunc("/gps", h.PushGPS).Methods("POST")
	dev.HandleFunc("/steps", h.PushSteps).Methods("POST")
	dev.HandleFunc("/hrm", h.PushHeartRate).Methods("POST")
	dev.HandleFunc("/power", h.GetPower).Methods("GET")

	router.HandleFunc("/api/settings", h.GetSettings).Methods("GET")
	router.HandleFunc("/api/settings", h.UpdateSettings).Methods("PUT")
	router.HandleFunc("/api/menu", h.GetMenu).Methods("GET")
	router.HandleFunc("/api/menu/{title}", h.SetMenuValue).Methods("PUT")
}

// ListStats возвращает каталог статистик
// @Summary Каталог статистик
// @Tags Stats
// @Produce json
// @Success 200 {array} exstats.StatInfo
// @Router /api/stats [get]
func (h *HTTPHandler) ListStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, exstats.List())
}

// CreateSession создает новую сессию
// @Summary Создать сессию
// @Description Включает датчики для выбранных статистик. Без options берутся сохраненные настройки.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest true "Статистики и настройки"
// @Success 201 {object} Snapshot
// @Failure 400 {object} map[string]interface{}
// @Router /api/sessions [post]
func (h *HTTPHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	snap, err := h.manager.Create(r.Context(), &req)
	if err != nil {
		respondManagerError(w, "Failed to create session", err)
		return
	}

	respondJSON(w, http.StatusCreated, snap)
}

// ListSessions возвращает список сессий
// @Summary Список сессий
// @Tags Sessions
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/sessions [get]
func (h *HTTPHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	snaps, err := h.manager.List(r.Context())
	if err != nil {
		respondManagerError(w, "Failed to list sessions", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sessions": snaps,
		"count":    len(snaps),
	})
}

// GetSession получает состояние сессии
// @Summary Состояние сессии
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} Snapshot
// @Failure 404 {object} map[string]interface{}
// @Router /api/sessions/{id} [get]
func (h *HTTPHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.manager.Snapshot(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondManagerError(w, "Failed to get session", err)
		return
	}

	respondJSON(w, http.StatusOK, snap)
}

// StartSession начинает запись
// @Summary Запустить сессию
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} Snapshot
// @Failure 404 {object} map[string]interface{}
// @Router /api/sessions/{id}/start [post]
func (h *HTTPHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.manager.Start(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondManagerError(w, "Failed to start session", err)
		return
	}

	respondJSON(w, http.StatusOK, snap)
}

// StopSession останавливает запись
// @Summary Остановить сессию
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} Snapshot
// @Failure 404 {object} map[string]interface{}
// @Router /api/sessions/{id}/stop [post]
func (h *HTTPHandler) StopSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.manager.Stop(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondManagerError(w, "Failed to stop session", err)
		return
	}

	respondJSON(w, http.StatusOK, snap)
}

// DeleteSession закрывает сессию и освобождает датчики
// @Summary Удалить сессию
// @Tags Sessions
// @Produce json
// @Param id path string true "ID сессии"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/sessions/{id} [delete]
func (h *HTTPHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := h.manager.Delete(r.Context(), sessionID); err != nil {
		respondManagerError(w, "Failed to delete session", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Session deleted successfully",
		"session_id": sessionID,
	})
}

// PushGPS
// @Summary Передать GPS отметку
// @Tags Device
// @Accept json
// @Param request body GPSRequest true "Отметка, скорость в км/ч"
// @Success 202
// @Router /api/device/gps [post]
func (h *HTTPHandler) PushGPS(w http.ResponseWriter, r *http.Request) {
	var req GPSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.manager.PushGPS(r.Context(), &req); err != nil {
		respondManagerError(w, "Failed to push GPS fix", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// PushSteps
// @Summary Передать счетчик шагов
// @Tags Device
// @Accept json
// @Param request body StepsRequest true "Абсолютный счетчик"
// @Success 202
// @Router /api/device/steps [post]
func (h *HTTPHandler) PushSteps(w http.ResponseWriter, r *http.Request) {
	var req StepsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.manager.PushSteps(r.Context(), &req); err != nil {
		respondManagerError(w, "Failed to push steps", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// PushHeartRate
// @Summary Передать показание пульса
// @Tags Device
// @Accept json
// @Param request body HeartRateRequest true "Пульс и достоверность"
// @Success 202
// @Router /api/device/hrm [post]
func (h *HTTPHandler) PushHeartRate(w http.ResponseWriter, r *http.Request) {
	var req HeartRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.manager.PushHeartRate(r.Context(), &req); err != nil {
		respondManagerError(w, "Failed to push heart rate", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// GetPower
// @Summary Питание датчиков
// @Tags Device
// @Produce json
// @Success 200 {object} PowerResponse
// @Router /api/device/power [get]
func (h *HTTPHandler) GetPower(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.manager.Power())
}

// GetSettings
// @Summary Сохраненные настройки
// @Tags Settings
// @Produce json
// @Success 200 {object} exstats.Options
// @Router /api/settings [get]
func (h *HTTPHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	opts, err := h.manager.Settings(r.Context())
	if err != nil {
		respondManagerError(w, "Failed to load settings", err)
		return
	}
	respondJSON(w, http.StatusOK, opts)
}

// UpdateSettings
// @Summary Сохранить настройки
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body exstats.Options true "Настройки"
// @Success 200 {object} exstats.Options
// @Router /api/settings [put]
func (h *HTTPHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var opts exstats.Options
	if err := json.NewDecoder(r.Body).Decode(&opts); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.manager.UpdateSettings(r.Context(), &opts); err != nil {
		respondManagerError(w, "Failed to save settings", err)
		return
	}
	respondJSON(w, http.StatusOK, opts)
}

// GetMenu
// @Summary Меню настроек
// @Tags Settings
// @Produce json
// @Success 200 {array} MenuItemResponse
// @Router /api/menu [get]
func (h *HTTPHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	items, err := h.manager.Menu(r.Context())
	if err != nil {
		respondManagerError(w, "Failed to build menu", err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// SetMenuValue
// @Summary Выбрать вариант пункта меню
// @Tags Settings
// @Accept json
// @Produce json
// @Param title path string true "Заголовок пункта"
// @Param request body MenuUpdateRequest true "Индекс варианта"
// @Success 200 {object} MenuItemResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/menu/{title} [put]
func (h *HTTPHandler) SetMenuValue(w http.ResponseWriter, r *http.Request) {
	var req MenuUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.manager.SetMenuValue(r.Context(), mux.Vars(r)["title"], req.Value)
	if err != nil {
		respondManagerError(w, "Failed to update menu", err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

// ===== Утилиты =====

func respondManagerError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrMenuItemNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrUnknownStat), errors.Is(err, ErrNoStats), errors.Is(err, exstats.ErrMenuValueOutOfRange):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, device.ErrBusStopped):
		respondError(w, http.StatusServiceUnavailable, message)
	default:
		log.Printf("[ERROR] %s: %v", message, err)
		respondError(w, http.StatusInternalServerError, message)
	}
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("[ERROR] Failed to encode JSON response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]interface{}{
		"error":  message,
		"status": status,
	})
}
