package senders

import (
	"context"
	"errors"

	"github.com/Krimson/exstats/emulator/internal/models"
)

// Ошибки отправителей
var (
	ErrSendFailed  = errors.New("failed to send data")
	ErrNotReady    = errors.New("sender not ready")
	ErrInvalidData = errors.New("invalid data format")
)

// DataSender интерфейс для отправки данных
type DataSender interface {
	// Send отправляет показания одного тика
	Send(ctx context.Context, data models.Sample) error

	// Validate проверяет готовность отправителя
	Validate() error

	// Close освобождает ресурсы
	Close() error
}

// MultiSender отправляет данные во все отправители по очереди
type MultiSender struct {
	senders []DataSender
}

func NewMultiSender(senders ...DataSender) *MultiSender {
	return &MultiSender{senders: senders}
}

func (m *MultiSender) Send(ctx context.Context, data models.Sample) error {
	var errs []error
	for _, s := range m.senders {
		if err := s.Send(ctx, data); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSender) Validate() error {
	var errs []error
	for _, s := range m.senders {
		if err := s.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSender) Close() error {
	var errs []error
	for _, s := range m.senders {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
