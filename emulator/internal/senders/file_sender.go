package senders

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Krimson/exstats/emulator/internal/models"
)

// FileSender использует JSONLWriter для записи данных в файл
type FileSender struct {
	writer   *JSONLWriter
	filePath string
}

// NewFileSender создает новый файловый отправитель
func NewFileSender(filePath string) (*FileSender, error) {
	writer, err := NewJSONLWriter(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create JSONL writer: %w", err)
	}

	return &FileSender{
		writer:   writer,
		filePath: filePath,
	}, nil
}

// Send записывает показания одного тика
func (fs *FileSender) Send(ctx context.Context, data models.Sample) error {
	return fs.writer.WriteSample(data)
}

// Close закрывает файл
func (fs *FileSender) Close() error {
	return fs.writer.Close()
}

// GetStats возвращает статистику записи
func (fs *FileSender) GetStats() WriteStats {
	return fs.writer.GetStats()
}

// Validate проверяет, что файл существует и открыт на запись
func (fs *FileSender) Validate() error {
	info, err := os.Stat(fs.filePath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotReady, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrNotReady, filepath.Clean(fs.filePath))
	}
	return nil
}
