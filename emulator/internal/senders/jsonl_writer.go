package senders

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/Krimson/exstats/emulator/internal/models"
)

// WriteStats счетчики записанных и отброшенных тиков
type WriteStats struct {
	Lines  int64 `json:"lines"`
	Errors int64 `json:"errors"`
}

// JSONLWriter пишет тики построчно, по одному JSON объекту на строку
type JSONLWriter struct {
	mu    sync.Mutex
	file  *os.File
	buf   *bufio.Writer
	enc   *json.Encoder
	stats WriteStats
}

// NewJSONLWriter открывает файл на дозапись, создавая каталог при необходимости
func NewJSONLWriter(path string) (*JSONLWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	buf := bufio.NewWriter(file)
	return &JSONLWriter{file: file, buf: buf, enc: json.NewEncoder(buf)}, nil
}

// WriteSample записывает тик и сразу сбрасывает буфер
func (j *JSONLWriter) WriteSample(data models.Sample) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file == nil {
		return io.ErrClosedPipe
	}

	err := data.Validate()
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidData, err)
	} else if err = j.enc.Encode(data); err == nil {
		err = j.buf.Flush()
	}
	if err != nil {
		j.stats.Errors++
		return err
	}
	j.stats.Lines++
	return nil
}

// Close сбрасывает буфер и закрывает файл
func (j *JSONLWriter) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file == nil {
		return nil
	}
	flushErr := j.buf.Flush()
	closeErr := j.file.Close()
	j.file = nil
	if flushErr != nil {
		return fmt.Errorf("final flush failed: %w", flushErr)
	}
	return closeErr
}

// GetStats возвращает счетчики записи
func (j *JSONLWriter) GetStats() WriteStats {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.stats
}
