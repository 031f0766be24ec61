package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Local хранит значения в одном JSON-объекте на диске, аналог localStorage
// браузера. Срок жизни ключей не поддерживается.
type Local struct {
	path string
	mu   sync.Mutex
}

// NewLocal возвращает хранилище в файле path. Файл создаётся при первой записи.
func NewLocal(path string) *Local {
	return &Local{path: path}
}

// Path возвращает путь к файлу.
func (l *Local) Path() string {
	return l.path
}

// Get читает значение key в result. Повреждённый файл или значение дают ошибку.
func (l *Local) Get(key string, result any) (bool, error) {
	const op = "cache.Local.Get"

	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.read()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	raw, ok := entries[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set сохраняет value под key. Повреждённый файл перезаписывается.
func (l *Local) Set(key string, value any, _ time.Duration) error {
	const op = "cache.Local.Set"

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.read()
	if err != nil {
		entries = make(map[string]json.RawMessage)
	}
	entries[key] = data
	if err := l.write(entries); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Invalidate удаляет key.
func (l *Local) Invalidate(key string) error {
	const op = "cache.Local.Invalidate"

	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.read()
	if err != nil {
		entries = make(map[string]json.RawMessage)
	}
	if _, ok := entries[key]; !ok && err == nil {
		return nil
	}
	delete(entries, key)
	if err := l.write(entries); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (l *Local) read() (map[string]json.RawMessage, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]json.RawMessage), nil
	}
	if err != nil {
		return nil, err
	}
	entries := make(map[string]json.RawMessage)
	if len(data) == 0 {
		return entries, nil
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// write пишет во временный файл и переименовывает его.
func (l *Local) write(entries map[string]json.RawMessage) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(l.path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), l.path)
}
