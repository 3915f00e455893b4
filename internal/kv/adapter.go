// Package kv wraps a persistence backend with accessors that never fail.
// Backend errors degrade to the caller's default on reads and to a no-op on
// writes; malformed JSON reads as absent. Failures are logged at debug level
// only.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sandeepkv93/questd/internal/storage"
)

// Backend is the subset of storage.Repository the adapter needs.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// lister is implemented by backends that can enumerate keys, such as
// storage.Repository.
type lister interface {
	ListKeys(ctx context.Context, prefix string) ([]storage.Entry, error)
}

type Adapter struct {
	backend Backend
	log     *slog.Logger
}

func New(backend Backend, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{backend: backend, log: logger.With("component", "kv")}
}

func (a *Adapter) Get(key, def string) string {
	if a == nil || a.backend == nil {
		return def
	}
	v, err := a.backend.Get(context.Background(), key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			a.log.Debug("kv get failed", "key", key, "error", err)
		}
		return def
	}
	return v
}

func (a *Adapter) Set(key, value string) {
	if a == nil || a.backend == nil {
		return
	}
	if err := a.backend.Put(context.Background(), key, value); err != nil {
		a.log.Debug("kv set failed", "key", key, "error", err)
	}
}

func (a *Adapter) Remove(key string) {
	if a == nil || a.backend == nil {
		return
	}
	if err := a.backend.Delete(context.Background(), key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		a.log.Debug("kv remove failed", "key", key, "error", err)
	}
}

// List returns the stored keys starting with prefix, in key order. Backends
// that cannot enumerate yield nothing.
func (a *Adapter) List(prefix string) []string {
	if a == nil || a.backend == nil {
		return nil
	}
	l, ok := a.backend.(lister)
	if !ok {
		return nil
	}
	entries, err := l.ListKeys(context.Background(), prefix)
	if err != nil {
		a.log.Debug("kv list failed", "prefix", prefix, "error", err)
		return nil
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		keys = append(keys, e.Key)
	}
	return keys
}

func (a *Adapter) Has(key string) bool {
	const sentinel = "\x00absent"
	return a.Get(key, sentinel) != sentinel
}

// GetInt parses the stored value as an integer, returning def when absent or
// not a number.
func (a *Adapter) GetInt(key string, def int) int {
	raw := strings.TrimSpace(a.Get(key, ""))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func (a *Adapter) SetInt(key string, value int) {
	a.Set(key, strconv.Itoa(value))
}

func (a *Adapter) GetBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(a.Get(key, ""))) {
	case "1", "true":
		return true
	default:
		return false
	}
}

func (a *Adapter) SetBool(key string, value bool) {
	if value {
		a.Set(key, "1")
		return
	}
	a.Set(key, "0")
}

// SetJSON stores value encoded as JSON. Encoding failures are dropped.
func (a *Adapter) SetJSON(key string, value any) {
	payload, err := json.Marshal(value)
	if err != nil {
		if a != nil {
			a.log.Debug("kv encode failed", "key", key, "error", err)
		}
		return
	}
	a.Set(key, string(payload))
}

// GetJSON decodes the JSON stored under key into a T, returning def when the
// key is absent, unreadable or malformed.
func GetJSON[T any](a *Adapter, key string, def T) T {
	raw := a.Get(key, "")
	if strings.TrimSpace(raw) == "" {
		return def
	}
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		if a != nil {
			a.log.Debug("kv decode failed", "key", key, "error", err)
		}
		return def
	}
	return out
}
