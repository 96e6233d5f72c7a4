package memory

import (
	"context"
	"strings"

	"github.com/Gunvolt24/order_lookup/internal/ports"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultLimit — лимит ключей, если в конструктор передан неположительный.
const DefaultLimit = 1000

// Проверка, что Store удовлетворяет интерфейсу KVStore.
var _ ports.KVStore = (*Store)(nil)

// Store — KV-хранилище в памяти процесса с ограничением количества ключей (квота).
// При переполнении вытесняется наименее используемый ключ.
type Store struct {
	lru *lru.Cache[string, []byte]
}

// NewStore — конструктор.
func NewStore(limit int) (*Store, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	c, err := lru.New[string, []byte](limit)
	if err != nil {
		return nil, err
	}
	return &Store{lru: c}, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	return cloneBytes(v), true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.lru.Add(key, cloneBytes(value))
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.lru.Remove(key)
	return nil
}

func (s *Store) Keys(_ context.Context, prefix string) ([]string, error) {
	all := s.lru.Keys()
	out := make([]string, 0, len(all))
	for _, k := range all {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out, nil
}

// Len — текущее количество ключей.
func (s *Store) Len() int { return s.lru.Len() }

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
