package valkey

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Gunvolt24/order_lookup/internal/ports"
	valkeygo "github.com/valkey-io/valkey-go"
)

// scanBatch — подсказка COUNT для SCAN.
const scanBatch = 100

// Config — параметры подключения к valkey/redis.
type Config struct {
	Address  string
	Username string
	Password string
	DB       int
}

// Проверка, что Store удовлетворяет интерфейсу KVStore.
var _ ports.KVStore = (*Store)(nil)

// Store — KV-хранилище в valkey/redis. Значения хранятся без TTL:
// свежесть и лимит записей контролирует кэш результатов.
type Store struct {
	client valkeygo.Client
}

// NewStore — создаёт клиента и проверяет соединение (PING) для fail-fast.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Address == "" {
		return nil, errors.New("valkey store: address required")
	}

	client, err := valkeygo.NewClient(valkeygo.ClientOption{
		InitAddress:       []string{cfg.Address},
		Username:          cfg.Username,
		Password:          cfg.Password,
		SelectDB:          cfg.DB,
		AlwaysRESP2:       true,
		ForceSingleClient: true,
		DisableCache:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("valkey store: client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, fmt.Errorf("valkey store: ping: %w", err)
	}

	return &Store{client: client}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	resp := s.client.Do(ctx, s.client.B().Get().Key(key).Build())
	if err := resp.Error(); err != nil {
		if valkeygo.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("valkey store: get: %w", err)
	}
	payload, err := resp.AsBytes()
	if err != nil {
		return nil, false, fmt.Errorf("valkey store: get bytes: %w", err)
	}
	return payload, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	cmd := s.client.B().Set().Key(key).Value(valkeygo.BinaryString(value)).Build()
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("valkey store: set: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Do(ctx, s.client.B().Del().Key(key).Build()).Error(); err != nil {
		return fmt.Errorf("valkey store: del: %w", err)
	}
	return nil
}

// Keys — обход SCAN MATCH <prefix>* до нулевого курсора.
func (s *Store) Keys(ctx context.Context, prefix string) ([]string, error) {
	pattern := escapeGlob(prefix) + "*"
	seen := make(map[string]struct{})
	out := make([]string, 0)

	var cursor uint64
	for {
		cmd := s.client.B().Scan().Cursor(cursor).Match(pattern).Count(scanBatch).Build()
		entry, err := s.client.Do(ctx, cmd).AsScanEntry()
		if err != nil {
			return nil, fmt.Errorf("valkey store: scan: %w", err)
		}
		// SCAN может вернуть один ключ несколько раз.
		for _, k := range entry.Elements {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
		if entry.Cursor == 0 {
			return out, nil
		}
		cursor = entry.Cursor
	}
}

// Close — закрывает клиента.
func (s *Store) Close() {
	s.client.Close()
}

func escapeGlob(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
