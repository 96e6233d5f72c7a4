package valkey

import (
	"context"
	"fmt"
	"sort"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	server, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(server.Close)

	s, err := NewStore(context.Background(), Config{Address: server.Addr()})
	require.NoError(t, err)
	t.Cleanup(s.Close)

	return s, server
}

func TestNewStore_AddressRequired(t *testing.T) {
	_, err := NewStore(context.Background(), Config{})
	require.Error(t, err)
}

func TestStore_SetGetDelete(t *testing.T) {
	s, server := newTestStore(t)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "order_count_1")
	require.NoError(t, err)
	require.False(t, ok)

	payload := []byte(`{"count":1,"timestamp":10}`)
	require.NoError(t, s.Set(ctx, "order_count_1", payload))

	got, ok, err := s.Get(ctx, "order_count_1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, payload, got)

	// значения хранятся без TTL
	require.Zero(t, server.TTL("order_count_1"))

	require.NoError(t, s.Delete(ctx, "order_count_1"))
	_, ok, err = s.Get(ctx, "order_count_1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStore_KeysByPrefix(t *testing.T) {
	s, server := newTestStore(t)
	ctx := context.Background()

	want := make([]string, 0, 250)
	for i := 0; i < 250; i++ {
		k := fmt.Sprintf("order_count_%d_01/01/2000_01/01/2100", i)
		want = append(want, k)
		require.NoError(t, server.Set(k, "{}"))
	}
	require.NoError(t, server.Set("session", "x"))

	keys, err := s.Keys(ctx, "order_count_")
	require.NoError(t, err)

	sort.Strings(keys)
	sort.Strings(want)
	require.Equal(t, want, keys)
}

func TestStore_ErrorsAfterServerStops(t *testing.T) {
	s, server := newTestStore(t)
	server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, _, err := s.Get(ctx, "k")
	require.Error(t, err)
	require.Error(t, s.Set(ctx, "k", []byte("v")))
}

func TestEscapeGlob(t *testing.T) {
	require.Equal(t, `order_count_`, escapeGlob("order_count_"))
	require.Equal(t, `a\*b\?c\[d\]e\\f`, escapeGlob(`a*b?c[d]e\f`))
}
