package httpcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemCacheAdapter(t *testing.T) {
	a := NewMemCacheAdapter(2)

	resp := &Response{Value: []byte("v"), StatusCode: 200}
	a.Set("k", resp, time.Time{})

	got, ok := a.Get("k")
	require.True(t, ok)
	require.Equal(t, resp, got)

	a.Remove("k")
	_, ok = a.Get("k")
	require.False(t, ok)
}

func TestMemCacheAdapterEviction(t *testing.T) {
	a := NewMemCacheAdapter(2)

	a.Set("a", &Response{Value: []byte("a")}, time.Time{})
	a.Set("b", &Response{Value: []byte("b")}, time.Time{})
	a.Set("c", &Response{Value: []byte("c")}, time.Time{})

	// the least recently used entry is evicted
	_, ok := a.Get("a")
	require.False(t, ok)
	_, ok = a.Get("c")
	require.True(t, ok)
}
