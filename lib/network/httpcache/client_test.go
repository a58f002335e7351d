package httpcache

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMiddleware(t *testing.T) {
	a := NewMemCacheAdapter(10)
	a.Set("http://foo?bar=1", &Response{
		Value:      []byte("value 1"),
		StatusCode: 200,
	}, time.Time{})

	c, err := NewClient(
		WithAdapter(a),
	)
	require.NoError(t, err)

	cnt := 0
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fmt.Sprintf("new value:%v", cnt)))
	})

	handler := c.Middleware(testHandler)

	tests := []struct {
		name   string
		url    string
		method string
		body   string
		code   int
	}{
		{
			"return cached resp",
			"http://foo?bar=1",
			"GET",
			"value 1",
			200,
		},
		{
			"return nocached resp",
			"http://foo?bar=2",
			"GET",
			"new value:2",
			200,
		},
		{
			"post is not cached",
			"http://foo?bar=1",
			"POST",
			"new value:3",
			200,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cnt++

			r, err := http.NewRequest(tt.method, tt.url, nil)
			require.NoError(t, err)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)

			require.Equal(t, tt.code, w.Code)
			require.Equal(t, tt.body, w.Body.String())
		})
	}
}

func TestMiddlewareCachesResponse(t *testing.T) {
	a := NewMemCacheAdapter(10)
	c, err := NewClient(
		WithAdapter(a),
		WithExpire(time.Minute),
	)
	require.NoError(t, err)

	cnt := 0
	handler := c.WrapHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cnt++
		w.Write([]byte(fmt.Sprintf("hit:%v", cnt)))
	})

	for i := 0; i < 3; i++ {
		r, err := http.NewRequest("GET", "http://foo/proposals", nil)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		handler(w, r)
		require.Equal(t, "hit:1", w.Body.String())
	}
	require.Equal(t, 1, cnt)
}

func TestMiddlewareSkipsEventStream(t *testing.T) {
	a := NewMemCacheAdapter(10)
	c, err := NewClient(WithAdapter(a))
	require.NoError(t, err)

	cnt := 0
	handler := c.WrapHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cnt++
		w.Write([]byte(fmt.Sprintf("hit:%v", cnt)))
	})

	for i := 0; i < 2; i++ {
		r, err := http.NewRequest("GET", "http://foo/proposals", nil)
		require.NoError(t, err)
		r.Header.Set("Accept", "text/event-stream")
		w := httptest.NewRecorder()
		handler(w, r)
	}
	require.Equal(t, 2, cnt)
}

func TestErrorResponseNotCached(t *testing.T) {
	a := NewMemCacheAdapter(10)
	c, err := NewClient(WithAdapter(a))
	require.NoError(t, err)

	cnt := 0
	handler := c.WrapHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cnt++
		w.WriteHeader(http.StatusNotFound)
	})

	for i := 0; i < 2; i++ {
		r, err := http.NewRequest("GET", "http://foo/proposals/99", nil)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		handler(w, r)
		require.Equal(t, http.StatusNotFound, w.Code)
	}
	require.Equal(t, 2, cnt)
}

func TestNewAdapter(t *testing.T) {
	a, err := NewAdapter(MemoryAdapterName, 10, nil)
	require.NoError(t, err)
	require.NotNil(t, a)

	_, err = NewAdapter("bogus", 10, nil)
	require.Error(t, err)
}
