package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceSearchParsesAndCaches(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "test-key", r.Header.Get("X-API-KEY"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"organic":[
			{"title":"Go Tutorial","link":"https://www.example.com/go","snippet":"Learn Go"},
			{"title":"SQL Course","link":"http://db.dev/sql/intro","snippet":"Learn SQL"}
		]}`))
	}))
	defer srv.Close()

	svc := NewResourceService("test-key", srv.URL, nopLogger{})

	res, err := svc.Search(context.Background(), "golang basics")
	require.NoError(t, err)
	assert.Equal(t, "golang basics", res.Query)
	require.Len(t, res.Resources, 2)
	assert.Equal(t, "Go Tutorial", res.Resources[0].Title)
	assert.Equal(t, "example.com", res.Resources[0].Source)
	assert.Equal(t, "db.dev", res.Resources[1].Source)

	// Same query (case-insensitive) is served from cache
	_, err = svc.Search(context.Background(), "GOLANG BASICS")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestResourceSearchUpstreamRateLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := NewResourceService("test-key", srv.URL, nopLogger{})

	_, err := svc.Search(context.Background(), "rust")
	assert.Equal(t, 429, appErrCode(t, err))
}

func TestResourceSearchRejectsEmptyQuery(t *testing.T) {
	svc := NewResourceService("test-key", "http://unused", nopLogger{})

	_, err := svc.Search(context.Background(), "   ")
	assert.Equal(t, 400, appErrCode(t, err))
}
