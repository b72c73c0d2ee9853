package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFetcher() *HTTPFetcher {
	return NewHTTPFetcher(HTTPOptions{
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
		Rate:       1000,
		Burst:      10,
	})
}

func TestGetJSONSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":25}`))
	}))
	defer srv.Close()

	body, err := testFetcher().GetJSON(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":25}`, string(body))
}

func TestGetJSONNotFoundIsMissing(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	body, err := testFetcher().GetJSON(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Nil(t, body)
	assert.Equal(t, int32(1), hits.Load(), "404 must not be retried")
}

func TestGetJSONRetriesThenSucceeds(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	body, err := testFetcher().GetJSON(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(body))
	assert.Equal(t, int32(3), hits.Load())
}

func TestGetJSONExhaustedRetriesIsMissing(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	body, err := testFetcher().GetJSON(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Nil(t, body)
	assert.Equal(t, int32(3), hits.Load())
}

func TestGetJSONCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testFetcher().GetJSON(ctx, srv.URL)
	assert.Error(t, err)
}

func TestGetTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte(`{"name":"pikachu"}`))
		case "/bad":
			w.Write([]byte(`not json`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	type named struct {
		Name string `json:"name"`
	}
	f := testFetcher()

	got, err := GetTyped[named](context.Background(), f, srv.URL+"/ok")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "pikachu", got.Name)

	got, err = GetTyped[named](context.Background(), f, srv.URL+"/bad")
	require.NoError(t, err)
	assert.Nil(t, got, "undecodable body degrades to missing")

	got, err = GetTyped[named](context.Background(), f, srv.URL+"/gone")
	require.NoError(t, err)
	assert.Nil(t, got)
}
