package directory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathmatch-workers/internal/common/config"
)

func newTestClient(serverURL string) *Client {
	return NewClient(config.DirectoryConfig{
		BaseURL: serverURL,
		APIKey:  "test-key",
		Timeout: 2000,
	})
}

func TestLookupReturnsPerson(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/people/ab123", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"netId":"ab123","displayName":"Alex Baker","email":"ab123@university.edu","affiliation":"student"}`))
	}))
	defer server.Close()

	person, err := newTestClient(server.URL).Lookup(context.Background(), "ab123")
	require.NoError(t, err)
	assert.Equal(t, "ab123", person.NetID)
	assert.Equal(t, "Alex Baker", person.DisplayName)
	assert.Equal(t, "ab123@university.edu", person.Email)
}

func TestLookupUnknownNetID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Lookup(context.Background(), "zz999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookupServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "directory offline", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Lookup(context.Background(), "ab123")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestVerify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/people/ab123" {
			w.Write([]byte(`{"netId":"ab123"}`))
			return
		}
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	ok, err := client.Verify(context.Background(), "ab123")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = client.Verify(context.Background(), "zz999")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLookupEscapesNetID(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		http.NotFound(w, r)
	}))
	defer server.Close()

	_, _ = newTestClient(server.URL).Lookup(context.Background(), "a/b 123")
	assert.Equal(t, "/people/a%2Fb%20123", gotPath)
}
