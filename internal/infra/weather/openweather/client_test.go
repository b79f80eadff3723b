package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/wardrobe-advisor/internal/domain/wardrobe"
)

func TestCurrentSuccess(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"appid": r.URL.Query().Get("appid"),
			"q":     r.URL.Query().Get("q"),
		}
		_, _ = w.Write([]byte(`{"name":"Turan","weather":[{"main":"Clear","description":"clear sky"},{"description":"haze"}]}`))
	}))
	defer server.Close()

	client, err := NewClient("key-123", server.URL, 0)
	require.NoError(t, err)

	snapshot, err := client.Current(context.Background(), "Turan")
	require.NoError(t, err)
	require.Equal(t, "clear sky", snapshot.Description)
	require.Equal(t, "Turan", snapshot.City)
	require.Equal(t, map[string]string{"appid": "key-123", "q": "Turan"}, gotQuery)
}

func TestCurrentMissingDescription(t *testing.T) {
	cases := map[string]string{
		"no weather array":  `{"name":"Turan"}`,
		"empty array":       `{"weather":[]}`,
		"empty description": `{"weather":[{"main":"Clouds"}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer server.Close()

			client, err := NewClient("key", server.URL, 0)
			require.NoError(t, err)

			snapshot, err := client.Current(context.Background(), "Turan")
			require.NoError(t, err)
			require.Equal(t, wardrobe.UnknownWeather, snapshot.Description)
		})
	}
}

func TestCurrentNonOKStatus(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key"}`))
	}))
	defer server.Close()

	client, err := NewClient("bad", server.URL, 0)
	require.NoError(t, err)

	_, err = client.Current(context.Background(), "Turan")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=401")
	require.Equal(t, 1, calls)
}

func TestCurrentMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer server.Close()

	client, err := NewClient("key", server.URL, 0)
	require.NoError(t, err)

	_, err = client.Current(context.Background(), "Turan")
	require.Error(t, err)
}

func TestNewClientRequiresKey(t *testing.T) {
	_, err := NewClient("", "", 0)
	require.Error(t, err)
}
