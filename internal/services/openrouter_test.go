package services

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestOpenRouterGenerateText(t *testing.T) {
	var gotAuth, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Hello there"}}]}`))
	}))
	defer server.Close()

	provider := NewOpenRouterService("secret", "openai/gpt-4o-mini", server.URL)
	text, err := provider.GenerateText(context.Background(), "Say hello")

	require.NoError(t, err)
	assert.Equal(t, "Hello there", text)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "openai/gpt-4o-mini", gjson.Get(gotBody, "model").String())
	assert.Equal(t, "Say hello", gjson.Get(gotBody, "messages.1.content").String())
	assert.Equal(t, "openrouter/openai/gpt-4o-mini", provider.Name())
}

func TestOpenRouterErrors(t *testing.T) {
	testCases := []struct {
		desc    string
		status  int
		body    string
		wantErr error
	}{
		{"http error", http.StatusTooManyRequests, `{"error":{"message":"rate limited"}}`, nil},
		{"malformed body", http.StatusOK, `<html>oops</html>`, nil},
		{"empty content", http.StatusOK, `{"choices":[{"message":{"content":""}}]}`, ErrEmptyCompletion},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			_, err := NewOpenRouterService("k", "m", server.URL).GenerateText(context.Background(), "p")

			require.Error(t, err)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			}
		})
	}
}
