package editor

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_UploadImage(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/upload", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req uploadRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, payload, req.Data)
		assert.Equal(t, "image/png", req.ContentType)
		assert.Equal(t, "cat.png", req.FileName)

		json.NewEncoder(w).Encode(map[string]any{
			"id":      "img-1",
			"url":     "/api/image?id=img-1",
			"success": true,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testTokens)
	res, err := c.UploadImage(t.Context(), payload, "image/png", "cat.png")
	require.NoError(t, err)
	assert.Equal(t, "img-1", res.ID)
	assert.Equal(t, "/api/image?id=img-1", res.URL)
}

func TestClient_UploadImageRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		w.Write([]byte(`{"error":"payload exceeds the upload limit"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testTokens)
	_, err := c.UploadImage(t.Context(), "aGk=", "image/png", "big.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "413")
}

func TestClient_DeleteProjectEscapesID(t *testing.T) {
	var gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.URL.Query().Get("id")
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testTokens)
	require.NoError(t, c.DeleteProject(t.Context(), "id with spaces&stuff"))
	assert.Equal(t, "id with spaces&stuff", gotID)
}

func TestClient_TokenFailureShortCircuits(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request must not reach the server")
	}))
	defer srv.Close()

	c := NewClient(srv.URL, failingTokens{})
	_, err := c.ListProjects(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetch credential")
}
