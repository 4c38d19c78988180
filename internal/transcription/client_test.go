package transcription

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gestor-financeiro/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestClient(url string) *Client {
	return NewClient(testLogger(), &config.WhisperConfig{
		URL:     url,
		Timeout: 5 * time.Second,
	})
}

func TestInferContentType(t *testing.T) {
	cases := []struct {
		filename string
		fallback string
		expected string
	}{
		{"gravacao.webm", DefaultUploadContentType, "audio/webm"},
		{"musica.mp3", DefaultUploadContentType, "audio/mpeg"},
		{"nota.WAV", DefaultUploadContentType, "audio/wav"},
		{"voz.m4a", DefaultUploadContentType, "audio/mp4"},
		{"voz.ogg", DefaultUploadContentType, "audio/ogg"},
		{"desconhecido.xyz", DefaultUploadContentType, "audio/webm"},
		{"desconhecido.xyz", DefaultFileContentType, "audio/ogg"},
		{"sem_extensao", DefaultFileContentType, "audio/ogg"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, InferContentType(tc.filename, tc.fallback), "filename %s", tc.filename)
	}
}

func TestTranscribe(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotFilename, gotContentType string
		var gotPayload []byte
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()

			gotFilename = header.Filename
			gotContentType = header.Header.Get("Content-Type")
			gotPayload, _ = io.ReadAll(file)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"text": "gastei vinte reais no almoço", "language": "pt", "duration": 2.4}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		text, err := client.Transcribe(context.Background(), []byte("fake-audio"), "gravacao.webm", "audio/webm")
		require.NoError(t, err)

		assert.Equal(t, "gastei vinte reais no almoço", text)
		assert.Equal(t, "gravacao.webm", gotFilename)
		assert.Equal(t, "audio/webm", gotContentType)
		assert.Equal(t, []byte("fake-audio"), gotPayload)
	})

	t.Run("EmptyTextReturnedAsIs", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"text": "", "language": "pt", "duration": 0.1}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		text, err := client.Transcribe(context.Background(), []byte("silence"), "silencio.wav", "audio/wav")
		require.NoError(t, err)
		assert.Empty(t, text)
	})

	t.Run("Unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		client := newTestClient(url)
		_, err := client.Transcribe(context.Background(), []byte("audio"), "a.mp3", "audio/mpeg")
		require.Error(t, err)

		var unavailable ErrUnavailable
		assert.ErrorAs(t, err, &unavailable)
	})

	t.Run("UpstreamError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.Transcribe(context.Background(), []byte("audio"), "a.mp3", "audio/mpeg")
		require.Error(t, err)

		var unavailable ErrUnavailable
		assert.False(t, errors.As(err, &unavailable), "a 500 is a processing error, not a connectivity one")
		assert.Contains(t, err.Error(), "status 500")
	})
}

func TestTranscribeFile(t *testing.T) {
	var gotFilename, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		gotFilename = header.Filename
		gotContentType = header.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"text": "cinquenta reais de gasolina", "language": "pt", "duration": 3.1}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "nota.opus")
	require.NoError(t, os.WriteFile(path, []byte("fake-audio"), 0644))

	client := newTestClient(server.URL)
	text, err := client.TranscribeFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "cinquenta reais de gasolina", text)
	assert.Equal(t, "nota.opus", gotFilename)
	// Unknown suffix on the local-file path falls back to ogg
	assert.Equal(t, "audio/ogg", gotContentType)

	t.Run("MissingFile", func(t *testing.T) {
		_, err := client.TranscribeFile(context.Background(), filepath.Join(dir, "nao_existe.ogg"))
		assert.Error(t, err)
	})
}
