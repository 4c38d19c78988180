// Package transcription forwards audio payloads to an external Whisper-style
// speech-to-text HTTP endpoint and returns the transcribed text.
package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/gestor-financeiro/internal/config"
)

// Fallback MIME types per ingestion path. Browser recordings default to webm;
// local files default to ogg. The discrepancy is intentional and preserved
// per call site.
const (
	DefaultUploadContentType = "audio/webm"
	DefaultFileContentType   = "audio/ogg"
)

// contentTypeBySuffix maps known audio filename suffixes to MIME types
var contentTypeBySuffix = map[string]string{
	".webm": "audio/webm",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".ogg":  "audio/ogg",
}

// InferContentType matches the filename suffix against the known audio types,
// returning fallback for anything unmatched
func InferContentType(filename, fallback string) string {
	suffix := strings.ToLower(filepath.Ext(filename))
	if ct, ok := contentTypeBySuffix[suffix]; ok {
		return ct
	}
	return fallback
}

// ErrUnavailable indicates a connectivity problem with the transcription endpoint
type ErrUnavailable struct {
	Err error
}

func (e ErrUnavailable) Error() string {
	return "serviço de transcrição indisponível: " + e.Err.Error()
}

func (e ErrUnavailable) Unwrap() error {
	return e.Err
}

// Client forwards audio to the configured speech-to-text endpoint
type Client struct {
	logger     *slog.Logger
	httpClient *http.Client
	url        string
}

// NewClient creates a transcription client for the configured endpoint
func NewClient(logger *slog.Logger, cfg *config.WhisperConfig) *Client {
	return &Client{
		logger:     logger,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		url:        cfg.URL,
	}
}

type transcribeResponse struct {
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Duration float64 `json:"duration"`
}

// Transcribe uploads the audio bytes as a multipart file and returns the
// transcribed text as received; deciding what empty text means is the
// caller's concern.
func (c *Client) Transcribe(ctx context.Context, content []byte, filename, contentType string) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return "", fmt.Errorf("failed to write audio payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, &body)
	if err != nil {
		return "", fmt.Errorf("failed to build transcription request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("transcription endpoint unreachable", "error", err)
		return "", ErrUnavailable{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read transcription response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription endpoint returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result transcribeResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("failed to decode transcription response: %w", err)
	}

	c.logger.Debug("audio transcribed",
		"filename", filename,
		"language", result.Language,
		"duration", result.Duration,
	)

	return result.Text, nil
}

// TranscribeFile reads a local audio file and transcribes it, inferring the
// MIME type from the filename with the local-file fallback
func (c *Client) TranscribeFile(ctx context.Context, path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read audio file %s: %w", path, err)
	}

	filename := filepath.Base(path)
	contentType := InferContentType(filename, DefaultFileContentType)

	return c.Transcribe(ctx, content, filename, contentType)
}
