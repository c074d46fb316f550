// Package kitsparser downloads the published dispensing sheet and parses it
// into records.
package kitsparser

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/giygas/kits-report-api/logging"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	// ErrUnexpectedStatus is returned when the sheet endpoint answers with a non 2xx status
	ErrUnexpectedStatus = errors.New("unexpected HTTP status")

	// ErrBodyTooLarge is returned when the payload exceeds the download cap
	ErrBodyTooLarge = errors.New("response body too large")
)

// Payloads above this size are refused
const maxPayloadSize = 64 * 1024 * 1024

// fetchCSV downloads the CSV export and returns it as UTF-8 text
func fetchCSV(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "text/csv, text/plain;q=0.9, */*;q=0.1")
	req.Header.Set("Cache-Control", "no-store")

	response, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer func() {
		if err := response.Body.Close(); err != nil {
			logging.Warn("Failed to close response body", "error", err)
		}
	}()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d from %s", ErrUnexpectedStatus, response.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, maxPayloadSize+1))
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if len(body) > maxPayloadSize {
		return "", fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, maxPayloadSize)
	}

	return decodeText(body)
}

// decodeText drops a byte order mark and falls back to Windows-1252 when the
// payload is not valid UTF-8 (sheets exported from older desktop tools)
func decodeText(body []byte) (string, error) {
	var decoder transform.Transformer = unicode.BOMOverride(transform.Nop)
	if !utf8.Valid(bytes.TrimPrefix(body, []byte{0xEF, 0xBB, 0xBF})) {
		decoder = charmap.Windows1252.NewDecoder()
	}

	text, _, err := transform.Bytes(decoder, body)
	if err != nil {
		return "", fmt.Errorf("failed to decode CSV payload: %w", err)
	}
	return string(text), nil
}
