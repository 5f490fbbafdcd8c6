package persistence

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/docker/go-units"
)

var (
	// ErrInvalidDataURI is returned when a data URI has no comma-separated payload
	ErrInvalidDataURI = errors.New("invalid data URI format")

	// ErrImageTooLarge is returned when a decoded image exceeds the store's limit
	ErrImageTooLarge = errors.New("image exceeds maximum size")
)

// Store writes images received as data URIs to disk
type Store struct {
	maxSize int64
	logger  *slog.Logger
}

// NewStore creates a store. A maxSize of zero or less disables the size limit.
func NewStore(maxSize int64, logger *slog.Logger) *Store {
	return &Store{maxSize: maxSize, logger: logger}
}

// SaveImageFromDataURI decodes a data URI with the default, unlimited store
func SaveImageFromDataURI(dataURI, filePath string) (int, error) {
	return (&Store{}).SaveImageFromDataURI(dataURI, filePath)
}

// SaveImageFromDataURI decodes the base64 payload of dataURI and writes it to
// filePath, replacing any existing file. It returns the number of bytes written.
// The parent directory must already exist.
func (s *Store) SaveImageFromDataURI(dataURI, filePath string) (int, error) {
	logger := s.log()

	data, err := s.decode(dataURI)
	if err != nil {
		logger.Error("Failed to save image", "path", filePath, "error", err)
		return 0, err
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		logger.Error("Failed to save image", "path", filePath, "error", err)
		return 0, fmt.Errorf("failed to write image file: %w", err)
	}

	logger.Info("Image saved", "path", filePath, "size", units.HumanSize(float64(len(data))))
	return len(data), nil
}

func (s *Store) decode(dataURI string) ([]byte, error) {
	_, payload, found := strings.Cut(dataURI, ",")
	if !found || payload == "" {
		return nil, ErrInvalidDataURI
	}

	data, err := decodeBase64(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image data: %w", err)
	}

	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return nil, fmt.Errorf("%w: %s > %s", ErrImageTooLarge,
			units.HumanSize(float64(len(data))), units.HumanSize(float64(s.maxSize)))
	}
	return data, nil
}

// decodeBase64 accepts padded or unpadded, standard or URL-safe base64 and
// ignores embedded whitespace
func decodeBase64(payload string) ([]byte, error) {
	payload = strings.Join(strings.Fields(payload), "")

	encodings := []*base64.Encoding{
		base64.StdEncoding,
		base64.RawStdEncoding,
		base64.URLEncoding,
		base64.RawURLEncoding,
	}

	var firstErr error
	for _, enc := range encodings {
		data, err := enc.DecodeString(payload)
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

func (s *Store) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
