package tools

import (
	"context"
	"encoding/json"
	"log/slog"
	"math"

	"github.com/dslh/mcp-imagegen/internal/persistence"
)

// ImageClient is the upstream image model API used by generate_image and edit_image
type ImageClient interface {
	GenerateImage(ctx context.Context, prompt, model string) (string, error)
	EditImage(ctx context.Context, imageURL, editPrompt, model string) (string, error)
}

// ClientFactory builds a client for a single tool call. It is called on every
// generate or edit call, so a missing credential surfaces as a tool failure
// rather than a startup error.
type ClientFactory func() (ImageClient, error)

// Handlers implements the built-in tools
type Handlers struct {
	logger    *slog.Logger
	newClient ClientFactory
	store     *persistence.Store
	outputDir string
}

// Options configures Handlers. Only NewClient is required.
type Options struct {
	Logger    *slog.Logger
	NewClient ClientFactory
	Store     *persistence.Store

	// OutputDir is where images go when a call does not name an output_path.
	// Empty means the working directory.
	OutputDir string
}

// NewHandlers creates the tool handlers
func NewHandlers(opts Options) *Handlers {
	h := &Handlers{
		logger:    opts.Logger,
		newClient: opts.NewClient,
		store:     opts.Store,
		outputDir: opts.OutputDir,
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.store == nil {
		h.store = persistence.NewStore(0, h.logger)
	}
	return h
}

// fileSizeKB converts a byte count to kilobytes rounded to two decimals
func fileSizeKB(size int) float64 {
	return math.Round(float64(size)/1024*100) / 100
}

// rawString extracts a string argument from unvalidated input, for echoing in
// failure envelopes. Anything missing, empty or non-string reads as "unknown".
func rawString(raw json.RawMessage, key string) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "unknown"
	}
	var s string
	if err := json.Unmarshal(fields[key], &s); err != nil || s == "" {
		return "unknown"
	}
	return s
}
