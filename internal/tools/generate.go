package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dslh/mcp-imagegen/internal/paths"
	"github.com/dslh/mcp-imagegen/internal/types"
	"github.com/dslh/mcp-imagegen/internal/validation"
)

// GenerateImage handles a generate_image call
func (h *Handlers) GenerateImage(ctx context.Context, raw json.RawMessage) *mcp.CallToolResult {
	args, err := validation.Validate[types.GenerateImageArgs](validation.GenerateImageSchema, raw)
	if err != nil {
		return ErrorResponse(err, func(f *Failure) { f.Prompt = rawString(raw, "prompt") })
	}

	result, err := h.generate(ctx, args)
	if err != nil {
		return ErrorResponse(err, func(f *Failure) { f.Prompt = args.Prompt })
	}
	return SuccessResponse(result)
}

func (h *Handlers) generate(ctx context.Context, args types.GenerateImageArgs) (*GenerateResult, error) {
	client, err := h.newClient()
	if err != nil {
		return nil, err
	}

	model := types.ModelOrDefault(args.Model)
	h.logger.Debug("Generating image", "model", model, "prompt_length", len(args.Prompt))

	dataURI, err := client.GenerateImage(ctx, args.Prompt, model)
	if err != nil {
		return nil, err
	}

	filePath := paths.ResolveOutputPath(args.OutputPath, paths.GenerateFilename(args.Prompt, paths.DefaultPrefix), h.outputDir)
	size, err := h.save(dataURI, filePath)
	if err != nil {
		return nil, err
	}

	return &GenerateResult{
		Success:    true,
		Model:      model,
		Prompt:     args.Prompt,
		FilePath:   filePath,
		FileSizeKB: fileSizeKB(size),
	}, nil
}

func (h *Handlers) save(dataURI, filePath string) (int, error) {
	if err := paths.EnsureDirectoryExists(filePath); err != nil {
		return 0, err
	}
	size, err := h.store.SaveImageFromDataURI(dataURI, filePath)
	if err != nil {
		return 0, fmt.Errorf("failed to save image to %s: %w", filePath, err)
	}
	return size, nil
}
