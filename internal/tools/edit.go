package tools

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dslh/mcp-imagegen/internal/paths"
	"github.com/dslh/mcp-imagegen/internal/types"
	"github.com/dslh/mcp-imagegen/internal/validation"
)

const editedPrefix = "edited"

// EditImage handles an edit_image call
func (h *Handlers) EditImage(ctx context.Context, raw json.RawMessage) *mcp.CallToolResult {
	args, err := validation.Validate[types.EditImageArgs](validation.EditImageSchema, raw)
	if err != nil {
		return ErrorResponse(err, func(f *Failure) { f.EditPrompt = rawString(raw, "edit_prompt") })
	}

	result, err := h.edit(ctx, args)
	if err != nil {
		return ErrorResponse(err, func(f *Failure) { f.EditPrompt = args.EditPrompt })
	}
	return SuccessResponse(result)
}

func (h *Handlers) edit(ctx context.Context, args types.EditImageArgs) (*EditResult, error) {
	client, err := h.newClient()
	if err != nil {
		return nil, err
	}

	model := types.ModelOrDefault(args.Model)
	h.logger.Debug("Editing image", "model", model, "prompt_length", len(args.EditPrompt))

	dataURI, err := client.EditImage(ctx, args.ImageURL, args.EditPrompt, model)
	if err != nil {
		return nil, err
	}

	name := paths.GenerateFilename(editedPrefix+"_"+args.EditPrompt, editedPrefix)
	filePath := paths.ResolveOutputPath(args.OutputPath, name, h.outputDir)
	size, err := h.save(dataURI, filePath)
	if err != nil {
		return nil, err
	}

	return &EditResult{
		Success:    true,
		Model:      model,
		EditPrompt: args.EditPrompt,
		ImageURL:   args.ImageURL,
		FilePath:   filePath,
		FileSizeKB: fileSizeKB(size),
	}, nil
}
