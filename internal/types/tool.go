package types

// GenerateImageArgs defines the arguments for the generate_image MCP tool
type GenerateImageArgs struct {
	Prompt     string `json:"prompt" jsonschema:"Text description of image to generate"`
	OutputPath string `json:"output_path,omitempty" jsonschema:"Path to save the image file (optional, auto-generated if not provided)"`
	Model      string `json:"model,omitempty" jsonschema:"Model to use for generation (optional, defaults to Nano Banana)"`
}

// EditImageArgs defines the arguments for the edit_image MCP tool
type EditImageArgs struct {
	ImageURL   string `json:"image_url" jsonschema:"URL or data URI of image to edit"`
	EditPrompt string `json:"edit_prompt" jsonschema:"Instructions for editing the image"`
	OutputPath string `json:"output_path,omitempty" jsonschema:"Path to save the edited image file (optional, auto-generated if not provided)"`
	Model      string `json:"model,omitempty" jsonschema:"Model to use for editing (optional, defaults to Nano Banana)"`
}

// ListModelsArgs defines the (empty) arguments for the list_available_models MCP tool
type ListModelsArgs struct{}

// ModelOrDefault returns model, or DefaultModel when model is empty
func ModelOrDefault(model string) string {
	if model == "" {
		return DefaultModel
	}
	return model
}
