package types

// DefaultModel is the OpenRouter model used when a call does not name one.
// The response parsing in the openrouter package assumes this model's output shape.
const DefaultModel = "google/gemini-2.5-flash-image-preview"

// ModelDescriptor describes one entry of the static model catalog
type ModelDescriptor struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	OutputFormat string `json:"output_format"`
	Cost         string `json:"cost"`
	Default      bool   `json:"default"`
}

var catalog = []ModelDescriptor{
	{
		ID:           DefaultModel,
		Name:         "Nano Banana (Gemini 2.5 Flash Image)",
		Description:  "Fast, efficient image generation with good quality",
		OutputFormat: "PNG",
		Cost:         "$0.001 per image",
		Default:      true,
	},
	{
		ID:           "google/gemini-2.0-flash-exp",
		Name:         "Gemini 2.0 Flash Experimental",
		Description:  "Latest experimental model with enhanced capabilities",
		OutputFormat: "PNG",
		Cost:         "$0.002 per image",
		Default:      false,
	},
}

// Models returns a copy of the static model catalog
func Models() []ModelDescriptor {
	models := make([]ModelDescriptor, len(catalog))
	copy(models, catalog)
	return models
}
