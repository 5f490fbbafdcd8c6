package validation

import (
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/dslh/mcp-imagegen/internal/types"
)

// MaxPromptLength bounds prompt and edit_prompt, in characters
const MaxPromptLength = 10000

// Input schemas for the built-in tools. Unknown properties are ignored rather than rejected.
var (
	GenerateImageSchema = MustSchema(generateImageSchema(), map[string]string{
		"prompt.minLength": "Prompt cannot be empty",
		"prompt.maxLength": "Prompt too long",
	})

	EditImageSchema = MustSchema(editImageSchema(), map[string]string{
		"image_url.format":      "Invalid image URL",
		"edit_prompt.minLength": "Edit prompt cannot be empty",
		"edit_prompt.maxLength": "Edit prompt too long",
	})

	ListModelsSchema = MustSchema(objectSchemaFor[types.ListModelsArgs](), nil)
)

func generateImageSchema() *jsonschema.Schema {
	s := objectSchemaFor[types.GenerateImageArgs]()
	boundPrompt(s.Properties["prompt"])
	return s
}

func editImageSchema() *jsonschema.Schema {
	s := objectSchemaFor[types.EditImageArgs]()
	s.Properties["image_url"].Format = "uri"
	boundPrompt(s.Properties["edit_prompt"])
	return s
}

func boundPrompt(prop *jsonschema.Schema) {
	prop.MinLength = jsonschema.Ptr(1)
	prop.MaxLength = jsonschema.Ptr(MaxPromptLength)
}

// objectSchemaFor infers an object schema from an args struct's json and jsonschema tags
func objectSchemaFor[T any]() *jsonschema.Schema {
	s, err := jsonschema.For[T](nil)
	if err != nil {
		panic(err)
	}
	s.AdditionalProperties = nil
	if s.Properties == nil {
		s.Properties = map[string]*jsonschema.Schema{}
	}
	return s
}
