package tools

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dslh/mcp-imagegen/internal/types"
)

// Failure is the envelope returned for any failed tool call. At most one of
// Prompt or EditPrompt is set, echoing the identifying argument of the call.
type Failure struct {
	Success    bool   `json:"success"`
	Prompt     string `json:"prompt,omitempty"`
	EditPrompt string `json:"edit_prompt,omitempty"`
	Error      string `json:"error"`
}

// GenerateResult is the success envelope of generate_image
type GenerateResult struct {
	Success    bool    `json:"success"`
	Model      string  `json:"model"`
	Prompt     string  `json:"prompt"`
	FilePath   string  `json:"file_path"`
	FileSizeKB float64 `json:"file_size_kb"`
}

// EditResult is the success envelope of edit_image
type EditResult struct {
	Success    bool    `json:"success"`
	Model      string  `json:"model"`
	EditPrompt string  `json:"edit_prompt"`
	ImageURL   string  `json:"image_url"`
	FilePath   string  `json:"file_path"`
	FileSizeKB float64 `json:"file_size_kb"`
}

// ModelsResult is the success envelope of list_available_models
type ModelsResult struct {
	Success bool              `json:"success"`
	Models  []types.ModelDescriptor `json:"models"`
}

// SuccessResponse wraps a success envelope as a tool result: one text item
// holding the indented JSON, plus the same value as structured content
func SuccessResponse(v any) *mcp.CallToolResult {
	return envelope(v, false)
}

// ErrorResponse builds a failure envelope from err. The result is flagged
// IsError so clients can tell failures apart without parsing the text.
func ErrorResponse(err error, echo func(*Failure)) *mcp.CallToolResult {
	f := &Failure{Success: false, Error: err.Error()}
	if echo != nil {
		echo(f)
	}
	return envelope(f, true)
}

func envelope(v any, isError bool) *mcp.CallToolResult {
	text, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		text = []byte(fmt.Sprintf(`{"success":false,"error":%q}`, "failed to encode result: "+err.Error()))
		isError = true
	}
	return &mcp.CallToolResult{
		Content:           []mcp.Content{&mcp.TextContent{Text: string(text)}},
		StructuredContent: v,
		IsError:           isError,
	}
}

// failureOf returns the Failure carried by a result built with ErrorResponse
func failureOf(res *mcp.CallToolResult) (*Failure, bool) {
	if res == nil || !res.IsError {
		return nil, false
	}
	f, ok := res.StructuredContent.(*Failure)
	return f, ok
}
