package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hpungsan/nexascope/internal/errors"
	"github.com/hpungsan/nexascope/internal/intake"
)

// decode unmarshals MCP request arguments into a typed struct.
// Avoids unsafe type assertions and handles JSON decoding safely.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var result T
	args := req.GetArguments()
	b, err := json.Marshal(args)
	if err != nil {
		return result, fmt.Errorf("marshal args: %w", err)
	}
	if err := json.Unmarshal(b, &result); err != nil {
		return result, fmt.Errorf("unmarshal args: %w", err)
	}
	return result, nil
}

// decodeAnswers validates the questionnaire arguments against the answer
// schema and decodes them into a raw answer set.
func decodeAnswers(req mcp.CallToolRequest) (intake.RawInput, error) {
	args := req.GetArguments()
	if args == nil {
		args = map[string]any{}
	}
	b, err := json.Marshal(args)
	if err != nil {
		return intake.RawInput{}, errors.NewInvalidRequest(fmt.Sprintf("marshal args: %v", err))
	}
	return intake.DecodeJSON(b)
}
