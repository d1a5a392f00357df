package main

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/glaszig/plumb/internal/options"
	"github.com/glaszig/plumb/schema"
	"github.com/glaszig/plumb/step"
	"github.com/glaszig/plumb/visitor"
)

type validateInput struct {
	Schema string         `json:"schema,omitempty"      jsonschema:"Name of a registered schema; exactly one of schema or schema_yaml must be set"`
	YAML   string         `json:"schema_yaml,omitempty" jsonschema:"Inline YAML schema document; exactly one of schema or schema_yaml must be set"`
	Data   map[string]any `json:"data"                  jsonschema:"The document to validate against the schema"`
}

type validateOutput struct {
	Valid  bool `json:"valid"`
	Value  any  `json:"value,omitempty"`
	Errors any  `json:"errors,omitempty"`
}

func (s *mcpServer) handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	hash, err := s.resolveSchema(input.Schema, input.YAML)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	result := step.Resolve(hash, input.Data)
	out := validateOutput{Valid: result.IsValid(), Value: result.Value()}
	if result.IsHalt() {
		out.Errors = result.Errors()
	}
	return nil, out, nil
}

type jsonSchemaInput struct {
	Schema string `json:"schema,omitempty"      jsonschema:"Name of a registered schema; exactly one of schema or schema_yaml must be set"`
	YAML   string `json:"schema_yaml,omitempty" jsonschema:"Inline YAML schema document; exactly one of schema or schema_yaml must be set"`
}

type jsonSchemaOutput struct {
	Schema map[string]any `json:"schema"`
}

func (s *mcpServer) handleJSONSchema(_ context.Context, _ *mcp.CallToolRequest, input jsonSchemaInput) (*mcp.CallToolResult, jsonSchemaOutput, error) {
	hash, err := s.resolveSchema(input.Schema, input.YAML)
	if err != nil {
		return errResult(err), jsonSchemaOutput{}, nil
	}
	return nil, jsonSchemaOutput{Schema: visitor.JSONSchema(hash)}, nil
}

func (s *mcpServer) resolveSchema(name, yamlDoc string) (step.Step, error) {
	if err := options.ValidateSingleInputSource(
		"one of schema or schema_yaml must be set",
		"only one of schema or schema_yaml may be set",
		name != "", yamlDoc != "",
	); err != nil {
		return nil, err
	}
	if yamlDoc != "" {
		return schema.FromYAML([]byte(yamlDoc))
	}
	hash, ok := s.registry.get(name)
	if !ok {
		return nil, fmt.Errorf("unknown schema %q (known: %v)", name, s.registry.names())
	}
	return hash, nil
}

func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}
