// Command plumbmcp exposes the plumb validation engine as an MCP server
// over stdio: a "validate" tool and a "json_schema" tool, backed by a
// small registry of named schemas, so an LLM agent can invoke the
// engine directly.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `plumb MCP server — validates structured data against Hash schemas and emits their JSON Schema projection.

Tools:
- validate: validates "data" against a schema, named via "schema" (a registered schema name) or inline via "schema_yaml".
- json_schema: returns the JSON Schema projection of a schema, named or inline the same way.

Built-in registered schemas: person.`

type mcpServer struct {
	registry *registry
	logger   *slog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	s := &mcpServer{
		registry: newRegistry(),
		logger:   slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "plumb", Version: "0.1.0"},
		&mcp.ServerOptions{Instructions: serverInstructions},
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate a data document against a named or inline Hash schema.",
	}, s.handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "json_schema",
		Description: "Return the JSON Schema projection of a named or inline Hash schema.",
	}, s.handleJSONSchema)

	s.logger.Info("plumb MCP server started")
	defer s.logger.Info("plumb MCP server stopped")

	return server.Run(ctx, &mcp.StdioTransport{})
}
