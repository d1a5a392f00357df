package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/glaszig/plumb/schema"
	"github.com/glaszig/plumb/visitor"
)

var schemaCmd = &cobra.Command{
	Use:   "schema <schema.yaml>",
	Short: "Print a schema's JSON Schema projection",
	Args:  cobra.ExactArgs(1),
	RunE:  runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading schema file: %w", err)
	}

	hash, err := schema.FromYAML(data)
	if err != nil {
		return fmt.Errorf("parsing schema: %w", err)
	}

	out, err := json.MarshalIndent(visitor.JSONSchema(hash), "", "  ")
	if err != nil {
		return fmt.Errorf("rendering JSON Schema: %w", err)
	}

	fmt.Println(string(out))
	return nil
}
