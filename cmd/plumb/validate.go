package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v4"

	"github.com/glaszig/plumb/internal/maputil"
	"github.com/glaszig/plumb/internal/textutil"
	"github.com/glaszig/plumb/schema"
	"github.com/glaszig/plumb/step"
)

var validateCmd = &cobra.Command{
	Use:   "validate <schema.yaml> <data.yaml>",
	Short: "Validate a data document against a Hash schema",
	Args:  cobra.ExactArgs(2),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	schemaBytes, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading schema file: %w", err)
	}
	hash, err := schema.FromYAML(schemaBytes)
	if err != nil {
		return fmt.Errorf("parsing schema: %w", err)
	}

	dataBytes, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("reading data file: %w", err)
	}
	var data map[string]any
	if err := yaml.Unmarshal(dataBytes, &data); err != nil {
		return fmt.Errorf("parsing data: %w", err)
	}

	result := step.Resolve(hash, data)

	if jsonOutput {
		return printJSON(result)
	}
	printStyled(result)
	if result.IsHalt() {
		os.Exit(1)
	}
	return nil
}

func printJSON(r step.Result) error {
	payload := map[string]any{"valid": r.IsValid(), "value": r.Value()}
	if r.IsHalt() {
		payload["errors"] = r.Errors()
	}
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func printStyled(r step.Result) {
	if r.IsValid() {
		fmt.Println(passStyle.Render("valid") + " " + mutedStyle.Render(fmt.Sprintf("%v", r.Value())))
		return
	}
	fmt.Println(failStyle.Render("invalid"))
	printErrorTree(r.Errors(), 1)
}

// printErrorTree renders errs (a Halt's structured error value) as an
// indented tree. Sibling leaf errors at the same depth have their
// messages column-aligned, using textutil.DisplayWidth rather than
// len() so a field name containing wide or combining characters still
// lines up.
func printErrorTree(errs any, depth int) {
	indent := strings.Repeat("  ", depth)

	e, ok := errs.(map[string]any)
	if !ok {
		fmt.Println(indent + failStyle.Render(fmt.Sprintf("%v", errs)))
		return
	}

	names := maputil.SortedKeys(e)
	width := 0
	for _, name := range names {
		if _, nested := e[name].(map[string]any); !nested {
			if w := textutil.DisplayWidth(name); w > width {
				width = w
			}
		}
	}

	for _, name := range names {
		v := e[name]
		if nested, ok := v.(map[string]any); ok {
			fmt.Println(indent + boldStyle.Render(name) + ":")
			printErrorTree(nested, depth+1)
			continue
		}
		pad := width - textutil.DisplayWidth(name) + 1
		fmt.Println(indent + boldStyle.Render(name) + ":" + strings.Repeat(" ", pad) + failStyle.Render(fmt.Sprintf("%v", v)))
	}
}
