// Command plumb is a thin demonstration CLI over the plumb library: it
// loads a Hash-schema from a YAML document and either validates a data
// document against it or prints the schema's JSON Schema projection.
package main

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/glaszig/plumb/internal/cliutil"
)

var jsonOutput bool

var (
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"})
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"})
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"})
	boldStyle  = lipgloss.NewStyle().Bold(true)
)

var rootCmd = &cobra.Command{
	Use:   "plumb",
	Short: "Validate and transform data against plumb Hash schemas",
	Long: `plumb is a companion CLI for the plumb validation engine.

Examples:
  plumb schema person.yaml
  plumb validate person.yaml record.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit machine-readable JSON instead of styled text")
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		cliutil.Writef(os.Stderr, "%s\n", failStyle.Render("Error: "+err.Error()))
		os.Exit(1)
	}
}
