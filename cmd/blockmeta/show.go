package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	blockerrors "blockmeta/internal/errors"
	"blockmeta/internal/metadata"
)

// OutputFormat is a rendering of a composed record.
type OutputFormat string

const (
	FormatPython OutputFormat = "python"
	FormatJSON   OutputFormat = "json"
	FormatYAML   OutputFormat = "yaml"
	FormatTOML   OutputFormat = "toml"
)

var showFormat string

var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print the metadata blockmeta would write, without touching the file",
	Long: `Compose the METADATA record for a block file and print it.

Formats: python (the declaration as written to the file), json, yaml, toml.`,
	Args: cobra.ArbitraryArgs,
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVarP(&showFormat, "format", "f", string(FormatPython), "Output format: python, json, yaml, toml")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	if err := exactlyOneFile(args); err != nil {
		return err
	}
	annotator, _, err := setup(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	res, err := annotator.Prepare(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	out, err := FormatRecord(res.Record, OutputFormat(strings.ToLower(showFormat)))
	if err != nil {
		return err
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

// FormatRecord renders rec in the given format.
func FormatRecord(rec *metadata.Record, format OutputFormat) (string, error) {
	switch format {
	case FormatPython:
		return metadata.Render(rec), nil
	case FormatJSON:
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return string(data) + "\n", nil
	case FormatYAML:
		data, err := yaml.Marshal(rec)
		if err != nil {
			return "", fmt.Errorf("failed to marshal YAML: %w", err)
		}
		return string(data), nil
	case FormatTOML:
		data, err := toml.Marshal(rec)
		if err != nil {
			return "", fmt.Errorf("failed to marshal TOML: %w", err)
		}
		return string(data), nil
	default:
		return "", blockerrors.NewBlockError(blockerrors.Usage, fmt.Sprintf("unsupported format: %s", format), nil)
	}
}
