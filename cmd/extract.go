package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/taylorp5/dealwise/internal/extractor"
)

var (
	extractURL  string
	extractFile string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a listing record from a saved HTML page",
	RunE: func(cmd *cobra.Command, args []string) error {
		markup, err := readInput(extractFile)
		if err != nil {
			return err
		}

		engine := extractor.New(cfg)
		rec := engine.Extract(extractURL, markup)

		if rec.Raw != nil {
			logVerbose("platform: %s", rec.Raw.Platform)
			logVerbose("strategies: %v", rec.Raw.Strategies)
			for _, c := range rec.Raw.PriceCandidates {
				logVerbose("price candidate %.0f (%s, %s) score %.0f", c.Value, c.Label, c.Source, c.Score)
			}
		}

		return printJSON(rec)
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractURL, "url", "", "Listing URL the markup was fetched from")
	extractCmd.Flags().StringVar(&extractFile, "file", "-", "HTML file to read, or - for stdin")
	extractCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(extractCmd)
}

// readInput reads a file, or stdin when path is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
