package cmd

import (
	"github.com/spf13/cobra"

	"github.com/taylorp5/dealwise/internal/extractor"
)

var pasteFile string

var pasteCmd = &cobra.Command{
	Use:   "paste",
	Short: "Extract a listing record from pasted plain text",
	Long: `Extract from pasted listing text when the page itself cannot be
fetched (bot-blocked sites). Reads from a file or stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(pasteFile)
		if err != nil {
			return err
		}

		engine := extractor.New(cfg)
		return printJSON(engine.ExtractFromText(text))
	},
}

func init() {
	pasteCmd.Flags().StringVar(&pasteFile, "file", "-", "Text file to read, or - for stdin")
	rootCmd.AddCommand(pasteCmd)
}
