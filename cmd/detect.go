package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taylorp5/dealwise/internal/platform"
)

var detectFile string

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Report which dealer-website platform a saved page was built on",
	RunE: func(cmd *cobra.Command, args []string) error {
		markup, err := readInput(detectFile)
		if err != nil {
			return err
		}
		fmt.Println(platform.Detect(markup))
		return nil
	},
}

func init() {
	detectCmd.Flags().StringVar(&detectFile, "file", "-", "HTML file to read, or - for stdin")
	rootCmd.AddCommand(detectCmd)
}
