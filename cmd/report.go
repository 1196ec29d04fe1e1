package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/results"
)

var reportCmd = &cobra.Command{
	Use:   "report <assessment-id>",
	Short: "Export an assessment's results as a standalone HTML report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid assessment id %q", args[0])
		}

		d, err := openDeps(cmd)
		if err != nil {
			return err
		}
		defer d.Close()

		if !d.Session.Require(true) {
			return fmt.Errorf("not signed in; run `quizdeck login` first")
		}

		payload, err := d.Client.Results(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("fetch results: %w", err)
		}

		outPath, _ := cmd.Flags().GetString("out")
		if outPath == "" {
			outPath = fmt.Sprintf("assessment-%d.html", id)
		}

		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create report file: %w", err)
		}
		defer f.Close()

		if err := results.WriteReport(f, payload); err != nil {
			return fmt.Errorf("write report: %w", err)
		}

		fmt.Println("Report written to", outPath)
		return nil
	},
}

func init() {
	reportCmd.Flags().String("out", "", "Output path for the HTML report")
}
