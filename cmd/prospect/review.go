package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/akapil/prospect/internal/dataset"
	"github.com/akapil/prospect/internal/review"
)

var reviewInput string

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Browse an enriched workbook interactively (TUI)",
	Long:  "Opens the split-pane browser: companies on the left, the selected company's postings on the right.",
	RunE:  runReview,
}

func init() {
	reviewCmd.Flags().StringVarP(&reviewInput, "input", "i", "enriched.xlsx", "enriched XLSX workbook to browse")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	records, err := dataset.ReadWorkbook(reviewInput)
	if err != nil {
		return fmt.Errorf("read workbook %s: %w", reviewInput, err)
	}
	if len(records) == 0 {
		fmt.Println("Workbook has no company rows.")
		return nil
	}
	return review.Run(records)
}
