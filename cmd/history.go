package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/alexiusacademia/gofluid/internal/report"
	"github.com/spf13/cobra"
)

var (
	historyCalculator string
	historyLimit      int
	historyJSON       bool
	historyPDF        string
	historyKeep       int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse recorded calculations",
	Long: `Browse the calculations saved with --record.

Subcommands:
  list    - Most recent calculations first
  show    - Print a recorded worked solution
  delete  - Remove a record
  prune   - Keep only the newest records

The database is configured in the [history] section of the config file.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded calculations",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a recorded worked solution",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a recorded calculation",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete all but the newest records",
	RunE:  runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd, historyPruneCmd)

	historyListCmd.Flags().StringVarP(&historyCalculator, "calculator", "c", "", "Only list this calculator")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of records to list")

	historyShowCmd.Flags().BoolVar(&historyJSON, "json", false, "Print the stored record as JSON")
	historyShowCmd.Flags().StringVar(&historyPDF, "pdf", "", "Write the recorded solution to a PDF report")

	historyPruneCmd.Flags().IntVar(&historyKeep, "keep", 100, "Number of newest records to keep")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.List(context.Background(), historyCalculator, historyLimit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No recorded calculations.")
		return nil
	}

	now := time.Now()
	fmt.Println()
	w := newTable()
	fmt.Fprintf(w, "  ID\tCalculator\tTitle\tRecorded\n")
	for _, r := range recs {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", r.ID, r.Calculator, r.Title, r.Age(now))
	}
	w.Flush()
	fmt.Println()
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}
	if historyJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	sheet, err := rec.Worksheet()
	if err != nil {
		return err
	}
	fmt.Printf("\n  Recorded %s (%s)\n", rec.Created.Local().Format("2006-01-02 15:04"), rec.Age(time.Now()))
	if err := sheet.WriteText(os.Stdout); err != nil {
		return err
	}
	if historyPDF != "" {
		opt := report.Options{Project: cfg.Report.Project, Author: cfg.Report.Author, Date: rec.Created}
		if err := report.WriteFile(historyPDF, sheet, opt); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		fmt.Printf("Report written to: %s\n", historyPDF)
	}
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Delete(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", args[0])
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Prune(context.Background(), historyKeep)
	if err != nil {
		return err
	}
	fmt.Printf("Pruned %d records, kept the newest %d\n", n, historyKeep)
	return nil
}
