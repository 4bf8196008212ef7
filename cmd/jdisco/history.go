package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jdisco/internal/report"
	"jdisco/internal/storage"
)

var (
	historyFormat string
	historyLimit  int
	historyScanID string
)

var historyCmd = &cobra.Command{
	Use:   "history [path]",
	Short: "List saved scans for a source tree",
	Long: `History lists the scans previously saved with 'jdisco scan --save',
newest first. The path defaults to the current directory.

Examples:
  jdisco history
  jdisco history --limit=5 ./legacy-app
  jdisco history --format=human ./legacy-app
  jdisco history --scan=4f7c... ./legacy-app`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&historyFormat, "format", "json", "Output format (json, human)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Maximum number of scans to list (0 for all)")
	historyCmd.Flags().StringVar(&historyScanID, "scan", "", "Print the full stored result for one scan ID")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	logger := newLogger()
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	// Listing is read-only; without a database there is nothing to open.
	if !storage.Exists(root) {
		if historyScanID != "" {
			fmt.Fprintf(os.Stderr, "Error: scan %s not found\n", historyScanID)
			os.Exit(1)
		}
		printHistory(&HistoryResponseCLI{Scans: []HistoryEntryCLI{}})
		return
	}

	db, err := storage.Open(root, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if historyScanID != "" {
		model, err := db.LoadScan(historyScanID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		out, err := FormatResponse(model, FormatJSON)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(out)
		return
	}

	records, err := db.ListScans(historyLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error listing scans: %v\n", err)
		os.Exit(1)
	}

	resp := &HistoryResponseCLI{Scans: make([]HistoryEntryCLI, 0, len(records))}
	for _, r := range records {
		resp.Scans = append(resp.Scans, HistoryEntryCLI{
			ScanID:              r.ScanID,
			Project:             r.Project,
			FinishedAt:          report.Timestamp(r.FinishedAt),
			FilesScanned:        r.FilesScanned,
			Entities:            r.Entities,
			BusinessComponents:  r.BusinessComponents,
			JSFPages:            r.JSFPages,
			DBConfigs:           r.DBConfigs,
			BusinessRuleMethods: r.BusinessRuleMethods,
		})
	}

	printHistory(resp)
}

func printHistory(resp *HistoryResponseCLI) {
	out, err := FormatResponse(resp, OutputFormat(historyFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)
}

// HistoryResponseCLI contains the scan history listing for CLI output
type HistoryResponseCLI struct {
	Scans []HistoryEntryCLI `json:"scans"`
}

type HistoryEntryCLI struct {
	ScanID              string `json:"scanId"`
	Project             string `json:"project"`
	FinishedAt          string `json:"finishedAt"`
	FilesScanned        int    `json:"filesScanned"`
	Entities            int    `json:"entities"`
	BusinessComponents  int    `json:"businessComponents"`
	JSFPages            int    `json:"jsfPages"`
	DBConfigs           int    `json:"dbConfigs"`
	BusinessRuleMethods int    `json:"businessRuleMethods"`
}
