package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"jdisco/internal/config"
	"jdisco/internal/engine"
	"jdisco/internal/report"
)

var (
	reportOutputDir string
	reportMarkdown  bool
	reportExcel     bool
)

var reportCmd = &cobra.Command{
	Use:   "report <path>",
	Short: "Scan a source tree and write the full discovery reports",
	Long: `Report runs a fresh scan of the given source tree and renders the
Markdown and Excel discovery reports into the output directory.

Examples:
  jdisco report ./legacy-app
  jdisco report --output=./docs ./legacy-app
  jdisco report --excel=false ./legacy-app`,
	Args: cobra.ExactArgs(1),
	Run:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportOutputDir, "output", "", "Report output directory (default from config)")
	reportCmd.Flags().BoolVar(&reportMarkdown, "markdown", true, "Write the Markdown report")
	reportCmd.Flags().BoolVar(&reportExcel, "excel", true, "Write the Excel report")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) {
	start := time.Now()
	logger := newLogger()
	root := args[0]

	cfg, err := config.Load(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	opts, err := engineOptions(cfg, root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	model, err := engine.New(opts, logger).Scan(context.Background(), root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	outputDir := reportOutputDir
	if outputDir == "" {
		outputDir = cfg.Reports.OutputDir
	}
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(root, outputDir)
	}

	if reportMarkdown {
		path, err := report.SaveMarkdown(model, outputDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing Markdown report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Markdown report: %s\n", path)
	}
	if reportExcel {
		path, err := report.SaveExcel(model, outputDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing Excel report: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Excel report:    %s\n", path)
	}

	logger.Debug("Reports written",
		"root", root,
		"outputDir", outputDir,
		"duration", time.Since(start).Milliseconds(),
	)
}
