package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"jdisco/internal/config"
	"jdisco/internal/engine"
	"jdisco/internal/inventory"
	"jdisco/internal/report"
	"jdisco/internal/storage"
)

var (
	scanFormat    string
	scanWorkers   int
	scanThreshold int
	scanReports   bool
	scanSave      bool
	scanOutputDir string
)

var scanCmd = &cobra.Command{
	Use:   "scan <path>",
	Short: "Scan a Java/JSF source tree and classify its files",
	Long: `Scan walks the given source tree, classifies every file (entities,
business components, JSF pages, database configuration), parses the
business-layer Java sources, and scores their methods as business rules.

Examples:
  jdisco scan ./legacy-app
  jdisco scan --format=human --workers=4 ./legacy-app
  jdisco scan --reports --save ./legacy-app
  jdisco scan --threshold=8 --output=./docs ./legacy-app`,
	Args: cobra.ExactArgs(1),
	Run:  runScan,
}

func init() {
	scanCmd.Flags().StringVar(&scanFormat, "format", "json", "Output format (json, human)")
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "Worker pool size (0 for NumCPU, 1 for sequential)")
	scanCmd.Flags().IntVar(&scanThreshold, "threshold", 0, "Statement-count threshold for the business-rule heuristic (0 for default)")
	scanCmd.Flags().BoolVar(&scanReports, "reports", false, "Write Markdown and Excel reports")
	scanCmd.Flags().BoolVar(&scanSave, "save", false, "Save the scan to the history database")
	scanCmd.Flags().StringVar(&scanOutputDir, "output", "", "Report output directory (default from config)")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) {
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
	if scanWorkers > 0 {
		opts.Workers = scanWorkers
	}
	if scanThreshold > 0 {
		opts.Threshold = scanThreshold
	}

	model, err := engine.New(opts, logger).Scan(context.Background(), root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var written []string
	if scanReports {
		written, err = writeReports(model, cfg, root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing reports: %v\n", err)
			os.Exit(1)
		}
	}

	if scanSave {
		if err := saveScan(model, root, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving scan: %v\n", err)
			os.Exit(1)
		}
	}

	resp := convertScanResponse(model, written, time.Since(start))
	out, err := FormatResponse(resp, OutputFormat(scanFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)

	logger.Debug("Scan completed",
		"root", root,
		"filesScanned", model.Summary.FilesScanned,
		"classesAnalyzed", model.Summary.ClassesAnalyzed,
		"duration", time.Since(start).Milliseconds(),
	)
}

// engineOptions translates the loaded config into engine options, resolving
// the vocabulary override when one is configured.
func engineOptions(cfg *config.Config, root string) (engine.Options, error) {
	opts := engine.Options{
		Workers:          cfg.Scan.Workers,
		Threshold:        cfg.Scan.StatementThreshold,
		MaxFileSizeBytes: cfg.Scan.MaxFileSizeBytes,
		SkipDirs:         cfg.Scan.Ignore,
	}
	if cfg.PatternsFile != "" {
		vocabPath := cfg.PatternsFile
		if !filepath.IsAbs(vocabPath) {
			vocabPath = filepath.Join(root, vocabPath)
		}
		vocab, err := config.LoadVocabulary(vocabPath)
		if err != nil {
			return opts, fmt.Errorf("failed to load pattern vocabulary: %w", err)
		}
		opts.Vocabulary = vocab
	}
	return opts, nil
}

func writeReports(model *inventory.Model, cfg *config.Config, root string) ([]string, error) {
	outputDir := scanOutputDir
	if outputDir == "" {
		outputDir = cfg.Reports.OutputDir
	}
	if !filepath.IsAbs(outputDir) {
		outputDir = filepath.Join(root, outputDir)
	}

	mdPath, err := report.SaveMarkdown(model, outputDir)
	if err != nil {
		return nil, err
	}
	xlsxPath, err := report.SaveExcel(model, outputDir)
	if err != nil {
		return nil, err
	}
	return []string{mdPath, xlsxPath}, nil
}

func saveScan(model *inventory.Model, root string, logger *slog.Logger) error {
	db, err := storage.Open(root, logger)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.SaveScan(model)
}

// ScanResponseCLI is the scan command's output payload.
type ScanResponseCLI struct {
	ScanID      string               `json:"scanId"`
	Project     string               `json:"project"`
	Root        string               `json:"root"`
	Fingerprint string               `json:"fingerprint,omitempty"`
	DurationMs  int64                `json:"durationMs"`
	Summary     inventory.Summary    `json:"summary"`
	Entities    []inventory.Entry    `json:"entities"`
	Business    []inventory.Entry    `json:"businessComponents"`
	JSFPages    []inventory.Entry    `json:"jsfPages"`
	DBConfigs   []inventory.Entry    `json:"dbConfigs"`
	Units       []inventory.Unit     `json:"units"`
	Log         []inventory.LogEntry `json:"log,omitempty"`
	Reports     []string             `json:"reports,omitempty"`
}

func convertScanResponse(m *inventory.Model, reports []string, elapsed time.Duration) *ScanResponseCLI {
	return &ScanResponseCLI{
		ScanID:      m.ScanID,
		Project:     m.Project,
		Root:        m.Root,
		Fingerprint: m.Fingerprint,
		DurationMs:  elapsed.Milliseconds(),
		Summary:     m.Summary,
		Entities:    m.Entities,
		Business:    m.BusinessComponents,
		JSFPages:    m.JSFPages,
		DBConfigs:   m.DBConfigs,
		Units:       m.Units,
		Log:         m.Log,
		Reports:     reports,
	}
}
