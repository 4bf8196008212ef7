package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"jdisco/internal/classify"
	"jdisco/internal/config"
)

var (
	patternsFormat string
	patternsFile   string
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Show the active classification vocabulary",
	Long: `Patterns prints the annotation patterns, page extensions, and database
keywords the classifier uses, including any TOML vocabulary override.

Examples:
  jdisco patterns
  jdisco patterns --file=.jdisco/patterns.toml
  jdisco patterns --format=human`,
	Args: cobra.NoArgs,
	Run:  runPatterns,
}

func init() {
	patternsCmd.Flags().StringVar(&patternsFormat, "format", "human", "Output format (json, human)")
	patternsCmd.Flags().StringVar(&patternsFile, "file", "", "TOML vocabulary override to apply before printing")
	rootCmd.AddCommand(patternsCmd)
}

func runPatterns(cmd *cobra.Command, args []string) {
	vocab := classify.DefaultVocabulary()
	if patternsFile != "" {
		v, err := config.LoadVocabulary(patternsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading vocabulary: %v\n", err)
			os.Exit(1)
		}
		vocab = v
	}

	resp := &PatternsResponseCLI{
		JSFExtensions:    vocab.JSFExtensions,
		ConfigExtensions: vocab.ConfigExtensions,
		DBKeywords:       vocab.DBKeywords,
	}
	for _, p := range vocab.Patterns {
		resp.Patterns = append(resp.Patterns, PatternCLI{
			Name:        p.Name,
			Category:    string(p.Category),
			Role:        string(p.Role),
			Token:       p.Token,
			Description: p.Description,
		})
	}

	out, err := FormatResponse(resp, OutputFormat(patternsFormat))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)
}

// PatternsResponseCLI contains the active vocabulary for CLI output
type PatternsResponseCLI struct {
	Patterns         []PatternCLI `json:"patterns"`
	JSFExtensions    []string     `json:"jsfExtensions"`
	ConfigExtensions []string     `json:"configExtensions"`
	DBKeywords       []string     `json:"dbKeywords"`
}

type PatternCLI struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Role        string `json:"role"`
	Token       string `json:"token"`
	Description string `json:"description,omitempty"`
}
