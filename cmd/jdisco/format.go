package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"jdisco/internal/output"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *ScanResponseCLI:
		return formatScanHuman(v), nil
	case *HistoryResponseCLI:
		return formatHistoryHuman(v), nil
	case *PatternsResponseCLI:
		return formatPatternsHuman(v), nil
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatScanHuman(r *ScanResponseCLI) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Project: %s (%s)\n", r.Project, r.Root)
	fmt.Fprintf(&b, "Scan ID: %s\n", r.ScanID)
	fmt.Fprintf(&b, "Duration: %dms\n\n", r.DurationMs)

	fmt.Fprintf(&b, "Files scanned:        %d\n", r.Summary.FilesScanned)
	fmt.Fprintf(&b, "Entity classes:       %d\n", r.Summary.Entities)
	fmt.Fprintf(&b, "Business components:  %d\n", r.Summary.BusinessComponents)
	fmt.Fprintf(&b, "JSF pages:            %d\n", r.Summary.JSFPages)
	fmt.Fprintf(&b, "DB config files:      %d\n\n", r.Summary.DBConfigs)

	fmt.Fprintf(&b, "Classes analyzed:     %d\n", r.Summary.ClassesAnalyzed)
	fmt.Fprintf(&b, "Controllers:          %d\n", r.Summary.ControllersFound)
	fmt.Fprintf(&b, "Services:             %d\n", r.Summary.ServicesFound)
	fmt.Fprintf(&b, "Public methods:       %d\n", r.Summary.PublicMethods)
	fmt.Fprintf(&b, "Business rules:       %d\n", r.Summary.BusinessRuleMethods)
	fmt.Fprintf(&b, "Avg rules/controller: %s\n", output.FormatAverage(r.Summary.AvgBusinessRulesPerController))
	fmt.Fprintf(&b, "Avg rules/service:    %s\n", output.FormatAverage(r.Summary.AvgBusinessRulesPerService))

	if r.Summary.ParseFailures > 0 || r.Summary.FileReadErrors > 0 {
		fmt.Fprintf(&b, "\nRecoverable failures: %d parse, %d read\n",
			r.Summary.ParseFailures, r.Summary.FileReadErrors)
	}
	for _, p := range r.Reports {
		fmt.Fprintf(&b, "\nReport written: %s", p)
	}
	if len(r.Reports) > 0 {
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatHistoryHuman(r *HistoryResponseCLI) string {
	if len(r.Scans) == 0 {
		return "No scans recorded."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-36s  %-19s  %-20s  %6s  %6s  %6s\n",
		"SCAN ID", "FINISHED", "PROJECT", "FILES", "CLASSES", "RULES")
	for _, s := range r.Scans {
		fmt.Fprintf(&b, "%-36s  %-19s  %-20s  %6d  %6d  %6d\n",
			s.ScanID, s.FinishedAt, s.Project,
			s.FilesScanned, s.Entities+s.BusinessComponents, s.BusinessRuleMethods)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatPatternsHuman(r *PatternsResponseCLI) string {
	var b strings.Builder
	b.WriteString("Annotation patterns:\n")
	for _, p := range r.Patterns {
		fmt.Fprintf(&b, "  %-22s %-20s %-12s %s\n", p.Name, p.Category, p.Role, p.Token)
		if p.Description != "" {
			fmt.Fprintf(&b, "  %22s %s\n", "", p.Description)
		}
	}
	fmt.Fprintf(&b, "\nJSF page extensions:    %s\n", strings.Join(r.JSFExtensions, ", "))
	fmt.Fprintf(&b, "Config file extensions: %s\n", strings.Join(r.ConfigExtensions, ", "))
	fmt.Fprintf(&b, "DB config keywords:     %s", strings.Join(r.DBKeywords, ", "))
	return b.String()
}
