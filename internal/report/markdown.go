// Package report renders a finished inventory into the Markdown and Excel
// artifacts. Renderers only format; all analysis happens upstream.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"jdisco/internal/inventory"
	"jdisco/internal/output"
)

// timeFormat is the timestamp format used in rendered reports.
const timeFormat = "2006-01-02 15:04:05"

// RenderMarkdown renders the full Markdown report with its fixed sections:
// entities, business components, JSF pages, DB configuration, business-rule
// analysis, and the execution log.
func RenderMarkdown(m *inventory.Model) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Static Analysis Report: `%s`\n\n", m.Project)
	fmt.Fprintf(&b, "**Project Path:** `%s`\n", m.Root)
	fmt.Fprintf(&b, "**Analysis Date:** %s\n\n", m.FinishedAt.Format(timeFormat))
	b.WriteString("---\n\n")

	b.WriteString("## 1. Entity / Persistence Classes\n\n")
	fmt.Fprintf(&b, "**Total Classes Found:** **%d**\n\n", m.Summary.Entities)
	b.WriteString("Classes were identified by common JPA/Hibernate annotations (`@Entity`, `@Table`).\n\n")
	writeEntryBlock(&b, m.Entities)

	b.WriteString("## 2. Business Components / Controllers / Backing Beans\n\n")
	fmt.Fprintf(&b, "**Total Classes Found:** **%d**\n\n", m.Summary.BusinessComponents)
	b.WriteString("Classes were identified by common injection/management annotations (`@Named`, `@Controller`, etc.).\n\n")
	writeEntryBlock(&b, m.BusinessComponents)

	b.WriteString("## 3. JSF Pages (XHTML)\n\n")
	fmt.Fprintf(&b, "**Total Pages Found:** **%d**\n\n", m.Summary.JSFPages)
	writeEntryBlock(&b, m.JSFPages)

	b.WriteString("## 4. Database Configuration\n\n")
	if len(m.DBConfigs) == 0 {
		b.WriteString("No common database configuration files were found (.properties, .xml, .yml).\n\n")
	} else {
		b.WriteString("### Database Configuration Files Found\n\n")
		for _, e := range m.DBConfigs {
			fmt.Fprintf(&b, "- **%s** (%s) at `%s`\n",
				filepath.Base(e.File.RelativePath),
				strings.Join(e.Patterns, ", "),
				e.File.RelativePath)
		}
		b.WriteString("\n")
	}

	b.WriteString("## 5. Business Rule Analysis\n\n")
	fmt.Fprintf(&b, "**Classes Analyzed:** %d\n", m.Summary.ClassesAnalyzed)
	fmt.Fprintf(&b, "**Controllers Found:** %d\n", m.Summary.ControllersFound)
	fmt.Fprintf(&b, "**Services Found:** %d\n", m.Summary.ServicesFound)
	fmt.Fprintf(&b, "**Business Rule Methods:** %d\n", m.Summary.BusinessRuleMethods)
	fmt.Fprintf(&b, "**Avg Business Rules per Controller:** %s\n", output.FormatAverage(m.Summary.AvgBusinessRulesPerController))
	fmt.Fprintf(&b, "**Avg Business Rules per Service:** %s\n\n", output.FormatAverage(m.Summary.AvgBusinessRulesPerService))

	if len(m.Units) > 0 {
		b.WriteString("| Class | File | Methods | Public | Business Rules |\n")
		b.WriteString("|---|---|---|---|---|\n")
		for i := range m.Units {
			u := &m.Units[i]
			fmt.Fprintf(&b, "| %s | %s | %d | %d | %d |\n",
				u.ClassName, u.SourceFile,
				u.Stats.TotalMethods, u.Stats.PublicMethods, u.Stats.BusinessRuleMethods)
		}
		b.WriteString("\n")
	}

	b.WriteString("## 6. Execution Log\n\n")
	b.WriteString("```\n")
	if len(m.Log) == 0 {
		b.WriteString("No recoverable failures recorded.\n")
	}
	for _, entry := range m.Log {
		if entry.File != "" {
			fmt.Fprintf(&b, "[%s] %s: %s\n", entry.Code, entry.File, entry.Message)
		} else {
			fmt.Fprintf(&b, "[%s] %s\n", entry.Code, entry.Message)
		}
	}
	b.WriteString("```\n")

	return b.String()
}

func writeEntryBlock(b *strings.Builder, entries []inventory.Entry) {
	b.WriteString("```\n")
	if len(entries) == 0 {
		b.WriteString("(none)\n")
	}
	for _, e := range entries {
		if len(e.Patterns) > 0 {
			fmt.Fprintf(b, "* %s (pattern: %s)\n", e.File.RelativePath, strings.Join(e.Patterns, ", "))
		} else {
			fmt.Fprintf(b, "* %s\n", e.File.RelativePath)
		}
	}
	b.WriteString("```\n\n")
}

// WriteMarkdown renders the report and writes it to w.
func WriteMarkdown(m *inventory.Model, w io.Writer) error {
	_, err := io.WriteString(w, RenderMarkdown(m))
	return err
}

// MarkdownPath returns the Markdown report path inside outputDir.
func MarkdownPath(outputDir, project string) string {
	return filepath.Join(outputDir, "discovery-"+project+".md")
}

// SaveMarkdown writes the Markdown report into outputDir, creating the
// directory if needed.
func SaveMarkdown(m *inventory.Model, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", err
	}
	path := MarkdownPath(outputDir, m.Project)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := WriteMarkdown(m, f); err != nil {
		f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// Timestamp formats t for display in report headers and summaries.
func Timestamp(t time.Time) string {
	return t.Format(timeFormat)
}
