package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/cybersorcerer/cmtwidth/pkg/lsp"
)

// JSON Report Structures
type Report struct {
	Summary Summary      `json:"summary"`
	Files   []FileReport `json:"files"`
}

type Summary struct {
	TotalFiles      int  `json:"total_files"`
	FilesWithIssues int  `json:"files_with_issues"`
	FilesFixed      int  `json:"files_fixed"`
	TotalErrors     int  `json:"total_errors"`
	TotalWarnings   int  `json:"total_warnings"`
	TotalInfos      int  `json:"total_infos"`
	Success         bool `json:"success"`
}

type FileReport struct {
	Path        string           `json:"path"`
	Status      string           `json:"status"` // "success", "warning", "failure"
	Fixed       int              `json:"fixed,omitempty"`
	Diff        string           `json:"diff,omitempty"`
	Diagnostics []DiagnosticItem `json:"diagnostics"`
}

type DiagnosticItem struct {
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message"`
}

const (
	severityError   = "ERROR"
	severityWarning = "WARNING"
	severityInfo    = "INFO"
)

// buildReport summarizes lint results. Files without findings, fixes or a
// diff are left out of Files.
func buildReport(results []fileResult, cfg *LintConfig) Report {
	report := Report{Files: []FileReport{}}
	report.Summary.TotalFiles = len(results)
	hasErrors := false

	for _, res := range results {
		fileReport := FileReport{
			Path:        res.Path,
			Status:      "success",
			Fixed:       res.Fixed,
			Diff:        res.Diff,
			Diagnostics: []DiagnosticItem{},
		}

		if res.Err != nil {
			fileReport.Status = "failure"
			fileReport.Diagnostics = append(fileReport.Diagnostics, DiagnosticItem{
				Line:     1,
				Column:   1,
				Severity: severityError,
				Message:  res.Err.Error(),
			})
			report.Summary.TotalErrors++
			hasErrors = true
		}

		for _, d := range res.Diagnostics {
			item := DiagnosticItem{
				Line:    d.Range.Start.Line + 1,
				Column:  d.Range.Start.Character + 1,
				Code:    d.Code,
				Message: d.Message,
			}

			switch d.Severity {
			case lsp.SeverityError:
				item.Severity = severityError
				report.Summary.TotalErrors++
				fileReport.Status = "failure"
				hasErrors = true
			case lsp.SeverityWarning:
				item.Severity = severityWarning
				report.Summary.TotalWarnings++
				if fileReport.Status == "success" {
					fileReport.Status = "warning"
				}
				// Warnings cause failure only if warnings_as_errors is set
				if cfg.WarningsAsErrors {
					hasErrors = true
				}
			default:
				item.Severity = severityInfo
				report.Summary.TotalInfos++
			}

			fileReport.Diagnostics = append(fileReport.Diagnostics, item)
		}

		if res.Fixed > 0 {
			report.Summary.FilesFixed++
		}
		if len(fileReport.Diagnostics) > 0 {
			report.Summary.FilesWithIssues++
		}
		if len(fileReport.Diagnostics) > 0 || res.Fixed > 0 || res.Diff != "" {
			report.Files = append(report.Files, fileReport)
		}
	}

	report.Summary.Success = !hasErrors
	return report
}

// writeJSON writes the report as indented JSON
func writeJSON(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

var (
	colorPass   = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	colorWarn   = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	colorFail   = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	colorAccent = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}

	passStyle    = lipgloss.NewStyle().Foreground(colorPass)
	warnStyle    = lipgloss.NewStyle().Foreground(colorWarn)
	failStyle    = lipgloss.NewStyle().Foreground(colorFail)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
)

const (
	iconPass = "✓"
	iconWarn = "⚠"
	iconFail = "✗"
	iconInfo = "ℹ"
)

// writeText writes the report as styled markdown
func writeText(w io.Writer, report Report) {
	if len(report.Files) > 0 {
		fmt.Fprintln(w, headingStyle.Render("# cmtwidth Lint Report"))
		fmt.Fprintln(w)
		for _, file := range report.Files {
			fmt.Fprintln(w, headingStyle.Render("## File:")+" `"+file.Path+"`")
			if file.Fixed > 0 {
				fmt.Fprintf(w, "- %s fixed %d comment lines\n", passStyle.Render(iconPass), file.Fixed)
			}
			for _, d := range file.Diagnostics {
				icon, style := severityIcon(d.Severity)
				label := style.Render(icon + " **" + d.Severity + "**")
				position := mutedStyle.Render(fmt.Sprintf("(Line %d, Col %d)", d.Line, d.Column))

				// Format: - ⚠ **WARNING** `code` (Line X, Col Y): Message
				if d.Code != "" {
					fmt.Fprintf(w, "- %s `%s` %s: %s\n", label, d.Code, position, d.Message)
				} else {
					fmt.Fprintf(w, "- %s %s: %s\n", label, position, d.Message)
				}
			}
			if file.Diff != "" {
				fmt.Fprintln(w)
				fmt.Fprintln(w, "```diff")
				fmt.Fprint(w, file.Diff)
				fmt.Fprintln(w, "```")
			}
			fmt.Fprintln(w)
		}
	}

	// Summary Footer
	fmt.Fprintln(w, headingStyle.Render("## Summary"))
	fmt.Fprintf(w, "- **Files checked**: %d\n", report.Summary.TotalFiles)
	if report.Summary.FilesFixed > 0 {
		fmt.Fprintf(w, "- **Files fixed**: %d\n", report.Summary.FilesFixed)
	}

	if report.Summary.Success && report.Summary.FilesWithIssues == 0 {
		fmt.Fprintf(w, "- **Result**: %s\n", passStyle.Render(iconPass+" SUCCESS"))
		return
	}
	fmt.Fprintf(w, "- **Files with issues**: %d\n", report.Summary.FilesWithIssues)
	fmt.Fprintf(w, "- **Total Errors**: %d\n", report.Summary.TotalErrors)
	fmt.Fprintf(w, "- **Total Warnings**: %d\n", report.Summary.TotalWarnings)
	fmt.Fprintf(w, "- **Total Infos**: %d\n", report.Summary.TotalInfos)
	if report.Summary.Success {
		fmt.Fprintf(w, "- **Result**: %s\n", passStyle.Render(iconPass+" SUCCESS"))
	} else {
		fmt.Fprintf(w, "- **Result**: %s\n", failStyle.Render(iconFail+" FAILURE"))
	}
}

func severityIcon(severity string) (string, lipgloss.Style) {
	switch severity {
	case severityError:
		return iconFail, failStyle
	case severityWarning:
		return iconWarn, warnStyle
	default:
		return iconInfo, mutedStyle
	}
}
