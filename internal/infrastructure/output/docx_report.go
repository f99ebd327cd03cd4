package output

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gingfrederik/docx"

	"SparqlScanner/internal/domain"
	"SparqlScanner/internal/ports"
)

// DocxReport renders a human-readable summary of the result rows.
type DocxReport struct {
	path       string
	titleField string
}

var _ ports.ResultWriter = (*DocxReport)(nil)

// NewDocxReport wires the report path; titleField names the attribute used as heading.
func NewDocxReport(path, titleField string) *DocxReport {
	return &DocxReport{path: path, titleField: titleField}
}

// Write builds the report and saves it.
func (r *DocxReport) Write(ctx context.Context, doc domain.ResultDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f := docx.NewFile()

	run := f.AddParagraph().AddText("SPARQL Endpoint Report")
	run.Size(20)

	run = f.AddParagraph().AddText(fmt.Sprintf("Run %s | %s | mode: %s | rows: %d",
		doc.RunID, doc.GeneratedAt.Format("2006-01-02 15:04:05"), doc.Mode, len(doc.Rows)))
	run.Size(10)
	run.Color("808080")
	f.AddParagraph()

	for _, row := range doc.Rows {
		run = f.AddParagraph().AddText(r.heading(row))
		run.Size(16)

		run = f.AddParagraph().AddText(row.Endpoint)
		run.Size(10)
		run.Color("0000FF")

		status := "declared"
		if row.Guessed {
			status = "guessed"
		}
		if row.Verified {
			status += fmt.Sprintf(", verified by %s", row.VerifiedBy)
			run = f.AddParagraph().AddText(status)
			run.Color("008000")
			for _, ep := range row.VerifiedEndpoints {
				f.AddParagraph().AddText(fmt.Sprintf("- %s (%s, %s)", ep.URL, ep.Source, ep.Mode))
			}
		} else {
			f.AddParagraph().AddText(status)
			for _, c := range row.Candidates {
				f.AddParagraph().AddText(fmt.Sprintf("- %s (%s)", c.URL, c.Source))
			}
		}

		f.AddParagraph().AddText("--------------------------------------------------")
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	if err := f.Save(r.path); err != nil {
		return fmt.Errorf("save report %s: %w", r.path, err)
	}
	return nil
}

func (r *DocxReport) heading(row domain.ResultRow) string {
	if v, ok := row.Attributes[r.titleField].(string); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	keys := make([]string, 0, len(row.Attributes))
	for k := range row.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if v, ok := row.Attributes[k].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return fmt.Sprintf("Record #%d", row.Index)
}
