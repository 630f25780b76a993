package usecase

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/decide-lab/decidehub/pkg/domain/model"
	"github.com/decide-lab/decidehub/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

//go:embed prompt/export.html
var exportHTMLTmpl string

var exportHTML = template.Must(template.New("export").Parse(exportHTMLTmpl))

// ExportResult is a rendered case export
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportCase renders a case with its latest analysis and simulation as CSV
// or a print-ready HTML document.
func (uc *UseCases) ExportCase(ctx context.Context, caseID types.CaseID, format types.ExportFormat) (*ExportResult, error) {
	if !format.IsValid() {
		return nil, goerr.New("invalid export format", goerr.V("format", format))
	}

	c, err := uc.repo.Case().Get(ctx, caseID)
	if notFound(err) {
		return nil, goerr.Wrap(ErrCaseNotFound, "no such case", goerr.V("caseID", caseID))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch case", goerr.V("caseID", caseID))
	}

	analysis, err := uc.repo.Analysis().Latest(ctx, caseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch analysis", goerr.V("caseID", caseID))
	}
	simulation, err := uc.repo.Simulation().Latest(ctx, caseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch simulation", goerr.V("caseID", caseID))
	}

	if format == types.ExportCSV {
		return &ExportResult{
			Filename:    fmt.Sprintf("decision-%s.csv", caseID),
			ContentType: format.ContentType(),
			Body:        renderCSV(c, analysis),
		}, nil
	}

	body, err := renderHTML(c, analysis, simulation)
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		Filename:    fmt.Sprintf("decision-%s.html", caseID),
		ContentType: format.ContentType(),
		Body:        body,
	}, nil
}

// orNA substitutes the N/A placeholder for absent optional fields
func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// quoteCell wraps a cell in double quotes, doubling any embedded quote.
// Every cell is quoted so optional fields render exactly as "N/A".
func quoteCell(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func renderCSV(c *model.DecisionCase, analysis *model.Analysis) []byte {
	rows := [][]string{
		{"Field", "Value"},
		{"Title", c.Title},
		{"Description", c.Description},
		{"Status", c.Status.String()},
		{"Context", orNA(c.Context)},
		{"Constraints", orNA(c.Constraints)},
		{"Objectives", orNA(c.Objectives)},
		{"Risks", orNA(c.Risks)},
		{"Created", c.CreatedAt.Format("2006-01-02")},
		{""},
	}

	if analysis != nil {
		rows = append(rows,
			[]string{"Analysis Summary", orNA(analysis.Summary)},
			[]string{"Recommended Path", orNA(analysis.RecommendedPath)},
			[]string{"Probability Reasoning", orNA(analysis.ProbabilityReasoning)},
		)
	}

	var buf bytes.Buffer
	for i, row := range rows {
		if i > 0 {
			buf.WriteByte('\n')
		}
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = quoteCell(cell)
		}
		buf.WriteString(strings.Join(cells, ","))
	}

	return buf.Bytes()
}

type exportSection struct {
	Label string
	Value string
}

type exportHTMLData struct {
	Title       string
	Status      string
	Description string
	Sections    []exportSection
	Analysis    []exportSection
	Simulation  []exportSection
	GeneratedAt string
}

func renderHTML(c *model.DecisionCase, analysis *model.Analysis, simulation *model.Simulation) ([]byte, error) {
	data := exportHTMLData{
		Title:       c.Title,
		Status:      c.Status.String(),
		Description: c.Description,
		GeneratedAt: time.Now().UTC().Format("2006-01-02 15:04:05 MST"),
	}

	optional := []exportSection{
		{Label: "Context", Value: c.Context},
		{Label: "Constraints", Value: c.Constraints},
		{Label: "Objectives", Value: c.Objectives},
		{Label: "Risks", Value: c.Risks},
	}
	for _, s := range optional {
		if s.Value != "" {
			data.Sections = append(data.Sections, s)
		}
	}

	if analysis != nil {
		data.Analysis = []exportSection{
			{Label: "Summary", Value: orNA(analysis.Summary)},
			{Label: "Recommended Path", Value: orNA(analysis.RecommendedPath)},
			{Label: "Probability Reasoning", Value: orNA(analysis.ProbabilityReasoning)},
		}
	}

	if simulation != nil {
		expected, err := json.Marshal(simulation.ExpectedValue)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to encode expected value")
		}
		data.Simulation = []exportSection{
			{Label: "Expected Value", Value: string(expected)},
		}
	}

	var buf bytes.Buffer
	if err := exportHTML.Execute(&buf, data); err != nil {
		return nil, goerr.Wrap(err, "failed to render export document")
	}

	return buf.Bytes(), nil
}
