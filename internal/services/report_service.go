package services

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/shopspring/decimal"
	"github.com/sjperalta/obrafin-api/internal/documents"
	"github.com/sjperalta/obrafin-api/internal/finance"
	"github.com/sjperalta/obrafin-api/internal/models"
	"github.com/sjperalta/obrafin-api/internal/storage"
	"github.com/sjperalta/obrafin-api/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

var reportTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"money":   func(d decimal.Decimal) string { return d.StringFixed(2) },
	"words":   AmountInWords,
	"percent": func(f float64) string { return fmt.Sprintf("%.2f%%", f) },
	"date":    func(t time.Time) string { return t.Format("2006-01-02") },
}).ParseFS(templateFS, "templates/*.html"))

// PDFRenderer converts an HTML page to PDF.
type PDFRenderer func(html []byte) ([]byte, error)

type ReportService struct {
	overview *OverviewService
	projects *ProjectService
	storage  *storage.LocalStorage
	render   PDFRenderer
}

func NewReportService(overview *OverviewService, projects *ProjectService, storage *storage.LocalStorage) *ReportService {
	return &ReportService{overview: overview, projects: projects, storage: storage, render: wkhtmlToPDF}
}

type costLine struct {
	Label   string
	Control finance.CostControl
}

type dossierData struct {
	GeneratedAt  string
	Project      models.ProjectResponse
	Financials   finance.ProjectFinancials
	Costs        []costLine
	Contracts    []models.Contract
	Transactions []models.Transaction
	Documents    []documents.Document
}

// DossierHTML renders the project dossier page.
func (s *ReportService) DossierHTML(ctx context.Context, projectID uint) ([]byte, *Overview, error) {
	ov, err := s.overview.Get(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}

	data := dossierData{
		GeneratedAt: time.Now().Format("2006-01-02 15:04"),
		Project:     ov.Project,
		Financials:  ov.Financials,
		Costs: []costLine{
			{"Materiales", ov.CostControl.Material},
			{"Mano de Obra", ov.CostControl.Labor},
			{"Otros", ov.CostControl.Other},
		},
		Contracts:    ov.Contracts,
		Transactions: ov.RecentTransactions,
		Documents:    ov.Documents,
	}

	var buf bytes.Buffer
	if err := reportTemplates.ExecuteTemplate(&buf, "dossier.html", data); err != nil {
		return nil, nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), ov, nil
}

// GenerateDossier renders the dossier to PDF, archives it and attaches it to
// the project. It returns the updated project and the new document.
func (s *ReportService) GenerateDossier(ctx context.Context, actor Actor, projectID uint) (*models.Project, *models.ProjectDocument, error) {
	html, ov, err := s.DossierHTML(ctx, projectID)
	if err != nil {
		return nil, nil, err
	}

	pdf, err := s.render(html)
	if err != nil {
		return nil, nil, err
	}

	name := fmt.Sprintf("Expediente %s %s.pdf", ov.Project.Code, time.Now().Format("2006-01-02"))
	rel, err := s.storage.UploadFromBytes(pdf, name, "dossiers")
	if err != nil {
		return nil, nil, err
	}

	doc := models.ProjectDocument{
		Name:     name,
		Type:     models.DocumentTypeFile,
		MimeType: "application/pdf",
		URL:      FileURLPrefix + rel,
	}
	project, err := s.projects.AttachDocument(ctx, actor, projectID, doc)
	if err != nil {
		if delErr := s.storage.Delete(rel); delErr != nil {
			logger.Warn("failed to remove orphan dossier", slog.String("path", rel), slog.Any("error", delErr))
		}
		return nil, nil, err
	}

	attached := project.Documents[len(project.Documents)-1]
	return project, &attached, nil
}

func wkhtmlToPDF(html []byte) ([]byte, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html))
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}
	return pdfg.Bytes(), nil
}
