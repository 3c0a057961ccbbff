package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/sjperalta/obrafin-api/internal/finance"
	"github.com/sjperalta/obrafin-api/internal/models"
	"github.com/xuri/excelize/v2"
)

// Export formats
const (
	ExportCSV  = "csv"
	ExportXLSX = "xlsx"
	ExportPDF  = "pdf"
)

// ExportFile is a generated download.
type ExportFile struct {
	Data        []byte
	Filename    string
	ContentType string
}

type ExportService struct {
	loader *sourceLoader
	bands  finance.Bands
}

func NewExportService(loader *sourceLoader, bands finance.Bands) *ExportService {
	return &ExportService{loader: loader, bands: bands}
}

var ledgerHeader = []string{"ID", "Fecha", "Descripción", "Categoría", "Tipo", "Estado", "Material", "Mano de Obra", "Monto"}

// Export renders the project's ledger and financial summary in format.
func (s *ExportService) Export(ctx context.Context, projectID uint, format string) (*ExportFile, error) {
	src, err := s.loader.load(ctx, projectID, false)
	if err != nil {
		return nil, err
	}
	fin := finance.Aggregate(src.Project, src.Transactions, src.Contracts)
	base := fmt.Sprintf("ledger_%s_%s", src.Project.Code, time.Now().Format("2006-01-02"))

	switch format {
	case ExportCSV:
		data, err := ledgerCSV(src.Transactions, fin)
		return &ExportFile{Data: data, Filename: base + ".csv", ContentType: "text/csv"}, err
	case ExportXLSX:
		data, err := ledgerXLSX(src.Project, src.Transactions, fin)
		return &ExportFile{Data: data, Filename: base + ".xlsx", ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"}, err
	case ExportPDF:
		data, err := summaryPDF(src.Project, fin, finance.EvaluateCategories(fin, s.bands))
		return &ExportFile{Data: data, Filename: base + ".pdf", ContentType: "application/pdf"}, err
	default:
		return nil, invalidInput(fmt.Sprintf("formato de exportación desconocido: %s", format))
	}
}

func ledgerRow(tx models.Transaction) []string {
	return []string{
		fmt.Sprintf("%d", tx.ID),
		tx.Date.Format("2006-01-02"),
		tx.Description,
		tx.Category,
		tx.Type,
		tx.Status,
		yesNo(tx.IsMaterialCost),
		yesNo(tx.IsLaborCost),
		tx.Amount.StringFixed(2),
	}
}

func summaryRows(fin finance.ProjectFinancials) [][]string {
	return [][]string{
		{"Ingreso Esperado", fin.ExpectedRevenue.StringFixed(2)},
		{"Ingresos", fin.Income.StringFixed(2)},
		{"Egresos", fin.Expense.StringFixed(2)},
		{"Utilidad", fin.Profit.StringFixed(2)},
		{"Materiales", fin.Costs.Material.StringFixed(2)},
		{"Mano de Obra", fin.Costs.Labor.StringFixed(2)},
		{"Otros", fin.Costs.Other.StringFixed(2)},
		{"Por Cobrar", fin.Receivable.StringFixed(2)},
		{"Sobrepago", fin.Overpaid.StringFixed(2)},
		{"Avance", fmt.Sprintf("%.2f%%", fin.Progress)},
		{"Ingresos Pendientes", fin.PendingIncome.StringFixed(2)},
		{"Egresos Pendientes", fin.PendingExpense.StringFixed(2)},
	}
}

func ledgerCSV(txs []models.Transaction, fin finance.ProjectFinancials) ([]byte, error) {
	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)

	if err := w.Write(ledgerHeader); err != nil {
		return nil, err
	}
	for _, tx := range txs {
		if err := w.Write(ledgerRow(tx)); err != nil {
			return nil, err
		}
	}

	_ = w.Write([]string{""})
	_ = w.Write([]string{"Resumen"})
	for _, row := range summaryRows(fin) {
		_ = w.Write(row)
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func ledgerXLSX(project models.Project, txs []models.Transaction, fin finance.ProjectFinancials) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const ledger = "Libro"
	const summary = "Resumen"
	_ = f.SetSheetName("Sheet1", ledger)
	if _, err := f.NewSheet(summary); err != nil {
		return nil, err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, h := range ledgerHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(ledger, cell, h)
	}
	_ = f.SetCellStyle(ledger, "A1", "I1", headerStyle)

	for r, tx := range txs {
		row := r + 2
		_ = f.SetCellValue(ledger, cellName(1, row), tx.ID)
		_ = f.SetCellValue(ledger, cellName(2, row), tx.Date.Format("2006-01-02"))
		_ = f.SetCellValue(ledger, cellName(3, row), tx.Description)
		_ = f.SetCellValue(ledger, cellName(4, row), tx.Category)
		_ = f.SetCellValue(ledger, cellName(5, row), tx.Type)
		_ = f.SetCellValue(ledger, cellName(6, row), tx.Status)
		_ = f.SetCellValue(ledger, cellName(7, row), yesNo(tx.IsMaterialCost))
		_ = f.SetCellValue(ledger, cellName(8, row), yesNo(tx.IsLaborCost))
		_ = f.SetCellValue(ledger, cellName(9, row), tx.Amount.InexactFloat64())
	}

	_ = f.SetCellValue(summary, "A1", fmt.Sprintf("%s - %s", project.Code, project.Name))
	_ = f.SetCellStyle(summary, "A1", "A1", headerStyle)
	for i, row := range summaryRows(fin) {
		_ = f.SetCellValue(summary, cellName(1, i+3), row[0])
		_ = f.SetCellValue(summary, cellName(2, i+3), row[1])
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func summaryPDF(project models.Project, fin finance.ProjectFinancials, cats finance.CategoryControl) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, tr(fmt.Sprintf("Resumen Financiero: %s", project.Name)))
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 10, tr(fmt.Sprintf("Código %s - Estado %s - %s", project.Code, project.Status, time.Now().Format("2006-01-02"))))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Cifras")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	for _, row := range summaryRows(fin) {
		pdf.Cell(70, 8, tr(row[0]+":"))
		pdf.Cell(40, 8, row[1])
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Control de Costos")
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 10)
	for _, c := range []struct {
		label string
		cc    finance.CostControl
	}{
		{"Materiales", cats.Material},
		{"Mano de Obra", cats.Labor},
		{"Otros", cats.Other},
	} {
		pdf.Cell(50, 8, tr(c.label))
		pdf.Cell(30, 8, fmt.Sprintf("%.2f%%", c.cc.Percentage))
		pdf.Cell(40, 8, fmt.Sprintf("%.0f%% - %.0f%%", c.cc.Band.Min, c.cc.Band.Max))
		pdf.Cell(30, 8, string(c.cc.Status))
		pdf.Ln(6)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}
