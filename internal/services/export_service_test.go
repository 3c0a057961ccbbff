package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/sjperalta/obrafin-api/internal/finance"
)

func TestExportService_CSV(t *testing.T) {
	f := seededFixture()
	svc := NewExportService(f.loader, finance.DefaultBands)

	file, err := svc.Export(context.Background(), 1, ExportCSV)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(file.Filename, "ledger_PRJ-1_"))
	assert.Equal(t, "text/csv", file.ContentType)

	r := csv.NewReader(bytes.NewReader(file.Data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, ledgerHeader, records[0])
	assert.Equal(t, "Advance", records[1][2])
	assert.Equal(t, "40000.00", records[1][8])
	assert.Contains(t, string(file.Data), "Utilidad,-20000.00")
	assert.NotContains(t, string(file.Data), "Other project")
}

func TestExportService_XLSX(t *testing.T) {
	f := seededFixture()
	svc := NewExportService(f.loader, finance.DefaultBands)

	file, err := svc.Export(context.Background(), 1, ExportXLSX)
	require.NoError(t, err)

	book, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer book.Close()

	rows, err := book.GetRows("Libro")
	require.NoError(t, err)
	assert.Len(t, rows, 4)
	assert.Equal(t, "Steel", rows[2][2])

	title, err := book.GetCellValue("Resumen", "A1")
	require.NoError(t, err)
	assert.Equal(t, "PRJ-1 - Torre", title)
}

func TestExportService_PDF(t *testing.T) {
	f := seededFixture()
	svc := NewExportService(f.loader, finance.DefaultBands)

	file, err := svc.Export(context.Background(), 1, ExportPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(file.Data, []byte("%PDF")))
	assert.Equal(t, "application/pdf", file.ContentType)
}

func TestExportService_Errors(t *testing.T) {
	f := seededFixture()
	svc := NewExportService(f.loader, finance.DefaultBands)

	_, err := svc.Export(context.Background(), 1, "docx")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Export(context.Background(), 42, ExportCSV)
	assert.ErrorIs(t, err, ErrNotFound)
}
