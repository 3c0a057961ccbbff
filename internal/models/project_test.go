package models

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProject_WithNoteKeepsOriginal(t *testing.T) {
	original := Project{ID: 1, Notes: []ProjectNote{{ID: "old", Content: "first"}}}

	updated := original.WithNote(ProjectNote{ID: "new", Content: "second"})

	require.Len(t, updated.Notes, 2)
	assert.Equal(t, "new", updated.Notes[0].ID)
	assert.Equal(t, "old", updated.Notes[1].ID)
	require.Len(t, original.Notes, 1)
	assert.Equal(t, "old", original.Notes[0].ID)
}

func TestProject_WithDocumentAppends(t *testing.T) {
	original := Project{ID: 1, Documents: []ProjectDocument{{ID: "a"}}}

	updated := original.WithDocument(ProjectDocument{ID: "b"})

	require.Len(t, updated.Documents, 2)
	assert.Equal(t, "b", updated.Documents[1].ID)
	assert.Len(t, original.Documents, 1)
}

func TestProjectDocument_IsLink(t *testing.T) {
	tests := []struct {
		name string
		doc  ProjectDocument
		want bool
	}{
		{"link with uri list", ProjectDocument{Type: DocumentTypeLink, MimeType: MimeTypeURIList}, true},
		{"link without mime", ProjectDocument{Type: DocumentTypeLink, MimeType: "application/pdf"}, false},
		{"file with uri list", ProjectDocument{Type: DocumentTypeFile, MimeType: MimeTypeURIList}, false},
		{"plain file", ProjectDocument{Type: DocumentTypeFile, MimeType: "image/png"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.doc.IsLink())
		})
	}
}

func TestMain(m *testing.M) {
	UseNumericMoneyJSON()
	os.Exit(m.Run())
}

func TestUseNumericMoneyJSON(t *testing.T) {
	decimal.MarshalJSONWithoutQuotes = false
	raw, err := json.Marshal(decimal.RequireFromString("12.50"))
	require.NoError(t, err)
	assert.Equal(t, `"12.5"`, string(raw))

	UseNumericMoneyJSON()
	raw, err = json.Marshal(decimal.RequireFromString("12.50"))
	require.NoError(t, err)
	assert.Equal(t, `12.5`, string(raw))
}

func TestProject_ToResponse(t *testing.T) {
	value := decimal.NewFromInt(1000000)
	p := &Project{
		ID:                 3,
		Code:               "PRJ-003",
		Name:               "Warehouse",
		Status:             ProjectStatusActive,
		ContractTotalValue: &value,
		Notes:              []ProjectNote{{ID: "n1"}},
		CreatedAt:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	resp := p.ToResponse()

	assert.Equal(t, 1, resp.NoteCount)
	assert.NotNil(t, resp.Documents)
	assert.NotNil(t, resp.SalesIDs)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"contract_total_value":1000000`)
	assert.Contains(t, string(raw), `"documents":[]`)
}

func TestIsValidProjectStatus(t *testing.T) {
	for _, s := range ProjectStatuses {
		assert.True(t, IsValidProjectStatus(s))
	}
	assert.False(t, IsValidProjectStatus("archived"))
	assert.False(t, IsValidProjectStatus(""))
}

func TestTransaction_Guards(t *testing.T) {
	id := uint(7)
	tx := &Transaction{ProjectID: &id, Status: TransactionStatusSubmitted}

	assert.True(t, tx.BelongsTo(7))
	assert.False(t, tx.BelongsTo(8))
	assert.False(t, (&Transaction{}).BelongsTo(0))
	assert.True(t, tx.MayApprove())
	assert.True(t, tx.MayReject())
	assert.False(t, tx.MaySubmit())
	assert.False(t, tx.MayUndo())
}

func TestContract_HasFile(t *testing.T) {
	empty := ""
	link := "https://files.example.com/c.pdf"

	assert.False(t, (&Contract{}).HasFile())
	assert.False(t, (&Contract{FileLink: &empty}).HasFile())
	assert.True(t, (&Contract{FileLink: &link}).HasFile())
}
