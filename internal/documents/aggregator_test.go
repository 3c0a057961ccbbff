package documents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/obrafin-api/internal/models"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }
func uintPtr(v uint) *uint    { return &v }

func sampleSources() Sources {
	return Sources{
		Project: models.Project{
			ID:        1,
			Name:      "Riverside Tower",
			CreatedAt: day(2),
			Documents: []models.ProjectDocument{
				{ID: "d1", Name: "Permit.pdf", Type: models.DocumentTypeFile, MimeType: "application/pdf", URL: "/files/permit.pdf"},
				{ID: "d2", Name: "Site drive", Type: models.DocumentTypeLink, MimeType: models.MimeTypeURIList, URL: "https://drive.example.com/site"},
			},
		},
		Transactions: []models.Transaction{
			{
				ID: 10, ProjectID: uintPtr(1), Description: "Cement purchase", Date: day(5),
				Attachments: []models.Attachment{
					{ID: "a", Name: "receipt-1.jpg", URL: "data:image/jpeg;base64,AAA"},
					{ID: "b", Name: "receipt-2.jpg", URL: "data:image/jpeg;base64,BBB"},
				},
			},
			{ID: 11, ProjectID: uintPtr(1), Description: "No files", Date: day(6)},
			{
				ID: 12, ProjectID: uintPtr(2), Description: "Other project", Date: day(9),
				Attachments: []models.Attachment{{Name: "x.pdf"}},
			},
		},
		Contracts: []models.Contract{
			{ID: 10, ProjectID: 1, Code: "HD-01", Name: "Main contract", SignedDate: timePtr(day(3)), FileLink: strPtr("https://docs.example.com/hd01")},
			{ID: 11, ProjectID: 1, Name: "Unsigned", FileLink: strPtr("  ")},
			{ID: 12, ProjectID: 1, Name: "No file"},
		},
		BOQs: []models.BOQ{
			{ID: 10, ProjectID: 1, Name: "BOQ phase 1", FileURL: "/files/boq1.xlsx", CreatedAt: day(4)},
		},
	}
}

func timePtr(t time.Time) *time.Time { return &t }

func TestAggregate_CountsAndOrder(t *testing.T) {
	docs := Aggregate(sampleSources())

	// 2 attachments + 1 contract with file + 1 BOQ + 2 project documents
	require.Len(t, docs, 6)

	for i := 1; i < len(docs); i++ {
		assert.Falsef(t, docs[i].Date.After(docs[i-1].Date), "feed not sorted at %d", i)
	}

	assert.Equal(t, "TRANSACTION-10-0", docs[0].ID)
	assert.Equal(t, "TRANSACTION-10-1", docs[1].ID)
	assert.Equal(t, "BOQ-10", docs[2].ID)
	assert.Equal(t, "CONTRACT-10", docs[3].ID)
	assert.Equal(t, "PROJECT_FILE-d1", docs[4].ID)
	assert.Equal(t, "PROJECT_FILE-d2", docs[5].ID)
}

func TestAggregate_IdentitiesDoNotCollide(t *testing.T) {
	docs := Aggregate(sampleSources())

	seen := map[string]bool{}
	for _, d := range docs {
		assert.Falsef(t, seen[d.ID], "duplicate id %s", d.ID)
		seen[d.ID] = true
	}
}

func TestAggregate_SourceFields(t *testing.T) {
	byID := map[string]Document{}
	for _, d := range Aggregate(sampleSources()) {
		byID[d.ID] = d
	}

	att := byID["TRANSACTION-10-0"]
	assert.Equal(t, OriginTransaction, att.Origin)
	assert.Equal(t, "Cement purchase", att.SourceLabel)
	assert.Equal(t, day(5), att.Date)
	assert.False(t, att.IsLink)

	contract := byID["CONTRACT-10"]
	assert.True(t, contract.IsLink)
	assert.Equal(t, day(3), contract.Date)
	assert.Equal(t, "HD-01 - Main contract", contract.SourceLabel)

	boq := byID["BOQ-10"]
	assert.Equal(t, day(4), boq.Date)
	assert.Equal(t, "/files/boq1.xlsx", boq.URL)

	file := byID["PROJECT_FILE-d1"]
	link := byID["PROJECT_FILE-d2"]
	assert.False(t, file.IsLink)
	assert.True(t, link.IsLink)
	// project documents are dated with the project's creation
	assert.Equal(t, day(2), file.Date)
	assert.Equal(t, day(2), link.Date)
	assert.Equal(t, "Riverside Tower", file.SourceLabel)
}

func TestAggregate_LinkNeedsBothMarkers(t *testing.T) {
	src := Sources{Project: models.Project{
		ID: 1,
		Documents: []models.ProjectDocument{
			{ID: "a", Type: models.DocumentTypeLink, MimeType: "application/pdf"},
			{ID: "b", Type: models.DocumentTypeFile, MimeType: models.MimeTypeURIList},
		},
	}}

	for _, d := range Aggregate(src) {
		assert.False(t, d.IsLink, d.ID)
	}
}

func TestAggregate_Empty(t *testing.T) {
	docs := Aggregate(Sources{Project: models.Project{ID: 1}})

	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestAggregate_ContractWithoutSignedDateUsesCreation(t *testing.T) {
	src := Sources{
		Project:   models.Project{ID: 1},
		Contracts: []models.Contract{{ID: 5, ProjectID: 1, FileLink: strPtr("https://x"), CreatedAt: day(7)}},
	}

	docs := Aggregate(src)

	require.Len(t, docs, 1)
	assert.Equal(t, day(7), docs[0].Date)
	assert.Equal(t, "Contract 5", docs[0].Name)
}

func TestAggregate_IsRepeatable(t *testing.T) {
	src := sampleSources()
	assert.Equal(t, Aggregate(src), Aggregate(src))
}
