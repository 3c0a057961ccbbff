// Package documents merges the files scattered across a project's ledger,
// contracts, procurement records and the project itself into one feed.
package documents

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sjperalta/obrafin-api/internal/finance"
	"github.com/sjperalta/obrafin-api/internal/models"
)

// Origin tags where a document came from.
type Origin string

const (
	OriginTransaction Origin = "TRANSACTION"
	OriginContract    Origin = "CONTRACT"
	OriginBOQ         Origin = "BOQ"
	OriginProjectFile Origin = "PROJECT_FILE"
)

// Document is one normalized entry of the feed.
type Document struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Origin      Origin    `json:"origin"`
	Date        time.Time `json:"date"`
	SourceID    string    `json:"source_id"`
	SourceLabel string    `json:"source_label"`
	URL         string    `json:"url"`
	MimeType    string    `json:"mime_type,omitempty"`
	// IsLink marks documents that open externally instead of in a viewer.
	IsLink bool `json:"is_link"`
}

// Sources are the four inputs of the feed. Transactions may include other
// projects' entries; only those booked to Project are used.
type Sources struct {
	Project      models.Project
	Transactions []models.Transaction
	Contracts    []models.Contract
	BOQs         []models.BOQ
}

func compositeID(origin Origin, sourceID string) string {
	return fmt.Sprintf("%s-%s", origin, sourceID)
}

// Aggregate builds the feed, newest first. Entries with equal dates keep
// source order: transactions, contracts, BOQs, project files.
func Aggregate(src Sources) []Document {
	var docs []Document

	for _, tx := range finance.FilterByProject(src.Transactions, src.Project.ID) {
		for i, att := range tx.Attachments {
			sourceID := fmt.Sprintf("%d-%d", tx.ID, i)
			name := att.Name
			if name == "" {
				name = fmt.Sprintf("Attachment %d", i+1)
			}
			docs = append(docs, Document{
				ID:          compositeID(OriginTransaction, sourceID),
				Name:        name,
				Origin:      OriginTransaction,
				Date:        tx.Date,
				SourceID:    sourceID,
				SourceLabel: tx.Description,
				URL:         att.URL,
				MimeType:    att.MimeType,
			})
		}
	}

	for i := range src.Contracts {
		c := &src.Contracts[i]
		if c.FileLink == nil || strings.TrimSpace(*c.FileLink) == "" {
			continue
		}
		date := c.CreatedAt
		if c.SignedDate != nil {
			date = *c.SignedDate
		}
		sourceID := fmt.Sprintf("%d", c.ID)
		docs = append(docs, Document{
			ID:          compositeID(OriginContract, sourceID),
			Name:        contractLabel(c),
			Origin:      OriginContract,
			Date:        date,
			SourceID:    sourceID,
			SourceLabel: contractLabel(c),
			URL:         strings.TrimSpace(*c.FileLink),
			IsLink:      true,
		})
	}

	for i := range src.BOQs {
		b := &src.BOQs[i]
		sourceID := fmt.Sprintf("%d", b.ID)
		docs = append(docs, Document{
			ID:          compositeID(OriginBOQ, sourceID),
			Name:        b.Name,
			Origin:      OriginBOQ,
			Date:        b.CreatedAt,
			SourceID:    sourceID,
			SourceLabel: "Procurement",
			URL:         b.FileURL,
		})
	}

	// Project documents carry no timestamp of their own; they are dated with
	// the project's creation.
	for i, d := range src.Project.Documents {
		sourceID := d.ID
		if sourceID == "" {
			sourceID = fmt.Sprintf("%d-%d", src.Project.ID, i)
		}
		docs = append(docs, Document{
			ID:          compositeID(OriginProjectFile, sourceID),
			Name:        d.Name,
			Origin:      OriginProjectFile,
			Date:        src.Project.CreatedAt,
			SourceID:    sourceID,
			SourceLabel: src.Project.Name,
			URL:         d.URL,
			MimeType:    d.MimeType,
			IsLink:      d.IsLink(),
		})
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Date.After(docs[j].Date)
	})
	if docs == nil {
		docs = []Document{}
	}
	return docs
}

func contractLabel(c *models.Contract) string {
	switch {
	case c.Code != "" && c.Name != "":
		return c.Code + " - " + c.Name
	case c.Name != "":
		return c.Name
	case c.Code != "":
		return c.Code
	default:
		return fmt.Sprintf("Contract %d", c.ID)
	}
}
