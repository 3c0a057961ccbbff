package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sjperalta/obrafin-api/internal/models"
)

func TestFilterByProject(t *testing.T) {
	txs := []models.Transaction{
		{ID: 1, ProjectID: uintPtr(1)},
		{ID: 2, ProjectID: uintPtr(2)},
		{ID: 3},
		{ID: 4, ProjectID: uintPtr(1)},
	}

	got := FilterByProject(txs, 1)

	assert.Len(t, got, 2)
	assert.Equal(t, uint(1), got[0].ID)
	assert.Equal(t, uint(4), got[1].ID)
	assert.Equal(t, got, FilterByProject(FilterByProject(txs, 1), 1), "filter is idempotent")
	assert.Empty(t, FilterByProject(nil, 1))
}

func TestRealized(t *testing.T) {
	txs := []models.Transaction{
		{ID: 1, ProjectID: uintPtr(1), Status: models.TransactionStatusPaid},
		{ID: 2, ProjectID: uintPtr(1), Status: models.TransactionStatusSubmitted},
		{ID: 3, ProjectID: uintPtr(2), Status: models.TransactionStatusPaid},
	}

	got := Realized(txs, 1)

	assert.Len(t, got, 1)
	assert.Equal(t, uint(1), got[0].ID)
}
