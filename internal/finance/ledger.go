// Package finance derives a project's financial state from its raw ledger.
// Every function here is pure: inputs are snapshots and are never modified.
package finance

import "github.com/sjperalta/obrafin-api/internal/models"

// FilterByProject returns the transactions booked against projectID, in input order.
func FilterByProject(txs []models.Transaction, projectID uint) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for i := range txs {
		if txs[i].BelongsTo(projectID) {
			out = append(out, txs[i])
		}
	}
	return out
}

// FilterByStatus returns the transactions in the given status, in input order.
func FilterByStatus(txs []models.Transaction, status string) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for i := range txs {
		if txs[i].Status == status {
			out = append(out, txs[i])
		}
	}
	return out
}

// Realized returns the project's paid transactions: the only ones that count
// toward income and expense.
func Realized(txs []models.Transaction, projectID uint) []models.Transaction {
	return FilterByStatus(FilterByProject(txs, projectID), models.TransactionStatusPaid)
}
