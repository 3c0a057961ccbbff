package finance

import (
	"github.com/shopspring/decimal"

	"github.com/sjperalta/obrafin-api/internal/models"
)

// CostBreakdown splits realized expense into cost categories.
// Other is always Expense - Material - Labor.
type CostBreakdown struct {
	Material decimal.Decimal `json:"material"`
	Labor    decimal.Decimal `json:"labor"`
	Other    decimal.Decimal `json:"other"`
}

// ProjectFinancials is derived on every read and never stored.
type ProjectFinancials struct {
	ProjectID       uint            `json:"project_id"`
	ExpectedRevenue decimal.Decimal `json:"expected_revenue"`
	Income          decimal.Decimal `json:"income"`
	Expense         decimal.Decimal `json:"expense"`
	Profit          decimal.Decimal `json:"profit"`
	Costs           CostBreakdown   `json:"costs"`
	Receivable      decimal.Decimal `json:"receivable"`
	// Overpaid is income collected beyond expected revenue. Receivable stays
	// clamped at zero in that case.
	Overpaid decimal.Decimal `json:"overpaid"`
	Progress float64         `json:"progress"`
	// Raw totals of project transactions not yet paid.
	PendingIncome  decimal.Decimal `json:"pending_income"`
	PendingExpense decimal.Decimal `json:"pending_expense"`
}

// ResolveExpectedRevenue picks the denominator for progress and cost bands:
// the project's contract total when set and non-zero, otherwise the sum of the
// project's revenue contracts, otherwise zero.
func ResolveExpectedRevenue(project models.Project, contracts []models.Contract) decimal.Decimal {
	if project.ContractTotalValue != nil {
		if v := nonNegative(*project.ContractTotalValue); !v.IsZero() {
			return v
		}
	}

	total := decimal.Zero
	for i := range contracts {
		c := &contracts[i]
		if c.ProjectID == project.ID && c.IsRevenue() {
			total = total.Add(nonNegative(c.Value))
		}
	}
	return total
}

// Aggregate reduces the full transaction list into the project's financials.
// Transactions of other projects are ignored; empty input yields all zeros.
func Aggregate(project models.Project, txs []models.Transaction, contracts []models.Contract) ProjectFinancials {
	fin := ProjectFinancials{
		ProjectID:       project.ID,
		ExpectedRevenue: ResolveExpectedRevenue(project, contracts),
	}

	var material, labor decimal.Decimal
	for _, tx := range FilterByProject(txs, project.ID) {
		amount := nonNegative(tx.Amount)

		if !tx.IsPaid() {
			switch tx.Type {
			case models.TransactionTypeIncome:
				fin.PendingIncome = fin.PendingIncome.Add(amount)
			case models.TransactionTypeExpense:
				fin.PendingExpense = fin.PendingExpense.Add(amount)
			}
			continue
		}

		switch tx.Type {
		case models.TransactionTypeIncome:
			fin.Income = fin.Income.Add(amount)
		case models.TransactionTypeExpense:
			fin.Expense = fin.Expense.Add(amount)
			if tx.IsMaterialCost {
				material = material.Add(amount)
			}
			if tx.IsLaborCost {
				labor = labor.Add(amount)
			}
		}
	}

	fin.Profit = fin.Income.Sub(fin.Expense)
	fin.Costs = CostBreakdown{
		Material: material,
		Labor:    labor,
		Other:    fin.Expense.Sub(material).Sub(labor),
	}

	if gap := fin.ExpectedRevenue.Sub(fin.Income); gap.IsPositive() {
		fin.Receivable = gap
	} else {
		fin.Receivable = decimal.Zero
	}
	if fin.ExpectedRevenue.IsPositive() {
		if extra := fin.Income.Sub(fin.ExpectedRevenue); extra.IsPositive() {
			fin.Overpaid = extra
		}
	}

	fin.Progress = percentOf(fin.Income, fin.ExpectedRevenue)
	return fin
}
