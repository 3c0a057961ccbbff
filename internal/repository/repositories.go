package repository

import (
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Project     ProjectRepository
	Transaction TransactionRepository
	Contract    ContractRepository
	Procurement ProcurementRepository
}

// NewRepositories creates all repository instances
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Project:     NewProjectRepository(db),
		Transaction: NewTransactionRepository(db),
		Contract:    NewContractRepository(db),
		Procurement: NewProcurementRepository(db),
	}
}

// ListQuery represents common query parameters
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	SortBy  string
	SortDir string
	Filters map[string]string
}

// NewListQuery creates a ListQuery with defaults
func NewListQuery() *ListQuery {
	return &ListQuery{
		Page:    1,
		PerPage: 20,
		Filters: make(map[string]string),
	}
}

// TotalPages returns the page count for total rows.
func (q *ListQuery) TotalPages(total int64) int64 {
	if q.PerPage <= 0 {
		return 1
	}
	return (total + int64(q.PerPage) - 1) / int64(q.PerPage)
}

// Offset returns the number of rows skipped before the current page.
func (q *ListQuery) Offset() int {
	if q.Page < 1 || q.PerPage <= 0 {
		return 0
	}
	return (q.Page - 1) * q.PerPage
}

// paginate applies sorting and pagination. Only columns listed in sortable
// may be used for ordering; anything else falls back to defaultOrder.
func paginate(db *gorm.DB, query *ListQuery, sortable map[string]bool, defaultOrder string) *gorm.DB {
	if query.SortBy != "" && sortable[query.SortBy] {
		order := query.SortBy
		if query.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order(defaultOrder)
	}

	if query.PerPage > 0 {
		db = db.Offset(query.Offset()).Limit(query.PerPage)
	}
	return db
}
