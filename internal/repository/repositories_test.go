package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewListQuery(t *testing.T) {
	q := NewListQuery()

	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 20, q.PerPage)
	assert.NotNil(t, q.Filters)
}

func TestListQuery_TotalPages(t *testing.T) {
	tests := []struct {
		perPage int
		total   int64
		want    int64
	}{
		{20, 0, 0},
		{20, 1, 1},
		{20, 20, 1},
		{20, 21, 2},
		{0, 50, 1},
	}

	for _, tt := range tests {
		q := &ListQuery{PerPage: tt.perPage}
		assert.Equal(t, tt.want, q.TotalPages(tt.total))
	}
}

func TestListQuery_Offset(t *testing.T) {
	assert.Equal(t, 0, (&ListQuery{Page: 1, PerPage: 20}).Offset())
	assert.Equal(t, 40, (&ListQuery{Page: 3, PerPage: 20}).Offset())
	assert.Equal(t, 0, (&ListQuery{Page: 0, PerPage: 20}).Offset())
	assert.Equal(t, 0, (&ListQuery{Page: 4, PerPage: 0}).Offset())
}
