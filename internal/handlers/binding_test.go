package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteBody struct {
	Content  string `json:"content"`
	AuthorID uint   `json:"author_id"`
}

func bindContext(body string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		key         string
		body        string
		expected    noteBody
		expectError bool
	}{
		{
			name:     "Nested Structure",
			key:      "note",
			body:     `{"note": {"content": "Losa nivel 2 colada", "author_id": 3}}`,
			expected: noteBody{Content: "Losa nivel 2 colada", AuthorID: 3},
		},
		{
			name:     "Flat Structure",
			key:      "note",
			body:     `{"content": "Entrega de acero", "author_id": 4}`,
			expected: noteBody{Content: "Entrega de acero", AuthorID: 4},
		},
		{
			name:     "Missing Key Falls Back To Flat",
			key:      "note",
			body:     `{"other": "value", "content": "Inspección", "author_id": 5}`,
			expected: noteBody{Content: "Inspección", AuthorID: 5},
		},
		{
			name:        "Invalid Field Type",
			key:         "note",
			body:        `{"content": "x", "author_id": "tres"}`,
			expectError: true,
		},
		{
			name:        "Nested but Invalid Content",
			key:         "note",
			body:        `{"note": {"content": "x", "author_id": "tres"}}`,
			expectError: true,
		},
		{
			name:        "Nested Key Present but Invalid Type",
			key:         "note",
			body:        `{"note": "some string"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var result noteBody
			err := BindNestedOrFlat(bindContext(tt.body), tt.key, &result)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}

func TestBindNestedOrFlatKeepsAmountPrecision(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var req transactionRequest
	err := BindNestedOrFlat(bindContext(`{"transaction": {"amount": 12345678901234.56, "type": "expense"}}`), "transaction", &req)
	require.NoError(t, err)

	assert.Equal(t, json.Number("12345678901234.56"), req.Amount)
	assert.Equal(t, "expense", req.Type)
}

func TestBindNestedOrFlatAcceptsStringAmount(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var req transactionRequest
	err := BindNestedOrFlat(bindContext(`{"amount": "abc"}`), "transaction", &req)
	require.NoError(t, err)
	assert.Equal(t, "abc", req.Amount)
}
