package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParsePaginationParams(t *testing.T) {
	tests := []struct {
		query string
		want  PaginationParams
	}{
		{"", PaginationParams{Page: 1, Limit: 50}},
		{"?page=3&limit=20", PaginationParams{Page: 3, Limit: 20}},
		{"?page=0&limit=-1", PaginationParams{Page: 1, Limit: 50}},
		{"?page=x&limit=9999", PaginationParams{Page: 1, Limit: 500}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/companies"+tt.query, nil)

			if got := ParsePaginationParams(c, 50, 500); got != tt.want {
				t.Errorf("ParsePaginationParams() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPageBounds(t *testing.T) {
	tests := []struct {
		total      int
		params     PaginationParams
		start, end int
	}{
		{10, PaginationParams{Page: 1, Limit: 4}, 0, 4},
		{10, PaginationParams{Page: 3, Limit: 4}, 8, 10},
		{10, PaginationParams{Page: 9, Limit: 4}, 10, 10},
		{0, PaginationParams{Page: 1, Limit: 4}, 0, 0},
	}
	for _, tt := range tests {
		start, end := PageBounds(tt.total, tt.params)
		if start != tt.start || end != tt.end {
			t.Errorf("PageBounds(%d, %+v) = %d,%d, want %d,%d", tt.total, tt.params, start, end, tt.start, tt.end)
		}
	}
}

func TestCalculateTotalPages(t *testing.T) {
	if got := CalculateTotalPages(0, 10); got != 1 {
		t.Errorf("CalculateTotalPages(0, 10) = %d, want 1", got)
	}
	if got := CalculateTotalPages(21, 10); got != 3 {
		t.Errorf("CalculateTotalPages(21, 10) = %d, want 3", got)
	}
}

func TestSendPaginatedResponseMergesExtra(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	SendPaginatedResponse(c, http.StatusOK, []string{}, 0, 1, 10, gin.H{"message": "empty"})

	var body map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	for _, key := range []string{"data", "pagination", "message"} {
		if _, ok := body[key]; !ok {
			t.Errorf("body missing %q: %s", key, w.Body.String())
		}
	}
	if string(body["data"]) != "[]" {
		t.Errorf("data = %s, want []", body["data"])
	}
}
