package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHistoryItemSortKey(t *testing.T) {
	incident := HistoryItem{Type: HistoryIncident, Date: "2025-02-10"}
	assert.Equal(t, "2025-02-10", incident.SortKey())

	completed := HistoryItem{Type: HistoryCompletedChange, CompletedDate: "2025-03-01"}
	assert.Equal(t, "2025-03-01", completed.SortKey())

	// an incident carrying both fields keeps its own date
	both := HistoryItem{Date: "2025-01-05", CompletedDate: "2025-03-01"}
	assert.Equal(t, "2025-01-05", both.SortKey())

	// undated items sink to the bottom of a newest-first sort
	assert.Equal(t, "2000-01-01", HistoryItem{}.SortKey())
}
