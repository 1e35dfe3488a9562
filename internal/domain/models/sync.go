package models

import "time"

// StoreQuantity is the quantity one spreadsheet row declares for one store.
type StoreQuantity struct {
	StoreID  int64 `json:"storeId"`
	Quantity int   `json:"quantity"`
}

// SheetRow is one parsed spreadsheet data row. It only lives during a pass.
type SheetRow struct {
	SKU           string          `json:"sku"`
	DeclaredTotal int             `json:"declaredTotal"`
	Stores        []StoreQuantity `json:"stores"`
}

// Total sums the per-store quantities, which is the authoritative total.
func (r SheetRow) Total() int {
	total := 0
	for _, s := range r.Stores {
		total += s.Quantity
	}
	return total
}

// RowOutcome classifies what a pass did with a row.
type RowOutcome string

const (
	RowUpdated          RowOutcome = "updated"
	RowSkippedUnmatched RowOutcome = "skipped_unmatched"
	RowWriteError       RowOutcome = "write_error"
)

// RowResult reports the processing of one row.
type RowResult struct {
	SKU           string        `json:"sku"`
	ProductID     int64         `json:"productId,omitempty"`
	Outcome       RowOutcome    `json:"outcome"`
	Quantity      int           `json:"quantity"`
	Status        ProductStatus `json:"status,omitempty"`
	TotalMismatch bool          `json:"totalMismatch,omitempty"`
	Error         string        `json:"error,omitempty"`
}

// SyncReport is the full result of one reconciliation pass.
type SyncReport struct {
	RunID      string      `json:"runId"`
	StartedAt  time.Time   `json:"startedAt"`
	FinishedAt time.Time   `json:"finishedAt"`
	Rows       []RowResult `json:"rows"`
	Updated    int         `json:"updated"`
	Unmatched  int         `json:"unmatched"`
	Failed     int         `json:"failed"`
}

// Add appends a row result and bumps the matching counter.
func (r *SyncReport) Add(res RowResult) {
	r.Rows = append(r.Rows, res)
	switch res.Outcome {
	case RowUpdated:
		r.Updated++
	case RowSkippedUnmatched:
		r.Unmatched++
	case RowWriteError:
		r.Failed++
	}
}
