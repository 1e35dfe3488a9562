package inventory

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Damaurora/DamaskVapers/internal/domain/models"
)

const (
	skuColumn           = 0
	declaredTotalColumn = 1
	firstStoreColumn    = 2
)

var spreadsheetIDPattern = regexp.MustCompile(`/d/([a-zA-Z0-9-_]+)`)

// ExtractSpreadsheetID pulls the document ID out of a Google Sheets URL such as
// https://docs.google.com/spreadsheets/d/<id>/edit.
func ExtractSpreadsheetID(url string) (string, bool) {
	match := spreadsheetIDPattern.FindStringSubmatch(url)
	if match == nil {
		return "", false
	}
	return match[1], true
}

// ColumnIndex converts a column label ("A", "D", "AA") to its zero-based index.
func ColumnIndex(label string) (int, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if label == "" {
		return 0, fmt.Errorf("empty column label")
	}
	idx := 0
	for _, r := range label {
		if r < 'A' || r > 'Z' {
			return 0, fmt.Errorf("invalid column label %q", label)
		}
		idx = idx*26 + int(r-'A'+1)
	}
	return idx - 1, nil
}

// ColumnLabel is the inverse of ColumnIndex.
func ColumnLabel(idx int) string {
	var b []byte
	for idx++; idx > 0; idx = (idx - 1) / 26 {
		b = append([]byte{byte('A' + (idx-1)%26)}, b...)
	}
	return string(b)
}

// DataRange is the A1 range covering all data rows (the header is row 1) up to
// the last mapped store column.
func DataRange(sheetName string, columns []mappedColumn) string {
	last := declaredTotalColumn
	for _, c := range columns {
		if c.index > last {
			last = c.index
		}
	}
	return fmt.Sprintf("%s!A2:%s", sheetName, ColumnLabel(last))
}

// ParseRows converts raw sheet values into rows. Rows without a SKU are dropped;
// unreadable quantity cells count as zero.
func ParseRows(values [][]interface{}, columns []mappedColumn) []models.SheetRow {
	rows := make([]models.SheetRow, 0, len(values))
	for _, raw := range values {
		sku := strings.TrimSpace(cellString(raw, skuColumn))
		if sku == "" {
			continue
		}

		row := models.SheetRow{
			SKU:           sku,
			DeclaredTotal: parseQuantity(cellString(raw, declaredTotalColumn)),
			Stores:        make([]models.StoreQuantity, 0, len(columns)),
		}
		for _, c := range columns {
			row.Stores = append(row.Stores, models.StoreQuantity{
				StoreID:  c.storeID,
				Quantity: parseQuantity(cellString(raw, c.index)),
			})
		}
		rows = append(rows, row)
	}
	return rows
}

func cellString(row []interface{}, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	return fmt.Sprint(row[idx])
}

// parseQuantity reads the leading integer of a cell ("12", " 7 pcs", "3.9" -> 3).
// Anything without leading digits is 0.
func parseQuantity(value string) int {
	s := strings.TrimSpace(value)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
