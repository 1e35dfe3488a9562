package inventory

import (
	"fmt"
	"strings"

	"github.com/Damaurora/DamaskVapers/internal/domain/models"
)

type mappedColumn struct {
	storeID   int64
	storeName string
	index     int
}

// resolveColumns maps stores to spreadsheet columns. An explicit mapping in the
// settings wins; otherwise the legacy layout applies, where the stores whose names
// contain the two keywords own columns C and D.
func resolveColumns(settings models.Settings, stores []models.Store, keywords []string) ([]mappedColumn, error) {
	if len(settings.StoreColumns) > 0 {
		return explicitColumns(settings.StoreColumns, stores)
	}
	return keywordColumns(stores, keywords)
}

func explicitColumns(mapping []models.StoreColumn, stores []models.Store) ([]mappedColumn, error) {
	byID := make(map[int64]models.Store, len(stores))
	for _, s := range stores {
		byID[s.ID] = s
	}

	seenStores := make(map[int64]bool, len(mapping))
	seenColumns := make(map[int]bool, len(mapping))
	columns := make([]mappedColumn, 0, len(mapping))

	for _, m := range mapping {
		store, ok := byID[m.StoreID]
		if !ok {
			return nil, fmt.Errorf("%w: store %d in column mapping does not exist", ErrConfiguration, m.StoreID)
		}
		idx, err := ColumnIndex(m.Column)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
		if idx < firstStoreColumn {
			return nil, fmt.Errorf("%w: column %s is reserved, store columns start at %s",
				ErrConfiguration, ColumnLabel(idx), ColumnLabel(firstStoreColumn))
		}
		if seenStores[m.StoreID] {
			return nil, fmt.Errorf("%w: store %d is mapped more than once", ErrConfiguration, m.StoreID)
		}
		if seenColumns[idx] {
			return nil, fmt.Errorf("%w: column %s is mapped more than once", ErrConfiguration, ColumnLabel(idx))
		}
		seenStores[m.StoreID] = true
		seenColumns[idx] = true

		columns = append(columns, mappedColumn{storeID: store.ID, storeName: store.Name, index: idx})
	}

	return columns, nil
}

func keywordColumns(stores []models.Store, keywords []string) ([]mappedColumn, error) {
	if len(keywords) == 0 {
		return nil, fmt.Errorf("%w: no store keywords configured", ErrConfiguration)
	}

	columns := make([]mappedColumn, 0, len(keywords))
	var missing []string

	for i, kw := range keywords {
		store, ok := findStoreByKeyword(stores, kw)
		if !ok {
			missing = append(missing, kw)
			continue
		}
		columns = append(columns, mappedColumn{storeID: store.ID, storeName: store.Name, index: firstStoreColumn + i})
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: no store matches %s", ErrConfiguration, strings.Join(missing, ", "))
	}

	return columns, nil
}

func findStoreByKeyword(stores []models.Store, keyword string) (models.Store, bool) {
	for _, s := range stores {
		if strings.Contains(s.Name, keyword) {
			return s, true
		}
	}
	return models.Store{}, false
}

// ValidateStoreColumns checks an explicit store column mapping against the known stores.
func ValidateStoreColumns(mapping []models.StoreColumn, stores []models.Store) error {
	_, err := explicitColumns(mapping, stores)
	return err
}
