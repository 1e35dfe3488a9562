package models

import "time"

// SyncFrequency is the operator's preferred cadence for spreadsheet syncs.
type SyncFrequency string

const (
	SyncManual SyncFrequency = "manual"
	SyncHourly SyncFrequency = "hourly"
	SyncDaily  SyncFrequency = "daily"
)

// Valid reports whether f is a known frequency.
func (f SyncFrequency) Valid() bool {
	switch f {
	case SyncManual, SyncHourly, SyncDaily:
		return true
	default:
		return false
	}
}

// DefaultSheetName is used when the settings do not name a worksheet.
const DefaultSheetName = "Sheet1"

// StoreColumn binds a store to the spreadsheet column carrying its quantity.
type StoreColumn struct {
	StoreID int64  `bson:"store_id" json:"storeId"`
	Column  string `bson:"column" json:"column"`
}

// Settings is the site-wide configuration record.
type Settings struct {
	ShopName        string        `bson:"shop_name" json:"shopName"`
	Logo            string        `bson:"logo,omitempty" json:"logo,omitempty"`
	Description     string        `bson:"description,omitempty" json:"description,omitempty"`
	GoogleSheetsURL string        `bson:"google_sheets_url,omitempty" json:"googleSheetsUrl,omitempty"`
	GoogleAPIKey    string        `bson:"google_api_key,omitempty" json:"googleApiKey,omitempty"`
	SyncFrequency   SyncFrequency `bson:"sync_frequency" json:"syncFrequency"`
	SheetName       string        `bson:"sheet_name,omitempty" json:"sheetName,omitempty"`
	StoreColumns    []StoreColumn `bson:"store_columns,omitempty" json:"storeColumns,omitempty"`
	LastSyncTime    *time.Time    `bson:"last_sync_time,omitempty" json:"lastSyncTime,omitempty"`
}

// RedactedSecret replaces secrets in responses.
const RedactedSecret = "********"

// Redacted returns a copy safe to expose publicly.
func (s Settings) Redacted() Settings {
	if s.GoogleAPIKey != "" {
		s.GoogleAPIKey = RedactedSecret
	}
	return s
}
