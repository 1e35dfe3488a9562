package inventory

import "errors"

// ErrConfiguration marks pre-flight failures: missing or malformed settings, or a
// store mapping that cannot be resolved. Nothing has been written when it is returned.
var ErrConfiguration = errors.New("sync configuration error")

// ErrSourceFetch marks a failure to read the spreadsheet. Nothing has been written
// when it is returned.
var ErrSourceFetch = errors.New("spreadsheet fetch failed")
