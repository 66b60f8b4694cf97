package dto

// ImportRowError pins a validation failure to a spreadsheet row. Row
// numbers are as shown in the sheet, the header being row one.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// BulkImportResult reports the outcome of a bulk employee import. The
// import is all or nothing: any row error means nothing was written.
type BulkImportResult struct {
	Imported int              `json:"imported"`
	Errors   []ImportRowError `json:"errors,omitempty"`
}
