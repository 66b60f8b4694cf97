package models

import "time"

// Audit action names.
const (
	AuditActionLogin         = "LOGIN"
	AuditActionLogout        = "LOGOUT"
	AuditActionArchiveCreate = "ARCHIVE_CREATE"
	AuditActionArchiveUpdate = "ARCHIVE_UPDATE"
	AuditActionArchiveDelete = "ARCHIVE_DELETE"
	AuditActionBulkImport    = "BULK_IMPORT"
	AuditActionDownload      = "DOCUMENT_DOWNLOAD"
)

// AuditEntry is one row of the audit_log table.
type AuditEntry struct {
	ID        string    `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Action    string    `db:"action" json:"action"`
	Entity    string    `db:"entity" json:"entity"`
	EntityID  string    `db:"entity_id" json:"entity_id"`
	Detail    string    `db:"detail" json:"detail,omitempty"`
	RequestID string    `db:"request_id" json:"request_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
