package models

import "time"

// Document is one archived document row in LKP_PTA_EMP_DOCS. The
// DocNumber points at the object stored in the DMS.
type Document struct {
	SystemID    int64     `db:"system_id" json:"system_id"`
	ArchiveID   int64     `db:"arch_id" json:"archive_id"`
	DocTypeID   int64     `db:"doc_type_id" json:"doc_type_id"`
	DocTypeName string    `db:"doc_type_name" json:"doc_type_name,omitempty"`
	DocNumber   int64      `db:"doc_number" json:"doc_number"`
	DocName     string     `db:"doc_name" json:"doc_name"`
	ExpiryDate  *time.Time `db:"expiry_date" json:"expiry_date,omitempty"`
	Disabled    string     `db:"disabled" json:"-"`
	CreatedBy   string     `db:"created_by" json:"created_by"`
	CreatedDate time.Time  `db:"created_date" json:"created_date"`

	LegislationIDs   []int64  `db:"-" json:"legislation_ids,omitempty"`
	LegislationNames []string `db:"-" json:"legislation_names,omitempty"`
}

// DocumentLegislation links a document to one legislation entry
// (LKP_PTA_DOC_LEGISL).
type DocumentLegislation struct {
	DocID     int64 `db:"doc_id"`
	LegislID  int64 `db:"legisl_id"`
	ArchiveID int64 `db:"arch_id"`
}

// StoredDocument is the payload retrieved from the DMS for download.
type StoredDocument struct {
	DocNumber int64
	FileName  string
	Content   []byte
}
