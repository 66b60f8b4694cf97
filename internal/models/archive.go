package models

import "time"

// Expiry statuses derived from a document's expiry date.
const (
	ExpiryStatusMissing  = "MISSING"
	ExpiryStatusExpired  = "EXPIRED"
	ExpiryStatusExpiring = "EXPIRING"
	ExpiryStatusValid    = "VALID"
)

// Archive is one employee archive record in LKP_PTA_EMP_ARCH.
type Archive struct {
	SystemID     int64      `db:"system_id" json:"system_id"`
	EmpNo        string     `db:"empno" json:"empno"`
	EmpName      string     `db:"emp_name" json:"emp_name"`
	StatusID     int64      `db:"status_id" json:"status_id"`
	StatusName   string     `db:"status_name" json:"status_name,omitempty"`
	HireDate     *time.Time `db:"hire_date" json:"hire_date,omitempty"`
	Notes        string     `db:"notes" json:"notes,omitempty"`
	Disabled     string     `db:"disabled" json:"-"`
	CreatedBy    string     `db:"created_by" json:"created_by"`
	CreatedDate  time.Time  `db:"created_date" json:"created_date"`
	ModifiedBy   *string    `db:"modified_by" json:"modified_by,omitempty"`
	ModifiedDate *time.Time `db:"modified_date" json:"modified_date,omitempty"`

	// Latest active expiry per tracked document kind, used to decorate
	// listings.
	CardExpiry    *time.Time `db:"card_expiry" json:"card_expiry,omitempty"`
	WarrantExpiry *time.Time `db:"warrant_expiry" json:"warrant_expiry,omitempty"`
	CardStatus    string     `db:"-" json:"card_status,omitempty"`
	WarrantStatus string     `db:"-" json:"warrant_status,omitempty"`

	Documents []Document `db:"-" json:"documents,omitempty"`
}

// ArchiveFilter narrows archive listings. CardStatus and WarrantStatus
// accept MISSING, EXPIRED or VALID (EXPIRING rows count as VALID for
// filtering).
type ArchiveFilter struct {
	Search        string
	StatusID      int64
	CardStatus    string
	WarrantStatus string
	Page          int
	PerPage       int
}
