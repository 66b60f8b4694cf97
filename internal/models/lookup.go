package models

// EmployeeStatus is one row of LKP_PTA_EMP_STATUS.
type EmployeeStatus struct {
	SystemID int64  `db:"system_id" json:"system_id"`
	Name     string `db:"status_name" json:"name"`
}

// Document type names with expiry tracking rules attached.
const (
	DocTypeJudicialCard    = "Judicial Card"
	DocTypeWarrantDecision = "Warrant Decision"
)

// DocumentType is one row of LKP_PTA_DOC_TYPES. HasExpiry marks types
// whose documents carry an expiry date.
type DocumentType struct {
	SystemID  int64  `db:"system_id" json:"system_id"`
	Name      string `db:"type_name" json:"name"`
	HasExpiry bool   `db:"has_expiry" json:"has_expiry"`
}

// Legislation is one row of LKP_PTA_LEGISL.
type Legislation struct {
	SystemID int64  `db:"system_id" json:"system_id"`
	Name     string `db:"legisl_name" json:"name"`
}
