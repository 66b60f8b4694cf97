package dto

// EmployeeProfileInput carries HR attributes written back to the
// master list as part of an archive mutation. All fields optional.
type EmployeeProfileInput struct {
	JobTitle    string `json:"job_title"`
	Nationality string `json:"nationality"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Manager     string `json:"manager"`
	Department  string `json:"department"`
	Section     string `json:"section"`
}

// DocumentInput is one document to upload and attach to an archive.
// Content is base64 encoded. ExpiryDate uses YYYY-MM-DD and only
// applies to expiry-tracked document types.
type DocumentInput struct {
	DocTypeID      int64   `json:"doc_type_id" binding:"required"`
	FileName       string  `json:"file_name" binding:"required,filename"`
	Content        string  `json:"content" binding:"required"`
	ExpiryDate     string  `json:"expiry_date"`
	LegislationIDs []int64 `json:"legislation_ids"`
}

// CreateArchiveRequest opens an archive for one employee with at least
// one document.
type CreateArchiveRequest struct {
	EmpNo     string                `json:"empno" binding:"required"`
	StatusID  int64                 `json:"status_id" binding:"required"`
	HireDate  string                `json:"hire_date"`
	Notes     string                `json:"notes"`
	Employee  *EmployeeProfileInput `json:"employee"`
	Documents []DocumentInput       `json:"documents" binding:"required,min=1,dive"`
}

// DocumentLegislationInput re-links one kept document during an
// archive update.
type DocumentLegislationInput struct {
	DocID          int64   `json:"doc_id" binding:"required"`
	LegislationIDs []int64 `json:"legislation_ids"`
}

// UpdateArchiveRequest modifies an existing archive. Removed documents
// are soft-disabled. KeepLegislations replaces the legislation links
// of the listed documents only; unlisted documents keep theirs.
type UpdateArchiveRequest struct {
	StatusID          int64                      `json:"status_id" binding:"required"`
	HireDate          string                     `json:"hire_date"`
	Notes             string                     `json:"notes"`
	Employee          *EmployeeProfileInput      `json:"employee"`
	AddDocuments      []DocumentInput            `json:"add_documents" binding:"dive"`
	RemoveDocumentIDs []int64                    `json:"remove_document_ids"`
	KeepLegislations  []DocumentLegislationInput `json:"keep_legislations" binding:"dive"`
}

// ArchiveListQuery filters archive listings. Card and warrant status
// accept MISSING, EXPIRED or VALID.
type ArchiveListQuery struct {
	Search        string `form:"search"`
	StatusID      int64  `form:"status_id"`
	CardStatus    string `form:"card_status"`
	WarrantStatus string `form:"warrant_status"`
	Page          int    `form:"page,default=1"`
	PerPage       int    `form:"per_page,default=20"`
}
