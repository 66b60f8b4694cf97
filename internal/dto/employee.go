package dto

// EmployeeListQuery filters the HR master list. Unarchived drops
// employees that already hold an active archive.
type EmployeeListQuery struct {
	Search     string `form:"search"`
	Unarchived bool   `form:"unarchived"`
	Page       int    `form:"page,default=1"`
	PerPage    int    `form:"per_page,default=20"`
}
