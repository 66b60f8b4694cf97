package models

// HREmployee mirrors one row of the HR master list (lkp_hr_employees).
type HREmployee struct {
	EmpNo       string  `db:"empno" json:"empno"`
	EmpName     string  `db:"emp_name" json:"emp_name"`
	JobTitle    *string `db:"job_title" json:"job_title,omitempty"`
	Nationality *string `db:"nationality" json:"nationality,omitempty"`
	Email       *string `db:"email" json:"email,omitempty"`
	Phone       *string `db:"phone" json:"phone,omitempty"`
	Manager     *string `db:"manager" json:"manager,omitempty"`
	Department  *string `db:"department" json:"department,omitempty"`
	Section     *string `db:"section" json:"section,omitempty"`
	Archived    bool    `db:"-" json:"archived"`
}

// HRProfile carries the HR attributes an archive mutation writes back
// to the master list. Empty fields are left untouched.
type HRProfile struct {
	JobTitle    string
	Nationality string
	Email       string
	Phone       string
	Manager     string
	Department  string
	Section     string
}

// IsZero reports whether no attribute is set.
func (p HRProfile) IsZero() bool {
	return p == HRProfile{}
}
