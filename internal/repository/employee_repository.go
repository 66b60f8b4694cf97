package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/rta-dms/pta-archive-api/internal/models"
)

// EmployeeRepository reads the HR master list (lkp_hr_employees) and
// writes back the profile attributes an archive mutation carries.
type EmployeeRepository struct {
	db *sqlx.DB
}

func NewEmployeeRepository(db *sqlx.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

const employeeColumns = "empno, emp_name, job_title, nationality, email, phone, manager, department, section"

// List returns HR employees, optionally filtered by a search term over
// number and name.
func (r *EmployeeRepository) List(ctx context.Context, search string) ([]models.HREmployee, error) {
	employees := []models.HREmployee{}

	if search == "" {
		err := r.db.SelectContext(ctx, &employees,
			"SELECT "+employeeColumns+" FROM lkp_hr_employees ORDER BY empno")
		if err != nil {
			return nil, err
		}
		return employees, nil
	}

	term := "%" + strings.ToUpper(search) + "%"
	err := r.db.SelectContext(ctx, &employees,
		"SELECT "+employeeColumns+` FROM lkp_hr_employees
		WHERE UPPER(empno) LIKE $1 OR UPPER(emp_name) LIKE $1
		ORDER BY empno`, term)
	if err != nil {
		return nil, err
	}

	return employees, nil
}

// GetByEmpNo returns one HR employee or sql.ErrNoRows.
func (r *EmployeeRepository) GetByEmpNo(ctx context.Context, empNo string) (*models.HREmployee, error) {
	var employee models.HREmployee
	err := r.db.GetContext(ctx, &employee,
		"SELECT "+employeeColumns+" FROM lkp_hr_employees WHERE empno = $1", empNo)
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

// UpdateProfileTx writes the supplied HR attributes back to the master
// row inside the caller's transaction. Empty attributes are skipped so
// a partial submission never blanks existing data.
func (r *EmployeeRepository) UpdateProfileTx(ctx context.Context, tx *sqlx.Tx, empNo string, profile models.HRProfile) error {
	if profile.IsZero() {
		return nil
	}

	sets := []string{}
	args := []interface{}{}

	add := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	add("job_title", profile.JobTitle)
	add("nationality", profile.Nationality)
	add("email", profile.Email)
	add("phone", profile.Phone)
	add("manager", profile.Manager)
	add("department", profile.Department)
	add("section", profile.Section)

	if len(sets) == 0 {
		return nil
	}

	args = append(args, empNo)
	query := fmt.Sprintf("UPDATE lkp_hr_employees SET %s WHERE empno = $%d",
		strings.Join(sets, ", "), len(args))

	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// ArchivedEmpNos returns every employee number that already has an
// active archive record.
func (r *EmployeeRepository) ArchivedEmpNos(ctx context.Context) (map[string]struct{}, error) {
	empNos := []string{}
	err := r.db.SelectContext(ctx, &empNos,
		"SELECT empno FROM lkp_pta_emp_arch WHERE disabled = '0'")
	if err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(empNos))
	for _, empNo := range empNos {
		set[empNo] = struct{}{}
	}

	return set, nil
}
