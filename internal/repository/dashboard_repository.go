package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/rta-dms/pta-archive-api/internal/models"
)

// DashboardRepository aggregates archive counts for the landing page.
type DashboardRepository struct {
	db *sqlx.DB
}

func NewDashboardRepository(db *sqlx.DB) *DashboardRepository {
	return &DashboardRepository{db: db}
}

// Counts computes the dashboard summary in a single pass per table.
// ExpiringSoon covers expiry-tracked documents running out within the
// next 30 days.
func (r *DashboardRepository) Counts(ctx context.Context) (*models.DashboardCounts, error) {
	counts := &models.DashboardCounts{}

	if err := r.db.GetContext(ctx, &counts.TotalEmployees,
		"SELECT COUNT(*) FROM lkp_hr_employees"); err != nil {
		return nil, err
	}

	if err := r.db.GetContext(ctx, &counts.ArchivedEmployees,
		"SELECT COUNT(*) FROM lkp_pta_emp_arch WHERE disabled = '0'"); err != nil {
		return nil, err
	}

	if err := r.db.GetContext(ctx, &counts.ActiveEmployees, `
		SELECT COUNT(*) FROM lkp_pta_emp_arch a
		JOIN lkp_pta_emp_status s ON s.system_id = a.status_id
		WHERE a.disabled = '0' AND UPPER(s.status_name) = 'ACTIVE'`); err != nil {
		return nil, err
	}

	if err := r.db.GetContext(ctx, &counts.InactiveEmployees, `
		SELECT COUNT(*) FROM lkp_pta_emp_arch a
		JOIN lkp_pta_emp_status s ON s.system_id = a.status_id
		WHERE a.disabled = '0' AND UPPER(s.status_name) = 'INACTIVE'`); err != nil {
		return nil, err
	}

	if err := r.db.GetContext(ctx, &counts.TotalDocuments,
		"SELECT COUNT(*) FROM lkp_pta_emp_docs WHERE disabled = '0'"); err != nil {
		return nil, err
	}

	if err := r.db.GetContext(ctx, &counts.ExpiringSoon, `
		SELECT COUNT(*) FROM lkp_pta_emp_docs d
		JOIN lkp_pta_doc_types t ON t.system_id = d.doc_type_id
		WHERE d.disabled = '0' AND t.has_expiry
		  AND d.expiry_date BETWEEN NOW() AND NOW() + INTERVAL '30 days'`); err != nil {
		return nil, err
	}

	breakdown := []models.StatusCount{}
	err := r.db.SelectContext(ctx, &breakdown, `
		SELECT s.system_id AS status_id, s.status_name, COUNT(a.system_id) AS cnt
		FROM lkp_pta_emp_status s
		LEFT JOIN lkp_pta_emp_arch a ON a.status_id = s.system_id AND a.disabled = '0'
		GROUP BY s.system_id, s.status_name
		ORDER BY s.status_name`)
	if err != nil {
		return nil, err
	}
	counts.StatusBreakdown = breakdown

	return counts, nil
}
