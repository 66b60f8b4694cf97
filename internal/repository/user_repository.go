package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/rta-dms/pta-archive-api/internal/models"
)

// UserRepository reads user security assignments. Authentication
// itself happens against the DMS, this only resolves what an
// authenticated user may do.
type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// SecurityLevel returns the security level name assigned to the user.
// Users without an assignment default to viewer.
func (r *UserRepository) SecurityLevel(ctx context.Context, username string) (string, error) {
	var level string
	err := r.db.GetContext(ctx, &level, `
		SELECT s.security_name
		FROM lkp_pta_usr_secur u
		JOIN lkp_pta_security s ON s.system_id = u.security_id
		WHERE UPPER(u.user_id) = $1`,
		strings.ToUpper(username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.SecurityViewer, nil
		}
		return "", err
	}

	return strings.ToUpper(level), nil
}

// FullName returns the user's display name from the DMS people table,
// falling back to the login name.
func (r *UserRepository) FullName(ctx context.Context, username string) (string, error) {
	var fullName string
	err := r.db.GetContext(ctx, &fullName,
		"SELECT full_name FROM people WHERE UPPER(user_id) = $1",
		strings.ToUpper(username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return username, nil
		}
		return "", err
	}

	return fullName, nil
}
