package repo

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"fundtrack/internal/domain"
	"fundtrack/internal/infra"
	"fundtrack/internal/sqlinline"
)

// UserRepositoryPG implements domain.InternRepository on the users table.
type UserRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewUserRepository creates a new UserRepositoryPG.
func NewUserRepository(sql infra.SQLExecutor) *UserRepositoryPG {
	return &UserRepositoryPG{sql: sql}
}

// ListInterns returns every profile with the intern role, oldest first.
func (r *UserRepositoryPG) ListInterns(ctx context.Context) ([]domain.Intern, error) {
	rows, err := r.sql.Query(ctx, sqlinline.QListInterns)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Intern
	for rows.Next() {
		in, err := scanIntern(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *in)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// GetIntern loads a single intern profile.
func (r *UserRepositoryPG) GetIntern(ctx context.Context, id string) (*domain.Intern, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	in, err := scanIntern(r.sql.QueryRow(ctx, sqlinline.QSelectInternByID, id))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return in, nil
}

// GetUser loads the identity projection used for access checks.
func (r *UserRepositoryPG) GetUser(ctx context.Context, id string) (*domain.AuthUser, error) {
	if !validID(id) {
		return nil, domain.ErrNotFound
	}
	var (
		u    domain.AuthUser
		role string
	)
	err := r.sql.QueryRow(ctx, sqlinline.QSelectAuthUser, id).Scan(&u.ID, &u.Email, &u.FullName, &role)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if u.Role, err = domain.ParseUserRole(role); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateProfile inserts the profile row for a freshly signed-up account.
// Existing profiles are left untouched and reported as ErrConflict.
func (r *UserRepositoryPG) CreateProfile(ctx context.Context, profile domain.NewProfile, goal decimal.Decimal) error {
	if !validID(profile.ID) {
		return fmt.Errorf("%w: profile id %q", domain.ErrInvalidInput, profile.ID)
	}
	tag, err := r.sql.Exec(ctx, sqlinline.QInsertProfile,
		profile.ID,
		profile.Email,
		profile.FullName,
		string(profile.Role),
		domain.DefaultGoal(profile.Role, goal).String(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: profile %s", domain.ErrConflict, profile.ID)
	}
	return nil
}

// UpdateProfile sets an intern's goal and mentor. An empty mentor clears it.
func (r *UserRepositoryPG) UpdateProfile(ctx context.Context, id string, goal decimal.Decimal, mentor string) error {
	if !validID(id) {
		return domain.ErrNotFound
	}
	tag, err := r.sql.Exec(ctx, sqlinline.QUpdateInternProfile, id, goal.String(), mentor)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanIntern(row rowScanner) (*domain.Intern, error) {
	var (
		in            domain.Intern
		goal, current string
	)
	if err := row.Scan(
		&in.ID,
		&in.Email,
		&in.FullName,
		&in.Phone,
		&in.Mentor,
		&goal,
		&current,
		&in.CreatedAt,
		&in.UpdatedAt,
	); err != nil {
		return nil, err
	}
	var err error
	if in.FundraisingGoal, err = parseAmount("fundraising_goal", goal); err != nil {
		return nil, err
	}
	if in.CurrentAmount, err = parseAmount("current_amount", current); err != nil {
		return nil, err
	}
	return &in, nil
}
