package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/stephaniewilkinson/siskiyou/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *sqlx.DB) user.Repository {
	return &userRepository{db: db}
}

// userRow mirrors the users table; classroom subscriptions and children
// are stored as jsonb.
type userRow struct {
	ID            string          `db:"id"`
	FirstName     string          `db:"first_name"`
	LastName      string          `db:"last_name"`
	Email         string          `db:"email"`
	PasswordHash  []byte          `db:"password_hash"`
	Role          string          `db:"role"`
	IsActive      bool            `db:"is_active"`
	IsApproved    bool            `db:"is_approved"`
	LastLogin     null.Time       `db:"last_login"`
	Subscriptions json.RawMessage `db:"classroom_subscriptions"`
	Children      json.RawMessage `db:"children"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

const userColumns = `id, first_name, last_name, email, password_hash, role, is_active, is_approved,
	last_login, classroom_subscriptions, children, created_at, updated_at`

func newUserRow(usr user.User) (userRow, error) {
	subs, err := json.Marshal(usr.Subscriptions)
	if err != nil {
		return userRow{}, errors.Wrap(err, "marshalling subscriptions")
	}
	children, err := json.Marshal(usr.Children)
	if err != nil {
		return userRow{}, errors.Wrap(err, "marshalling children")
	}
	return userRow{
		ID:            usr.ID,
		FirstName:     usr.FirstName,
		LastName:      usr.LastName,
		Email:         usr.Email,
		PasswordHash:  usr.PasswordHash,
		Role:          usr.Role,
		IsActive:      usr.IsActive,
		IsApproved:    usr.IsApproved,
		LastLogin:     usr.LastLogin,
		Subscriptions: subs,
		Children:      children,
		CreatedAt:     usr.CreatedAt,
		UpdatedAt:     usr.UpdatedAt,
	}, nil
}

func (row userRow) toUser() (user.User, error) {
	usr := user.User{
		ID:           row.ID,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
		Role:         row.Role,
		IsActive:     row.IsActive,
		IsApproved:   row.IsApproved,
		LastLogin:    row.LastLogin,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if len(row.Subscriptions) > 0 {
		if err := json.Unmarshal(row.Subscriptions, &usr.Subscriptions); err != nil {
			return user.User{}, errors.Wrap(err, "unmarshalling subscriptions")
		}
	}
	if len(row.Children) > 0 {
		if err := json.Unmarshal(row.Children, &usr.Children); err != nil {
			return user.User{}, errors.Wrap(err, "unmarshalling children")
		}
	}
	return usr, nil
}

func toUsers(rows []userRow) ([]user.User, error) {
	users := make([]user.User, 0, len(rows))
	for _, row := range rows {
		usr, err := row.toUser()
		if err != nil {
			return nil, err
		}
		users = append(users, usr)
	}
	return users, nil
}

func (repo *userRepository) CheckEmailUniqueness(ctx context.Context, email string) error {
	var exists bool
	err := repo.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))`, email)
	if err != nil {
		return errors.Wrap(err, "checking email uniqueness")
	}
	if exists {
		return user.ErrEmailExists
	}
	return nil
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	row, err := newUserRow(usr)
	if err != nil {
		return user.User{}, err
	}
	_, err = repo.db.NamedExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (:id, :first_name, :last_name, :email, :password_hash, :role, :is_active, :is_approved,
			:last_login, :classroom_subscriptions, :children, :created_at, :updated_at)`,
		row,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	var rows []userRow
	if err := repo.db.SelectContext(ctx, &rows,
		`SELECT `+userColumns+` FROM users ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	return toUsers(rows)
}

func (repo *userRepository) QueryPendingUsers(ctx context.Context) ([]user.User, error) {
	var rows []userRow
	if err := repo.db.SelectContext(ctx, &rows,
		`SELECT `+userColumns+` FROM users WHERE NOT is_approved ORDER BY created_at`); err != nil {
		return nil, errors.Wrap(err, "querying pending users")
	}
	return toUsers(rows)
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	var row userRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user by id")
	}
	return row.toUser()
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var row userRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return user.User{}, user.ErrNotFound
		}
		return user.User{}, errors.Wrap(err, "getting user by email")
	}
	return row.toUser()
}

func (repo *userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	row, err := newUserRow(usr)
	if err != nil {
		return user.User{}, err
	}
	res, err := repo.db.NamedExecContext(ctx, `
		UPDATE users
		SET first_name = :first_name, last_name = :last_name, email = :email,
			password_hash = :password_hash, role = :role, is_active = :is_active,
			is_approved = :is_approved, classroom_subscriptions = :classroom_subscriptions,
			children = :children, updated_at = :updated_at
		WHERE id = :id`,
		row,
	)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

func (repo *userRepository) SetLastLogin(ctx context.Context, id string, t time.Time) error {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE users SET last_login = $2 WHERE id = $1`, id, t)
	if err != nil {
		return errors.Wrap(err, "setting last login")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.ErrNotFound
	}
	return nil
}

func (repo *userRepository) DeleteUser(ctx context.Context, id string) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting user")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return user.ErrNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a postgres unique_violation (23505).
func isUniqueViolation(err error) bool {
	if pqErr, ok := errors.Cause(err).(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}
