package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/user-auth-service/internal/model"
)

// UserRepo persists user records in the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,name,email,username,password_hash,created_at,updated_at"

// Create inserts a user and returns the stored row. The caller supplies
// an already hashed password. Duplicate username or email maps to
// ErrDuplicateUser via MySQL error 1062.
func (r *UserRepo) Create(ctx context.Context, u *model.User) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(u.Email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, username, password_hash) VALUES (?,?,?,?)",
		u.Name, email, u.Username, u.PasswordHash)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByUsername fetches a user by login name.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx,
		"SELECT "+userColumns+" FROM users WHERE username=? LIMIT 1", username)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return r.getOne(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id)
}

// Update writes all mutable columns of u and returns the refreshed row.
// Partial-merge semantics live in the service layer; by the time a user
// reaches here every field carries its final value.
func (r *UserRepo) Update(ctx context.Context, u *model.User) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(u.Email))
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, email=?, username=?, password_hash=?, updated_at=UTC_TIMESTAMP() WHERE id=?",
		u.Name, email, u.Username, u.PasswordHash, u.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}
	return r.GetByID(ctx, u.ID)
}

// Delete removes a user row. ErrNotFound when no row was affected.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// isDuplicateKey reports whether err is a MySQL duplicate-entry error
// (code 1062) from the unique indexes on username/email.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
