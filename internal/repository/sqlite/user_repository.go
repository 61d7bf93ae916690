package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/vytor/learnpulse/internal/logger"
	"github.com/vytor/learnpulse/internal/models"
	"github.com/vytor/learnpulse/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository implementation
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Upsert(ctx context.Context, u models.User) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("upserting user: uid=%s, role=%s", u.UID, u.Role)

	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (uid, display_name, email, role, created_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(uid) DO UPDATE SET
    display_name = excluded.display_name,
    email = excluded.email,
    role = excluded.role
`, u.UID, u.DisplayName, u.Email, string(u.Role), utc(u.CreatedAt))
	if err != nil {
		log.Error("failed to upsert user: %v", err)
		return nil, err
	}
	return r.Get(ctx, u.UID)
}

func (r *userRepository) Get(ctx context.Context, uid string) (*models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")
	log.Debug("getting user: uid=%s", uid)

	var u models.User
	var role string
	err := r.db.QueryRowContext(ctx, `
SELECT uid, display_name, email, role, created_at FROM users WHERE uid = ?
`, uid).Scan(&u.UID, &u.DisplayName, &u.Email, &role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("user not found: uid=%s", uid)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get user: %v", err)
		return nil, err
	}
	u.Role = models.Role(role)
	return &u, nil
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	return r.list(ctx, sqlBuilder.Select("uid", "display_name", "email", "role", "created_at").From("users"))
}

func (r *userRepository) ListByRole(ctx context.Context, role models.Role, excludeUID string) ([]models.User, error) {
	query := sqlBuilder.Select("uid", "display_name", "email", "role", "created_at").
		From("users").
		Where(squirrel.Eq{"role": string(role)})
	if excludeUID != "" {
		query = query.Where(squirrel.NotEq{"uid": excludeUID})
	}
	return r.list(ctx, query)
}

func (r *userRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]models.User, error) {
	log := logger.FromContext(ctx).WithPrefix("user_repo")

	stmt, args, err := query.OrderBy("created_at ASC", "uid ASC").ToSql()
	if err != nil {
		log.Error("failed to build query: %v", err)
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		log.Error("failed to list users: %v", err)
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		var u models.User
		var role string
		if err := rows.Scan(&u.UID, &u.DisplayName, &u.Email, &role, &u.CreatedAt); err != nil {
			log.Error("failed to scan user row: %v", err)
			return nil, err
		}
		u.Role = models.Role(role)
		users = append(users, u)
	}
	log.Debug("found %d users", len(users))
	return users, rows.Err()
}
