package db

import (
	"context"

	"github.com/danudoro/supplyvault/internal/identity/entity"
	"github.com/danudoro/supplyvault/internal/pkg/goerror"
)

const userColumns = "id, username, email, password, created_at"

func (s *DB) scanUser(row interface{ Scan(dest ...any) error }) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.Password, &u.CreatedAt); err != nil {
		return nil, s.mapError(err)
	}

	return &u, nil
}

func (s *DB) GetUserByUsername(ctx context.Context, username string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByUsername")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE username = $1", username)

	u, err := s.scanUser(row)
	return u, err
}

func (s *DB) GetUserByEmail(ctx context.Context, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByEmail")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE email = $1", email)

	u, err := s.scanUser(row)
	return u, err
}

func (s *DB) GetUserByID(ctx context.Context, id int64) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByID")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx, "SELECT "+userColumns+" FROM users WHERE id = $1", id)

	u, err := s.scanUser(row)
	return u, err
}

func (s *DB) GetUserByUsernameOrEmail(ctx context.Context, username, email string) (_ *entity.User, err error) {
	ctx, span := s.startSpan(ctx, "GetUserByUsernameOrEmail")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = $1 OR email = $2 LIMIT 1",
		username, email,
	)

	u, err := s.scanUser(row)
	return u, err
}

func (s *DB) CreateUser(ctx context.Context, in entity.NewUser) (err error) {
	ctx, span := s.startSpan(ctx, "CreateUser")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		"INSERT INTO users (id, username, email, password) VALUES ($1, $2, $3, $4)",
		in.ID, in.Username, in.Email, in.Password,
	)

	err = s.mapError(err)
	return err
}

func (s *DB) UpdateUserPassword(ctx context.Context, id int64, password string) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateUserPassword")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx, "UPDATE users SET password = $1 WHERE id = $2", password, id)
	if err != nil {
		err = s.mapError(err)
		return err
	}

	if tag.RowsAffected() == 0 {
		err = goerror.ErrNotFound
		return err
	}

	return nil
}
