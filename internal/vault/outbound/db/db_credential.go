package db

import (
	"context"
	"fmt"

	"github.com/danudoro/supplyvault/internal/pkg/goerror"
	"github.com/danudoro/supplyvault/internal/vault/entity"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const credentialColumns = "id, owner_user_id, supplier_name, " +
	"COALESCE(office_id, ''), COALESCE(login_id, ''), password, COALESCE(url, ''), " +
	"date_created, last_reset"

func (s *DB) scanCredential(row interface{ Scan(dest ...any) error }) (*entity.Credential, error) {
	var c entity.Credential
	err := row.Scan(
		&c.ID, &c.OwnerUserID, &c.SupplierName,
		&c.OfficeID, &c.LoginID, &c.Password, &c.URL,
		&c.DateCreated, &c.LastReset,
	)
	if err != nil {
		return nil, s.mapError(err)
	}

	return &c, nil
}

func (s *DB) ListByOwner(ctx context.Context, ownerID int64) (_ []entity.Credential, err error) {
	ctx, span := s.startSpan(ctx, "ListByOwner")
	defer func() { s.endSpan(span, err) }()

	rows, err := s.conn.Query(ctx,
		"SELECT "+credentialColumns+" FROM supplier_credentials WHERE owner_user_id = $1 ORDER BY date_created DESC, id DESC",
		ownerID,
	)
	if err != nil {
		err = s.mapError(err)
		return nil, err
	}
	defer rows.Close()

	var creds []entity.Credential
	for rows.Next() {
		c, errScan := s.scanCredential(rows)
		if errScan != nil {
			err = errScan
			return nil, err
		}
		creds = append(creds, *c)
	}
	if err = s.mapError(rows.Err()); err != nil {
		return nil, err
	}

	return creds, nil
}

func (s *DB) GetByIDOwner(ctx context.Context, id, ownerID int64) (_ *entity.Credential, err error) {
	ctx, span := s.startSpan(ctx, "GetByIDOwner")
	defer func() { s.endSpan(span, err) }()

	row := s.conn.QueryRow(ctx,
		"SELECT "+credentialColumns+" FROM supplier_credentials WHERE id = $1 AND owner_user_id = $2",
		id, ownerID,
	)

	c, err := s.scanCredential(row)
	return c, err
}

func (s *DB) Create(ctx context.Context, in entity.NewCredential) (err error) {
	ctx, span := s.startSpan(ctx, "Create")
	defer func() { s.endSpan(span, err) }()

	_, err = s.conn.Exec(ctx,
		"INSERT INTO supplier_credentials "+
			"(id, owner_user_id, supplier_name, office_id, login_id, password, url, date_created, last_reset) "+
			"VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
		in.ID, in.OwnerUserID, in.SupplierName, in.OfficeID, in.LoginID, in.Password, in.URL, in.DateCreated, in.LastReset,
	)

	err = s.mapError(err)
	return err
}

func (s *DB) BulkCreate(ctx context.Context, in []entity.NewCredential) (_ int, err error) {
	ctx, span := s.startSpan(ctx, "BulkCreate")
	defer func() { s.endSpan(span, err) }()

	copied, err := s.conn.CopyFrom(ctx,
		pgx.Identifier{"supplier_credentials"},
		[]string{"id", "owner_user_id", "supplier_name", "office_id", "login_id", "password", "url", "date_created", "last_reset"},
		pgx.CopyFromSlice(len(in), func(i int) ([]any, error) {
			c := in[i]
			return []any{c.ID, c.OwnerUserID, c.SupplierName, c.OfficeID, c.LoginID, c.Password, c.URL, c.DateCreated, c.LastReset}, nil
		}),
	)
	if err != nil {
		err = s.mapError(err)
		return 0, err
	}

	return int(copied), nil
}

func (s *DB) UpdateField(ctx context.Context, in entity.FieldUpdate) (err error) {
	ctx, span := s.startSpan(ctx, "UpdateField")
	defer func() { s.endSpan(span, err) }()

	var column string
	switch in.Field {
	case entity.FieldSupplierName:
		column = "supplier_name"
	case entity.FieldOfficeID:
		column = "office_id"
	case entity.FieldLoginID:
		column = "login_id"
	case entity.FieldPassword:
		column = "password"
	case entity.FieldURL:
		column = "url"
	default:
		err = fmt.Errorf("unsupported credential field: %s", in.Field)
		return err
	}

	var tag pgconn.CommandTag
	if in.LastReset != nil {
		tag, err = s.conn.Exec(ctx,
			"UPDATE supplier_credentials SET "+column+" = $1, last_reset = $2 WHERE id = $3 AND owner_user_id = $4",
			in.Value, in.LastReset, in.ID, in.OwnerUserID,
		)
	} else {
		tag, err = s.conn.Exec(ctx,
			"UPDATE supplier_credentials SET "+column+" = $1 WHERE id = $2 AND owner_user_id = $3",
			in.Value, in.ID, in.OwnerUserID,
		)
	}
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

func (s *DB) DeleteByIDsOwner(ctx context.Context, ids []int64, ownerID int64) (_ int64, err error) {
	ctx, span := s.startSpan(ctx, "DeleteByIDsOwner")
	defer func() { s.endSpan(span, err) }()

	tag, err := s.conn.Exec(ctx,
		"DELETE FROM supplier_credentials WHERE id = ANY($1) AND owner_user_id = $2",
		ids, ownerID,
	)
	if err != nil {
		err = s.mapError(err)
		return 0, err
	}

	return tag.RowsAffected(), nil
}
