package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/danudoro/supplyvault/internal/pkg/goerror"
	"github.com/danudoro/supplyvault/internal/pkg/storage"
	"github.com/danudoro/supplyvault/internal/vault/entity"
	"github.com/sethvargo/go-retry"
)

const importMaxFileSize = 10 << 20 // 10 MiB

type ImportInput struct {
	File     io.Reader
	FileName string
}

type ImportOutput struct {
	Imported int
	Skipped  int
}

// Import bulk-adds credentials from a CSV upload. Rows without a supplier name
// or password are skipped, not rejected. The raw upload is archived to object
// storage and a summary event is published.
func (s *Usecase) Import(ctx context.Context, in ImportInput) (*ImportOutput, error) {
	ctx, span := s.startSpan(ctx, "Import")
	defer span.End()

	clm, err := s.authenticated(ctx)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(io.LimitReader(in.File, importMaxFileSize+1))
	if err != nil {
		slog.ErrorContext(ctx, "failed to read import upload", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewInvalidFormat("could not read uploaded file")
	}
	if len(raw) > importMaxFileSize {
		return nil, goerror.NewInvalidFormat("uploaded file is too large")
	}

	rows, skipped, err := s.parseCredentialCSV(raw)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	creds := make([]entity.NewCredential, 0, len(rows))
	for _, row := range rows {
		stored, err := s.secret.Encode(row.password)
		if err != nil {
			slog.ErrorContext(ctx, "failed to encode credential password", "user_id", clm.UserID, "error", err)
			return nil, goerror.NewServer(err)
		}

		creds = append(creds, entity.NewCredential{
			ID:           s.uid.Generate(),
			OwnerUserID:  clm.UserID,
			SupplierName: row.supplierName,
			OfficeID:     row.officeID,
			LoginID:      row.loginID,
			Password:     stored,
			URL:          row.url,
			DateCreated:  now,
			LastReset:    &now,
		})
	}

	imported := 0
	if len(creds) > 0 {
		imported, err = s.repoDB.BulkCreate(ctx, creds)
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo bulk create credentials", "user_id", clm.UserID, "error", err)
			return nil, goerror.NewServer(err)
		}
	}

	s.archiveImport(ctx, clm.UserID, in.FileName, raw)

	if err := s.repoMessaging.PublishCredentialsImported(ctx, CredentialsImportedEvent{
		UserID:   clm.UserID,
		Email:    clm.UserEmail,
		Imported: imported,
		Skipped:  skipped,
		FileName: in.FileName,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish credentials imported", "user_id", clm.UserID, "error", err)
	}

	return &ImportOutput{Imported: imported, Skipped: skipped}, nil
}

type csvRow struct {
	supplierName string
	officeID     string
	loginID      string
	password     string
	url          string
}

func (s *Usecase) parseCredentialCSV(raw []byte) ([]csvRow, int, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, goerror.NewInvalidFormat("uploaded file is empty")
	}
	if err != nil {
		return nil, 0, goerror.NewInvalidFormat("uploaded file is not valid CSV")
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, col := range []string{"supplier name", "password"} {
		if _, ok := index[col]; !ok {
			return nil, 0, goerror.NewInvalidFormat("missing CSV column: " + col)
		}
	}

	cell := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var rows []csvRow
	skipped := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, goerror.NewInvalidFormat("uploaded file is not valid CSV")
		}

		row := csvRow{
			supplierName: cell(record, "supplier name"),
			officeID:     cell(record, "office id"),
			loginID:      cell(record, "user id"),
			password:     cell(record, "password"),
			url:          cell(record, "url"),
		}

		if row.supplierName == "" || row.password == "" {
			skipped++
			continue
		}

		rows = append(rows, row)
	}

	return rows, skipped, nil
}

// archiveImport keeps the raw upload in object storage for audit. Failure to
// archive does not fail the import.
func (s *Usecase) archiveImport(ctx context.Context, userID int64, fileName string, raw []byte) {
	bucket := s.cfg.GetString("modules.vault.import_bucket")
	if bucket == "" {
		return
	}

	key := "imports/" + strconv.FormatInt(userID, 10) + "/" +
		s.clock.Now().UTC().Format("20060102T150405Z") + "_" + fileName

	backoff := retry.WithMaxRetries(3, retry.NewExponential(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		_, err := s.storage.PutObject(ctx, bucket, key, bytes.NewReader(raw), storage.PutOptions{
			Size:        int64(len(raw)),
			ContentType: "text/csv",
		})
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		slog.WarnContext(ctx, "failed to archive import upload", "user_id", userID, "key", key, "error", err)
	}
}
