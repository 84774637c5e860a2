package inbound

import (
	"context"

	"github.com/danudoro/supplyvault/internal/notification/usecase"
)

type uc interface {
	ConsumeUserRegistered(ctx context.Context, in usecase.ConsumeUserRegisteredInput) error
	ConsumeCredentialsImported(ctx context.Context, in usecase.ConsumeCredentialsImportedInput) error
}
