package inbound

import (
	"context"

	"github.com/danudoro/supplyvault/internal/pkg/router"
	"github.com/danudoro/supplyvault/internal/vault/usecase"
)

type uc interface {
	List(ctx context.Context) (*usecase.ListOutput, error)
	Add(ctx context.Context, in usecase.AddInput) (*usecase.AddOutput, error)
	Import(ctx context.Context, in usecase.ImportInput) (*usecase.ImportOutput, error)
	Reminders(ctx context.Context) (*usecase.RemindersOutput, error)

	RevealRequest(ctx context.Context, in usecase.RevealRequestInput) error
	RevealConfirm(ctx context.Context, in usecase.RevealConfirmInput) (*usecase.RevealConfirmOutput, error)

	ModifyRequest(ctx context.Context, in usecase.ModifyRequestInput) error
	ModifyConfirm(ctx context.Context, in usecase.ModifyConfirmInput) error

	DeleteRequest(ctx context.Context) error
	DeleteConfirm(ctx context.Context, in usecase.DeleteConfirmInput) (*usecase.DeleteConfirmOutput, error)

	ExportRequest(ctx context.Context) error
	ExportConfirm(ctx context.Context, in usecase.ExportConfirmInput) (*usecase.ExportConfirmOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/api/v1/vault/credentials", end.List)
	r.POST("/api/v1/vault/credentials", end.Add)
	r.POST("/api/v1/vault/credentials/import", end.Import)
	r.GET("/api/v1/vault/reminders", end.Reminders)

	// Sensitive operations follow a request-then-confirm pattern. The
	// request leg emails a verification code; the confirm leg carries it.
	r.POST("/api/v1/vault/credentials/reveal/request", end.RevealRequest)
	r.POST("/api/v1/vault/credentials/reveal/confirm", end.RevealConfirm)

	r.POST("/api/v1/vault/credentials/modify/request", end.ModifyRequest)
	r.POST("/api/v1/vault/credentials/modify/confirm", end.ModifyConfirm)

	r.POST("/api/v1/vault/credentials/delete/request", end.DeleteRequest)
	r.POST("/api/v1/vault/credentials/delete/confirm", end.DeleteConfirm)

	r.POST("/api/v1/vault/credentials/export/request", end.ExportRequest)
	r.POST("/api/v1/vault/credentials/export/confirm", end.ExportConfirm)
}
