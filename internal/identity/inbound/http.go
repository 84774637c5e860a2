package inbound

import (
	"context"

	"github.com/danudoro/supplyvault/internal/identity/usecase"
	"github.com/danudoro/supplyvault/internal/pkg/router"
)

type uc interface {
	Register(ctx context.Context, in usecase.RegisterInput) error
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)

	PasswordForgot(ctx context.Context, in usecase.PasswordForgotInput) (*usecase.PasswordForgotOutput, error)
	PasswordReset(ctx context.Context, in usecase.PasswordResetInput) error

	Profile(ctx context.Context) (*usecase.ProfileOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/api/v1/identity/register", end.Register)
	r.POST("/api/v1/identity/login", end.Login)

	// Password Management
	r.POST("/api/v1/identity/password/forgot", end.PasswordForgot)
	r.POST("/api/v1/identity/password/reset", end.PasswordReset)

	// User Profile (need authenticated)
	r.GET("/api/v1/identity/profile", end.Profile)
}
