package inbound

import (
	"github.com/danudoro/supplyvault/internal/identity/usecase"
	"github.com/danudoro/supplyvault/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for account workflows.
type HTTPEndpoint struct {
	uc uc
}

// Register creates a new account.
// @Summary Register account
// @Description Creates a new account with a unique username and email.
// @Tags Identity
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration payload"
// @Success 200 {object} router.successResponse "Registration result"
// @Failure 409 {object} router.errorResponse "Username or email already registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/identity/register [post]
func (h *HTTPEndpoint) Register(r *router.Request) (any, error) {
	var req RegisterRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.Register(r.Context(), usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}); err != nil {
		return nil, err
	}

	return RegisterResponse{}, nil
}

// Login authenticates a user and returns an access token.
// @Summary Authenticate user
// @Description Validates credentials and returns a JWT access token.
// @Tags Identity
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Authentication result"
// @Failure 401 {object} router.errorResponse "Invalid credentials"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/identity/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{AccessToken: resp.AccessToken}, nil
}

// PasswordForgot starts the password reset flow.
// @Summary Request password reset code
// @Description Emails a verification code and returns the challenge id needed to reset the password.
// @Tags Identity
// @Accept json
// @Produce json
// @Param request body PasswordForgotRequest true "Forgot password payload"
// @Success 200 {object} router.successResponse{data=PasswordForgotResponse} "Challenge issued"
// @Failure 404 {object} router.errorResponse "Email not registered"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/identity/password/forgot [post]
func (h *HTTPEndpoint) PasswordForgot(r *router.Request) (any, error) {
	var req PasswordForgotRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.PasswordForgot(r.Context(), usecase.PasswordForgotInput{Email: req.Email})
	if err != nil {
		return nil, err
	}

	return PasswordForgotResponse{ChallengeID: resp.ChallengeID}, nil
}

// PasswordReset completes the password reset flow.
// @Summary Reset account password
// @Description Verifies the emailed code for the challenge and overwrites the account password.
// @Tags Identity
// @Accept json
// @Produce json
// @Param request body PasswordResetRequest true "Reset password payload"
// @Success 200 {object} router.successResponse "Password updated"
// @Failure 401 {object} router.errorResponse "Invalid or expired verification code"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/identity/password/reset [post]
func (h *HTTPEndpoint) PasswordReset(r *router.Request) (any, error) {
	var req PasswordResetRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordReset(r.Context(), usecase.PasswordResetInput{
		ChallengeID: req.ChallengeID,
		Code:        req.Code,
		NewPassword: req.NewPassword,
	}); err != nil {
		return nil, err
	}

	return PasswordResetResponse{}, nil
}

// Profile returns the authenticated account.
// @Summary Get profile
// @Tags Identity
// @Produce json
// @Success 200 {object} router.successResponse{data=ProfileResponse} "Profile"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /api/v1/identity/profile [get]
func (h *HTTPEndpoint) Profile(r *router.Request) (any, error) {
	resp, err := h.uc.Profile(r.Context())
	if err != nil {
		return nil, err
	}

	return ProfileResponse{
		ID:        resp.ID,
		Username:  resp.Username,
		Email:     resp.Email,
		CreatedAt: resp.CreatedAt,
	}, nil
}
