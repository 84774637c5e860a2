package inbound

import (
	"github.com/danudoro/supplyvault/internal/pkg/router"
	"github.com/danudoro/supplyvault/internal/vault/usecase"
)

// HTTPEndpoint exposes HTTP handlers for credential workflows.
type HTTPEndpoint struct {
	uc uc
}

// List returns the caller's credentials with masked passwords.
// @Summary List credentials
// @Tags Vault
// @Produce json
// @Success 200 {object} router.successResponse{data=ListResponse} "Credentials"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /api/v1/vault/credentials [get]
func (h *HTTPEndpoint) List(r *router.Request) (any, error) {
	resp, err := h.uc.List(r.Context())
	if err != nil {
		return nil, err
	}

	items := make([]CredentialItem, 0, len(resp.Credentials))
	for _, c := range resp.Credentials {
		items = append(items, CredentialItem{
			ID:           c.ID,
			SupplierName: c.SupplierName,
			OfficeID:     c.OfficeID,
			LoginID:      c.LoginID,
			Password:     c.Password,
			URL:          c.URL,
			DateCreated:  c.DateCreated,
			LastReset:    c.LastReset,
		})
	}

	return ListResponse{Credentials: items}, nil
}

// Add stores a new supplier credential.
// @Summary Add credential
// @Tags Vault
// @Accept json
// @Produce json
// @Param request body AddRequest true "Credential payload"
// @Success 200 {object} router.successResponse{data=AddResponse} "Created credential id"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/vault/credentials [post]
func (h *HTTPEndpoint) Add(r *router.Request) (any, error) {
	var req AddRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Add(r.Context(), usecase.AddInput{
		SupplierName: req.SupplierName,
		OfficeID:     req.OfficeID,
		LoginID:      req.LoginID,
		Password:     req.Password,
		URL:          req.URL,
	})
	if err != nil {
		return nil, err
	}

	return AddResponse{ID: resp.ID}, nil
}

// Import bulk-adds credentials from an uploaded CSV file.
// @Summary Import credentials from CSV
// @Tags Vault
// @Accept mpfd
// @Produce json
// @Param file formData file true "CSV file with Supplier Name, Office ID, User ID, Password, URL columns"
// @Success 200 {object} router.successResponse{data=ImportResponse} "Import summary"
// @Failure 422 {object} router.errorResponse "Malformed CSV"
// @Router /api/v1/vault/credentials/import [post]
func (h *HTTPEndpoint) Import(r *router.Request) (any, error) {
	file, err := r.StreamSingleFile("file")
	if err != nil {
		return nil, err
	}
	defer file.Close()

	fileName := "import.csv"
	if named, ok := file.(interface{ FileName() string }); ok && named.FileName() != "" {
		fileName = named.FileName()
	}

	resp, err := h.uc.Import(r.Context(), usecase.ImportInput{File: file, FileName: fileName})
	if err != nil {
		return nil, err
	}

	return ImportResponse{Imported: resp.Imported, Skipped: resp.Skipped}, nil
}

// Reminders returns credentials whose reset deadline is within seven days.
// @Summary List reset reminders
// @Tags Vault
// @Produce json
// @Success 200 {object} router.successResponse{data=RemindersResponse} "Reminders"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /api/v1/vault/reminders [get]
func (h *HTTPEndpoint) Reminders(r *router.Request) (any, error) {
	resp, err := h.uc.Reminders(r.Context())
	if err != nil {
		return nil, err
	}

	items := make([]ReminderItem, 0, len(resp.Reminders))
	for _, rem := range resp.Reminders {
		items = append(items, ReminderItem{
			CredentialID: rem.CredentialID,
			SupplierName: rem.SupplierName,
			ExpiresAt:    rem.ExpiresAt,
		})
	}

	return RemindersResponse{Reminders: items}, nil
}

// RevealRequest emails a verification code for revealing a password.
// @Summary Request reveal code
// @Tags Vault
// @Accept json
// @Produce json
// @Param request body RevealRequestRequest true "Credential to reveal"
// @Success 200 {object} router.successResponse "Code sent"
// @Failure 404 {object} router.errorResponse "Credential not found"
// @Router /api/v1/vault/credentials/reveal/request [post]
func (h *HTTPEndpoint) RevealRequest(r *router.Request) (any, error) {
	var req RevealRequestRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.RevealRequest(r.Context(), usecase.RevealRequestInput{
		CredentialID: req.CredentialID,
	}); err != nil {
		return nil, err
	}

	return ChallengeResponse{}, nil
}

// RevealConfirm verifies the code and returns the clear-text password.
// @Summary Reveal credential password
// @Tags Vault
// @Accept json
// @Produce json
// @Param request body RevealConfirmRequest true "Credential id and verification code"
// @Success 200 {object} router.successResponse{data=RevealConfirmResponse} "Unmasked credential"
// @Failure 401 {object} router.errorResponse "Invalid or expired verification code"
// @Failure 404 {object} router.errorResponse "Credential not found"
// @Router /api/v1/vault/credentials/reveal/confirm [post]
func (h *HTTPEndpoint) RevealConfirm(r *router.Request) (any, error) {
	var req RevealConfirmRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RevealConfirm(r.Context(), usecase.RevealConfirmInput{
		CredentialID: req.CredentialID,
		Code:         req.Code,
	})
	if err != nil {
		return nil, err
	}

	return RevealConfirmResponse{
		SupplierName: resp.SupplierName,
		LoginID:      resp.LoginID,
		Password:     resp.Password,
		URL:          resp.URL,
	}, nil
}

// ModifyRequest emails a verification code for updating a credential field.
// @Summary Request modify code
// @Tags Vault
// @Accept json
// @Produce json
// @Param request body ModifyRequestRequest true "Credential to modify"
// @Success 200 {object} router.successResponse "Code sent"
// @Failure 404 {object} router.errorResponse "Credential not found"
// @Router /api/v1/vault/credentials/modify/request [post]
func (h *HTTPEndpoint) ModifyRequest(r *router.Request) (any, error) {
	var req ModifyRequestRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ModifyRequest(r.Context(), usecase.ModifyRequestInput{
		CredentialID: req.CredentialID,
	}); err != nil {
		return nil, err
	}

	return ChallengeResponse{}, nil
}

// ModifyConfirm verifies the code and updates a single credential field.
// @Summary Update credential field
// @Tags Vault
// @Accept json
// @Produce json
// @Param request body ModifyConfirmRequest true "Field, value and verification code"
// @Success 200 {object} router.successResponse "Credential updated"
// @Failure 401 {object} router.errorResponse "Invalid or expired verification code"
// @Failure 404 {object} router.errorResponse "Credential not found"
// @Failure 422 {object} router.errorResponse "Unknown field"
// @Router /api/v1/vault/credentials/modify/confirm [post]
func (h *HTTPEndpoint) ModifyConfirm(r *router.Request) (any, error) {
	var req ModifyConfirmRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.ModifyConfirm(r.Context(), usecase.ModifyConfirmInput{
		CredentialID: req.CredentialID,
		Field:        req.Field,
		Value:        req.Value,
		Code:         req.Code,
	}); err != nil {
		return nil, err
	}

	return ModifyConfirmResponse{}, nil
}

// DeleteRequest emails a verification code for deleting credentials.
// @Summary Request delete code
// @Tags Vault
// @Produce json
// @Success 200 {object} router.successResponse "Code sent"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /api/v1/vault/credentials/delete/request [post]
func (h *HTTPEndpoint) DeleteRequest(r *router.Request) (any, error) {
	if err := h.uc.DeleteRequest(r.Context()); err != nil {
		return nil, err
	}

	return ChallengeResponse{}, nil
}

// DeleteConfirm verifies the code and deletes the listed credentials.
// @Summary Delete credentials
// @Tags Vault
// @Accept json
// @Produce json
// @Param request body DeleteConfirmRequest true "Credential ids and verification code"
// @Success 200 {object} router.successResponse{data=DeleteConfirmResponse} "Delete summary"
// @Failure 401 {object} router.errorResponse "Invalid or expired verification code"
// @Router /api/v1/vault/credentials/delete/confirm [post]
func (h *HTTPEndpoint) DeleteConfirm(r *router.Request) (any, error) {
	var req DeleteConfirmRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.DeleteConfirm(r.Context(), usecase.DeleteConfirmInput{
		CredentialIDs: req.CredentialIDs,
		Code:          req.Code,
	})
	if err != nil {
		return nil, err
	}

	return DeleteConfirmResponse{Deleted: resp.Deleted}, nil
}

// ExportRequest emails a verification code for exporting all credentials.
// @Summary Request export code
// @Tags Vault
// @Produce json
// @Success 200 {object} router.successResponse "Code sent"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /api/v1/vault/credentials/export/request [post]
func (h *HTTPEndpoint) ExportRequest(r *router.Request) (any, error) {
	if err := h.uc.ExportRequest(r.Context()); err != nil {
		return nil, err
	}

	return ChallengeResponse{}, nil
}

// ExportConfirm verifies the code and returns every credential unmasked.
// @Summary Export credentials
// @Tags Vault
// @Accept json
// @Produce json
// @Param request body ExportConfirmRequest true "Verification code"
// @Success 200 {object} router.successResponse{data=ExportConfirmResponse} "All credentials with clear-text passwords"
// @Failure 401 {object} router.errorResponse "Invalid or expired verification code"
// @Router /api/v1/vault/credentials/export/confirm [post]
func (h *HTTPEndpoint) ExportConfirm(r *router.Request) (any, error) {
	var req ExportConfirmRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ExportConfirm(r.Context(), usecase.ExportConfirmInput{Code: req.Code})
	if err != nil {
		return nil, err
	}

	creds := make([]ExportCredential, 0, len(resp.Credentials))
	for _, c := range resp.Credentials {
		creds = append(creds, ExportCredential{
			ID:           c.ID,
			SupplierName: c.SupplierName,
			OfficeID:     c.OfficeID,
			LoginID:      c.LoginID,
			Password:     c.Password,
			URL:          c.URL,
		})
	}

	return ExportConfirmResponse{Credentials: creds}, nil
}
