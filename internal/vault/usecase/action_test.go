package usecase

import (
	"testing"

	"github.com/danudoro/supplyvault/internal/pkg/challenge"
	"github.com/danudoro/supplyvault/internal/vault/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevealRequest(t *testing.T) {
	f := newFixture(t)
	f.repo.creds = []entity.Credential{{ID: 1, OwnerUserID: 7, SupplierName: "Acme Travel", Password: "enc:pw"}}

	require.NoError(t, f.uc.RevealRequest(authCtx(), RevealRequestInput{CredentialID: 1}))

	require.Len(t, f.ch.issued, 1)
	assert.Equal(t, "sess-1", f.ch.issued[0].session)
	assert.Equal(t, challenge.SlotAction, f.ch.issued[0].slot)
	assert.Equal(t, "user@example.com", f.ch.issued[0].email)
}

func TestRevealRequestUnknownCredential(t *testing.T) {
	f := newFixture(t)

	err := f.uc.RevealRequest(authCtx(), RevealRequestInput{CredentialID: 1})
	assert.Error(t, err)
	assert.Empty(t, f.ch.issued)
}

func TestRevealRequestOtherOwner(t *testing.T) {
	f := newFixture(t)
	f.repo.creds = []entity.Credential{{ID: 1, OwnerUserID: 99, SupplierName: "Not Yours", Password: "enc:pw"}}

	err := f.uc.RevealRequest(authCtx(), RevealRequestInput{CredentialID: 1})
	assert.Error(t, err)
	assert.Empty(t, f.ch.issued)
}

func TestRevealConfirm(t *testing.T) {
	f := newFixture(t)
	f.repo.creds = []entity.Credential{{
		ID: 1, OwnerUserID: 7,
		SupplierName: "Acme Travel", LoginID: "agent-42",
		Password: "enc:hunter2", URL: "https://portal.acme.test",
	}}

	out, err := f.uc.RevealConfirm(authCtx(), RevealConfirmInput{CredentialID: 1, Code: "123456"})
	require.NoError(t, err)
	assert.Equal(t, "Acme Travel", out.SupplierName)
	assert.Equal(t, "hunter2", out.Password)
}

func TestRevealConfirmWrongCode(t *testing.T) {
	f := newFixture(t)
	f.ch.verifyOK = false
	f.repo.creds = []entity.Credential{{ID: 1, OwnerUserID: 7, SupplierName: "Acme Travel", Password: "enc:pw"}}

	_, err := f.uc.RevealConfirm(authCtx(), RevealConfirmInput{CredentialID: 1, Code: "000000"})
	assert.Error(t, err)
}

func TestRevealConfirmExpiredChallenge(t *testing.T) {
	f := newFixture(t)
	f.ch.verifyErr = challenge.ErrNotFound
	f.repo.creds = []entity.Credential{{ID: 1, OwnerUserID: 7, SupplierName: "Acme Travel", Password: "enc:pw"}}

	_, err := f.uc.RevealConfirm(authCtx(), RevealConfirmInput{CredentialID: 1, Code: "123456"})
	assert.Error(t, err)
}

func TestModifyConfirmPassword(t *testing.T) {
	f := newFixture(t)

	err := f.uc.ModifyConfirm(authCtx(), ModifyConfirmInput{
		CredentialID: 1,
		Field:        "password",
		Value:        "newpass",
		Code:         "123456",
	})
	require.NoError(t, err)

	require.Len(t, f.repo.updates, 1)
	update := f.repo.updates[0]
	assert.Equal(t, entity.FieldPassword, update.Field)
	assert.Equal(t, "enc:newpass", update.Value)
	require.NotNil(t, update.LastReset)
	assert.Equal(t, testNow, *update.LastReset)
}

func TestModifyConfirmNonPassword(t *testing.T) {
	f := newFixture(t)

	err := f.uc.ModifyConfirm(authCtx(), ModifyConfirmInput{
		CredentialID: 1,
		Field:        "url",
		Value:        "https://new.portal.test",
		Code:         "123456",
	})
	require.NoError(t, err)

	require.Len(t, f.repo.updates, 1)
	update := f.repo.updates[0]
	assert.Equal(t, entity.FieldURL, update.Field)
	assert.Equal(t, "https://new.portal.test", update.Value)
	assert.Nil(t, update.LastReset)
}

func TestModifyConfirmUnknownField(t *testing.T) {
	f := newFixture(t)

	err := f.uc.ModifyConfirm(authCtx(), ModifyConfirmInput{
		CredentialID: 1,
		Field:        "owner_user_id",
		Value:        "1",
		Code:         "123456",
	})
	assert.Error(t, err)
	assert.Empty(t, f.repo.updates)
}

func TestDeleteConfirm(t *testing.T) {
	f := newFixture(t)
	f.repo.creds = []entity.Credential{
		{ID: 1, OwnerUserID: 7, SupplierName: "Acme Travel"},
		{ID: 2, OwnerUserID: 7, SupplierName: "Globex"},
		{ID: 99, OwnerUserID: 42, SupplierName: "Not Mine"},
	}

	out, err := f.uc.DeleteConfirm(authCtx(), DeleteConfirmInput{
		CredentialIDs: []int64{1, 2, 99},
		Code:          "123456",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Deleted)
	assert.Equal(t, []int64{1, 2, 99}, f.repo.deletedIDs)
	require.Len(t, f.repo.creds, 1)
	assert.Equal(t, int64(99), f.repo.creds[0].ID)
}

func TestDeleteConfirmOtherOwner(t *testing.T) {
	f := newFixture(t)
	f.repo.creds = []entity.Credential{
		{ID: 5, OwnerUserID: 42, SupplierName: "Acme Travel"},
		{ID: 6, OwnerUserID: 42, SupplierName: "Globex"},
	}

	out, err := f.uc.DeleteConfirm(authCtx(), DeleteConfirmInput{
		CredentialIDs: []int64{5, 6},
		Code:          "123456",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.Deleted)
	assert.Len(t, f.repo.creds, 2)
}

func TestDeleteConfirmValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.DeleteConfirm(authCtx(), DeleteConfirmInput{Code: "123456"})
	assert.Error(t, err)
	assert.Empty(t, f.repo.deletedIDs)
}

func TestDeleteConfirmWrongCode(t *testing.T) {
	f := newFixture(t)
	f.ch.verifyOK = false

	_, err := f.uc.DeleteConfirm(authCtx(), DeleteConfirmInput{
		CredentialIDs: []int64{1},
		Code:          "000000",
	})
	assert.Error(t, err)
	assert.Empty(t, f.repo.deletedIDs)
}

func TestExportConfirm(t *testing.T) {
	f := newFixture(t)
	f.repo.creds = []entity.Credential{
		{ID: 1, OwnerUserID: 7, SupplierName: "Acme Travel", Password: "enc:pw1"},
		{ID: 2, OwnerUserID: 7, SupplierName: "Globex", Password: "enc:pw2"},
	}

	out, err := f.uc.ExportConfirm(authCtx(), ExportConfirmInput{Code: "123456"})
	require.NoError(t, err)

	require.Len(t, out.Credentials, 2)
	assert.Equal(t, "pw1", out.Credentials[0].Password)
	assert.Equal(t, "pw2", out.Credentials[1].Password)
}

func TestExportRequestIssuesChallenge(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.uc.ExportRequest(authCtx()))
	require.NoError(t, f.uc.DeleteRequest(authCtx()))

	require.Len(t, f.ch.issued, 2)
	for _, issued := range f.ch.issued {
		assert.Equal(t, challenge.SlotAction, issued.slot)
	}
}
