package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImport(t *testing.T) {
	f := newFixture(t)
	csv := strings.Join([]string{
		"Supplier Name,Office ID,User ID,Password,URL",
		"Acme Travel,HQ-1,agent-42,hunter2,https://portal.acme.test",
		"Globex,,globex-user,secret,",
		",,no-supplier,oops,",
		"No Password,HQ-2,np-user,,",
	}, "\n")

	out, err := f.uc.Import(authCtx(), ImportInput{
		File:     strings.NewReader(csv),
		FileName: "suppliers.csv",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, out.Imported)
	assert.Equal(t, 2, out.Skipped)

	require.Len(t, f.repo.bulkCreated, 2)
	first := f.repo.bulkCreated[0]
	assert.Equal(t, int64(7), first.OwnerUserID)
	assert.Equal(t, "Acme Travel", first.SupplierName)
	assert.Equal(t, "HQ-1", first.OfficeID)
	assert.Equal(t, "agent-42", first.LoginID)
	assert.Equal(t, "enc:hunter2", first.Password)
	require.NotNil(t, first.LastReset)
	assert.Equal(t, testNow, *first.LastReset)

	require.Len(t, f.msg.events, 1)
	event := f.msg.events[0]
	assert.Equal(t, int64(7), event.UserID)
	assert.Equal(t, 2, event.Imported)
	assert.Equal(t, 2, event.Skipped)
	assert.Equal(t, "suppliers.csv", event.FileName)
}

func TestImportHeaderCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	csv := "supplier name,password\nAcme Travel,hunter2\n"

	out, err := f.uc.Import(authCtx(), ImportInput{
		File:     strings.NewReader(csv),
		FileName: "suppliers.csv",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Imported)
	assert.Equal(t, 0, out.Skipped)
}

func TestImportMissingColumn(t *testing.T) {
	f := newFixture(t)
	csv := "Supplier Name,Office ID\nAcme Travel,HQ-1\n"

	_, err := f.uc.Import(authCtx(), ImportInput{
		File:     strings.NewReader(csv),
		FileName: "suppliers.csv",
	})
	assert.Error(t, err)
	assert.Empty(t, f.repo.bulkCreated)
	assert.Empty(t, f.msg.events)
}

func TestImportEmptyFile(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Import(authCtx(), ImportInput{
		File:     strings.NewReader(""),
		FileName: "empty.csv",
	})
	assert.Error(t, err)
}

func TestImportOnlySkippedRowsPublishes(t *testing.T) {
	f := newFixture(t)
	csv := "Supplier Name,Password\n,missing-name\n"

	out, err := f.uc.Import(authCtx(), ImportInput{
		File:     strings.NewReader(csv),
		FileName: "suppliers.csv",
	})
	require.NoError(t, err)

	assert.Equal(t, 0, out.Imported)
	assert.Equal(t, 1, out.Skipped)
	assert.Empty(t, f.repo.bulkCreated)
	require.Len(t, f.msg.events, 1)
}
