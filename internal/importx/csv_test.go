package importx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	data := `service_name,office_id,user_id,password,site_url
mail,HQ-1,u1,s1,http://mail
bank,,u2,s2,http://bank
`
	rows, err := Read(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "mail", rows[0].ServiceName)
	assert.Equal(t, "HQ-1", rows[0].OfficeID)
	assert.Equal(t, "u1", rows[0].UserID)
	assert.Equal(t, "s1", rows[0].Secret)
	assert.Equal(t, "http://mail", rows[0].SiteURL)

	assert.Equal(t, "bank", rows[1].ServiceName)
	assert.Empty(t, rows[1].OfficeID)
}

func TestRead_LegacyHeaders(t *testing.T) {
	data := `Supplier_Name,User_ID,Password
mail,u1,s1
`
	rows, err := Read(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "mail", rows[0].ServiceName)
	assert.Equal(t, "s1", rows[0].Secret)
}

func TestRead_MissingRequiredColumn(t *testing.T) {
	data := `service_name,site_url
mail,http://mail
`
	_, err := Read(strings.NewReader(data))
	assert.Error(t, err)
}

func TestRead_EmptyInput(t *testing.T) {
	_, err := Read(strings.NewReader(""))
	assert.Error(t, err)
}

func TestRead_RowWithBlankFieldsIsKept(t *testing.T) {
	// Shape problems are the vault's call to skip, not the adapter's to drop.
	data := `service_name,user_id,password
,u1,s1
`
	rows, err := Read(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].ServiceName)
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rows.csv")
	require.NoError(t, os.WriteFile(path, []byte("service_name,user_id,password\nmail,u1,s1\n"), 0o600))

	rows, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
