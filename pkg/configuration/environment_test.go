package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConfiguration_LoadDefaults(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("LOG_PATH", filepath.Join(tmp, "app.log"))

	c := &Configuration{}
	require.NoError(t, c.load(nil))
	t.Cleanup(c.Unload)

	require.Equal(t, int64(10485760), c.BulkImport.MaxUploadSize)
	require.Equal(t, 5000, c.BulkImport.MaxRows)
	require.Equal(t, 2*time.Minute, c.BulkImport.Timeout)
	require.Equal(t, "EMP", c.EmployeeCode.Prefix)
	require.Equal(t, 5, c.EmployeeCode.Padding)
	require.Equal(t, "X-Tenant-ID", c.TenantIDHeader)
	require.Equal(t, "localhost:3200", c.SocketAddress)
}

func TestConfiguration_LoadOverrides(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("LOG_PATH", filepath.Join(tmp, "app.log"))
	t.Setenv("EMPLOYEE_CODE_PREFIX", "STAFF")
	t.Setenv("BULK_IMPORT_MAX_ROWS", "100")
	t.Setenv("GO_APP_ENV", Production)
	t.Setenv("PORT", "8080")

	c := &Configuration{}
	require.NoError(t, c.load(nil))
	t.Cleanup(c.Unload)

	require.Equal(t, "STAFF", c.EmployeeCode.Prefix)
	require.Equal(t, 100, c.BulkImport.MaxRows)
	require.Equal(t, ":8080", c.SocketAddress)
}

func TestConfiguration_RejectsInvalidPadding(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("LOG_PATH", filepath.Join(tmp, "app.log"))
	t.Setenv("EMPLOYEE_CODE_PADDING", "0")

	c := &Configuration{}
	require.Error(t, c.load(nil))
}

func TestBulkImportOptions_Validate(t *testing.T) {
	opts := BulkImportOptions{MaxUploadSize: 1, MaxRows: 1, Timeout: time.Second}
	require.NoError(t, opts.Validate())

	opts.MaxRows = 0
	require.Error(t, opts.Validate())
}

func TestLoadEnv_ReadsExistingFiles(t *testing.T) {
	tmp := t.TempDir()
	envFile := filepath.Join(tmp, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("HRGATE_TEST_ENV_LOAD=ok\n"), 0o644))
	_ = os.Unsetenv("HRGATE_TEST_ENV_LOAD")

	n, err := LoadEnv([]string{envFile, filepath.Join(tmp, ".env.local")})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "ok", os.Getenv("HRGATE_TEST_ENV_LOAD"))
	t.Cleanup(func() { _ = os.Unsetenv("HRGATE_TEST_ENV_LOAD") })
}
