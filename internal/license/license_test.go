package license

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLicense(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "license.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_ValidLicense(t *testing.T) {
	path := writeLicense(t, "licensee: ACME\nproduct: sqpplus\nexpires: 2027-03-31\n")

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ProductSQPPlus, l.Product)
	assert.Equal(t, "SQPPlus", l.Product.String())
	assert.Equal(t, "2027-03-31", l.ExpireDate())

	assert.True(t, l.Valid(time.Date(2027, 3, 31, 23, 0, 0, 0, time.UTC)))
	assert.False(t, l.Valid(time.Date(2027, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, ErrNoLicense)
}

func TestLoad_BadDate(t *testing.T) {
	_, err := Load(writeLicense(t, "product: SQP\nexpires: soon\n"))
	assert.Error(t, err)
}

func TestCheck_UnknownProduct(t *testing.T) {
	path := writeLicense(t, "product: Enterprise\nexpires: 2099-01-01\n")

	l, err := Check(path, time.Now())
	assert.Error(t, err)
	require.NotNil(t, l)
	assert.Equal(t, ProductUnknown, l.Product)
	assert.Equal(t, "unknown", l.Product.String())
}

func TestParseProduct(t *testing.T) {
	assert.Equal(t, ProductSQP, ParseProduct("SQP"))
	assert.Equal(t, ProductSQM, ParseProduct(" sqm "))
	assert.Equal(t, ProductSQAll, ParseProduct("SQAll"))
	assert.Equal(t, ProductUnknown, ParseProduct(""))
}
