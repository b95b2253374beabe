package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(&Config{DataDir: t.TempDir()})
	require.NoError(t, err)
	return s
}

func TestNewConfigFromEnv(t *testing.T) {
	t.Setenv("POS_DATA_DIR", "")
	assert.Equal(t, "data", NewConfigFromEnv().DataDir)

	t.Setenv("POS_DATA_DIR", "/tmp/pos-dados")
	assert.Equal(t, "/tmp/pos-dados", NewConfigFromEnv().DataDir)
}

func TestNewStoreValidaConfig(t *testing.T) {
	_, err := NewStore(nil)
	assert.ErrorIs(t, err, ErrEmptyDataDir)

	_, err = NewStore(&Config{})
	assert.ErrorIs(t, err, ErrEmptyDataDir)
}

func TestNewStoreCriaDiretorios(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "dados")
	s, err := NewStore(&Config{DataDir: dir})
	require.NoError(t, err)

	assert.Equal(t, dir, s.Dir())
	assert.DirExists(t, dir)
	assert.DirExists(t, filepath.Join(dir, InvoicesDir))
}

func TestReadLinesArquivoInexistente(t *testing.T) {
	s := newTestStore(t)

	lines, err := s.ReadLines(CustomersFile)
	require.NoError(t, err)
	assert.Nil(t, lines)
	assert.False(t, s.Exists(CustomersFile))
}

func TestWriteLinesEReadLines(t *testing.T) {
	s := newTestStore(t)

	in := []string{"1,Juan,a@b.com,123,Calle 1", "2,María,,456,"}
	require.NoError(t, s.WriteLines(CustomersFile, in))

	assert.True(t, s.Exists(CustomersFile))
	out, err := s.ReadLines(CustomersFile)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestWriteLinesReescreveOArquivoInteiro(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.WriteLines(ProductsFile, []string{"a", "b", "c"}))
	require.NoError(t, s.WriteLines(ProductsFile, []string{"x"}))

	out, err := s.ReadLines(ProductsFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, out)

	// O temporário não pode sobrar no diretório.
	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp-")
	}
}

func TestReadLinesIgnoraLinhasVaziasECR(t *testing.T) {
	s := newTestStore(t)
	raw := "1,Arroz\r\n\r\n   \n2,Leche\n"
	require.NoError(t, os.WriteFile(s.Path(ProductsFile), []byte(raw), 0o644))

	out, err := s.ReadLines(ProductsFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"1,Arroz", "2,Leche"}, out)
}

func TestInvoicePath(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, filepath.Join(s.Dir(), InvoicesDir, "Factura_12.pdf"), s.InvoicePath(12))
}
