package receipt

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/minimercado-pos/internal/domain/customer"
	"github.com/hugohenrick/minimercado-pos/internal/domain/pricing"
	"github.com/hugohenrick/minimercado-pos/internal/domain/product"
	"github.com/hugohenrick/minimercado-pos/internal/domain/sale"
	"github.com/hugohenrick/minimercado-pos/internal/infrastructure/storage"
)

func TestGenerateGravaPDFNoCaminhoDaVenda(t *testing.T) {
	store, err := storage.NewStore(&storage.Config{DataDir: t.TempDir()})
	require.NoError(t, err)

	p := &product.Product{ID: 1, Name: "Café", Price: 4.30, Tax: 0.19}
	l, err := pricing.NewLine(p, 2)
	require.NoError(t, err)

	s := sale.NewSale(&customer.Customer{ID: 1, Name: "Juan", Surname: "Pérez"})
	s.ID = 7
	s.AddLine(l)
	pricing.RecomputeTotals(s)

	path, err := NewGenerator(store).Generate(s)
	require.NoError(t, err)
	assert.Equal(t, store.InvoicePath(7), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	// Assinatura de PDF no início do arquivo.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestGenerateVendaSemCliente(t *testing.T) {
	store, err := storage.NewStore(&storage.Config{DataDir: t.TempDir()})
	require.NoError(t, err)

	s := &sale.Sale{ID: 3, CustomerID: 42}
	path, err := NewGenerator(store).Generate(s)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestGenerateVendaNil(t *testing.T) {
	store, err := storage.NewStore(&storage.Config{DataDir: t.TempDir()})
	require.NoError(t, err)

	_, err = NewGenerator(store).Generate(nil)
	assert.ErrorIs(t, err, ErrNilSale)
}
