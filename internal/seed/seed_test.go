package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/minimercado-pos/internal/adapter/repository"
	"github.com/hugohenrick/minimercado-pos/internal/infrastructure/storage"
)

func TestRunGravaAsColecoesPadrao(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewStore(&storage.Config{DataDir: t.TempDir()})
	require.NoError(t, err)
	require.True(t, Needed(store))

	cr, err := repository.NewFileCustomerRepository(store, nil)
	require.NoError(t, err)
	pr, err := repository.NewFileProductRepository(store, nil)
	require.NoError(t, err)

	require.NoError(t, Run(ctx, cr, pr))
	assert.False(t, Needed(store))

	// Os dados semeados sobrevivem a uma recarga.
	cr2, err := repository.NewFileCustomerRepository(store, nil)
	require.NoError(t, err)
	customers, err := cr2.List(ctx)
	require.NoError(t, err)
	require.Len(t, customers, 3)
	assert.Equal(t, "Juan Pérez", customers[0].Name)

	pr2, err := repository.NewFileProductRepository(store, nil)
	require.NoError(t, err)
	products, err := pr2.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, "Arroz", products[0].Name)
	assert.InDelta(t, 0.19, products[0].Tax, 1e-9)
}

func TestNeededComApenasUmArquivo(t *testing.T) {
	store, err := storage.NewStore(&storage.Config{DataDir: t.TempDir()})
	require.NoError(t, err)

	require.NoError(t, store.WriteLines(storage.CustomersFile, nil))
	assert.True(t, Needed(store))

	require.NoError(t, store.WriteLines(storage.ProductsFile, nil))
	assert.False(t, Needed(store))
}
