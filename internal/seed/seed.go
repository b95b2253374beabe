// Package seed grava os dados padrão de primeira execução quando os arquivos
// de clientes ou produtos ainda não existem.
package seed

import (
	"context"
	"fmt"

	"github.com/hugohenrick/minimercado-pos/internal/domain/customer"
	"github.com/hugohenrick/minimercado-pos/internal/domain/product"
	"github.com/hugohenrick/minimercado-pos/internal/infrastructure/storage"
)

// Needed informa se a carga inicial deve ser executada.
func Needed(store *storage.Store) bool {
	return !store.Exists(storage.CustomersFile) || !store.Exists(storage.ProductsFile)
}

// Run grava as coleções padrão através dos repositórios informados.
func Run(ctx context.Context, customers customer.Repository, products product.Repository) error {
	if err := customers.SaveAll(ctx, DefaultCustomers()); err != nil {
		return fmt.Errorf("erro ao gravar clientes padrão: %w", err)
	}
	if err := products.SaveAll(ctx, DefaultProducts()); err != nil {
		return fmt.Errorf("erro ao gravar produtos padrão: %w", err)
	}
	return nil
}

// DefaultCustomers retorna os clientes da carga inicial.
func DefaultCustomers() []*customer.Customer {
	return []*customer.Customer{
		{ID: 1, Name: "Juan Pérez", Email: "juan@email.com", Phone: "123456789", Address: "Calle Principal 123"},
		{ID: 2, Name: "María García", Email: "maria@email.com", Phone: "987654321", Address: "Avenida Central 456"},
		{ID: 3, Name: "Carlos López", Email: "carlos@email.com", Phone: "456789123", Address: "Plaza Mayor 789"},
	}
}

// DefaultProducts retorna os produtos da carga inicial.
func DefaultProducts() []*product.Product {
	return []*product.Product{
		{ID: 1, Name: "Arroz", Description: "Arroz blanco premium", Price: 2.50, Tax: 0.19, Discount: 0.0, Stock: 100},
		{ID: 2, Name: "Leche", Description: "Leche entera 1L", Price: 1.80, Tax: 0.19, Discount: 0.0, Stock: 50},
		{ID: 3, Name: "Pan", Description: "Pan blanco fresco", Price: 1.20, Tax: 0.19, Discount: 0.0, Stock: 30},
	}
}
