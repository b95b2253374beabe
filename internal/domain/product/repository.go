package product

import (
	"context"

	"github.com/hugohenrick/minimercado-pos/pkg/notifier"
)

// Repository define a interface para operações de repositório de produtos.
type Repository interface {
	// List retorna todos os produtos na ordem do arquivo
	List(ctx context.Context) ([]*Product, error)

	// FindByID busca um produto pelo ID
	FindByID(ctx context.Context, id int) (*Product, error)

	// Add atribui um id quando ausente, anexa o produto, persiste e notifica
	Add(ctx context.Context, p *Product) error

	// Update substitui o produto de mesmo id; sem efeito se o id não existe
	Update(ctx context.Context, p *Product) error

	// Remove exclui o produto de mesmo id, persiste e notifica
	Remove(ctx context.Context, p *Product) error

	// SaveAll substitui a coleção inteira, persiste e notifica
	SaveAll(ctx context.Context, products []*Product) error

	// Subscribe registra um listener chamado após cada persistência
	Subscribe(fn func()) notifier.Handle

	// Unsubscribe remove um listener registrado
	Unsubscribe(h notifier.Handle)
}
