package customer

import (
	"context"

	"github.com/hugohenrick/minimercado-pos/pkg/notifier"
)

// Repository define a interface para operações de repositório de clientes.
// A coleção completa é mantida em memória e reescrita no arquivo a cada
// operação de mutação.
type Repository interface {
	// List retorna todos os clientes na ordem do arquivo
	List(ctx context.Context) ([]*Customer, error)

	// FindByID busca um cliente pelo ID
	FindByID(ctx context.Context, id int) (*Customer, error)

	// Add atribui um id quando ausente, anexa o cliente, persiste e notifica
	Add(ctx context.Context, c *Customer) error

	// Update substitui o cliente de mesmo id; sem efeito se o id não existe
	Update(ctx context.Context, c *Customer) error

	// Remove exclui o cliente de mesmo id, persiste e notifica
	Remove(ctx context.Context, c *Customer) error

	// SaveAll substitui a coleção inteira, persiste e notifica
	SaveAll(ctx context.Context, customers []*Customer) error

	// Subscribe registra um listener chamado após cada persistência
	Subscribe(fn func()) notifier.Handle

	// Unsubscribe remove um listener registrado
	Unsubscribe(h notifier.Handle)
}
