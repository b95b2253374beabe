package sale

import (
	"context"

	"github.com/hugohenrick/minimercado-pos/pkg/notifier"
)

// Repository define a interface para operações de repositório de vendas.
// Cada escrita reescreve os dois arquivos correlacionados (cabeçalhos e
// linhas) para todas as vendas, mantendo-os sincronizados.
type Repository interface {
	// List retorna todas as vendas em ordem crescente de id
	List(ctx context.Context) ([]*Sale, error)

	// FindByID busca uma venda pelo ID
	FindByID(ctx context.Context, id int) (*Sale, error)

	// Add atribui ids ausentes (venda e linhas), anexa, persiste e notifica
	Add(ctx context.Context, s *Sale) error

	// Update substitui a venda de mesmo id; sem efeito se o id não existe
	Update(ctx context.Context, s *Sale) error

	// Remove exclui a venda de mesmo id, persiste e notifica
	Remove(ctx context.Context, s *Sale) error

	// SaveAll substitui a coleção inteira, persiste e notifica
	SaveAll(ctx context.Context, sales []*Sale) error

	// Subscribe registra um listener chamado após cada persistência
	Subscribe(fn func()) notifier.Handle

	// Unsubscribe remove um listener registrado
	Unsubscribe(h notifier.Handle)
}
