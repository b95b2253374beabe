package sale

import (
	"time"

	"github.com/hugohenrick/minimercado-pos/internal/domain/customer"
	"github.com/hugohenrick/minimercado-pos/internal/domain/product"
)

// Line representa um item individual de uma venda. Uma linha pertence a
// exatamente uma venda e referencia exatamente um produto. UnitPrice é o
// preço final do produto capturado no momento em que a linha foi criada ou o
// produto foi trocado; os demais valores derivados são recalculados pelo
// motor de preços a cada mutação de quantidade ou de produto.
type Line struct {
	ID             int              `json:"id"`              // Identificador único (0 = ainda não atribuído)
	ProductID      int              `json:"product_id"`      // Id do produto referenciado
	Product        *product.Product `json:"product"`         // Produto resolvido (nunca nil em uma linha válida)
	Quantity       int              `json:"quantity"`        // Quantidade vendida (sempre positiva)
	UnitPrice      float64          `json:"unit_price"`      // Preço unitário capturado na venda
	Subtotal       float64          `json:"subtotal"`        // Preço base * quantidade
	TaxAmount      float64          `json:"tax_amount"`      // Imposto sobre o subtotal base
	DiscountAmount float64          `json:"discount_amount"` // Desconto sobre o subtotal base
	Total          float64          `json:"total"`           // Subtotal + imposto - desconto
}

// Sale representa uma venda. A ordem das linhas é a ordem de inserção e os
// quatro agregados são sempre as somas dos valores derivados das linhas,
// recalculados após qualquer mutação da sequência.
type Sale struct {
	ID             int                `json:"id"`              // Identificador único (0 = ainda não atribuído)
	CustomerID     int                `json:"customer_id"`     // Id do cliente no momento da venda
	Customer       *customer.Customer `json:"customer"`        // Cliente resolvido (nil se a referência pendurou)
	CreatedAt      time.Time          `json:"created_at"`      // Data e hora da venda
	Lines          []*Line            `json:"lines"`           // Itens na ordem de inserção
	Subtotal       float64            `json:"subtotal"`        // Soma dos subtotais base
	TaxAmount      float64            `json:"tax_amount"`      // Soma dos montantes de imposto
	DiscountAmount float64            `json:"discount_amount"` // Soma dos montantes de desconto
	Total          float64            `json:"total"`           // Soma dos totais das linhas
}

// NewSale cria uma venda vazia para o cliente informado com a data atual.
func NewSale(c *customer.Customer) *Sale {
	s := &Sale{
		CreatedAt: time.Now(),
		Lines:     make([]*Line, 0, 4),
	}
	s.SetCustomer(c)
	return s
}

// SetCustomer troca a referência de cliente da venda. Com nil a venda fica
// sem cliente e o id é zerado; uma referência pendurada vinda do disco é
// diferente e mantém o id (a carga atribui CustomerID diretamente).
func (s *Sale) SetCustomer(c *customer.Customer) {
	s.Customer = c
	if c == nil {
		s.CustomerID = 0
		return
	}
	s.CustomerID = c.ID
}

// AddLine anexa uma linha ao final da sequência. O chamador é responsável
// por recalcular os agregados em seguida.
func (s *Sale) AddLine(l *Line) {
	s.Lines = append(s.Lines, l)
}

// RemoveLine exclui a linha de mesmo id preservando a ordem das demais e a
// retorna; retorna nil quando o id não existe. O chamador é responsável por
// recalcular os agregados em seguida.
func (s *Sale) RemoveLine(id int) *Line {
	for i, l := range s.Lines {
		if l.ID == id {
			s.Lines = append(s.Lines[:i], s.Lines[i+1:]...)
			return l
		}
	}
	return nil
}

// FindLine busca uma linha pelo id.
func (s *Sale) FindLine(id int) *Line {
	for _, l := range s.Lines {
		if l.ID == id {
			return l
		}
	}
	return nil
}

// Equal compara vendas por identidade de id.
func (s *Sale) Equal(other *Sale) bool {
	if s == nil || other == nil {
		return false
	}
	return s.ID == other.ID
}
