package product

import "errors"

var (
	ErrEmptyName     = errors.New("nome não pode ser vazio")
	ErrNegativePrice = errors.New("preço não pode ser negativo")
	ErrNegativeStock = errors.New("estoque não pode ser negativo")
)

// Taxas padrão aplicadas a produtos novos.
const (
	DefaultTax      = 0.19
	DefaultDiscount = 0.0
)

// Product representa um produto do catálogo.
// Tax e Discount são frações (0.19 = 19%); no arquivo são gravados como
// porcentagens. O código externo existe somente em memória.
type Product struct {
	ID          int     `json:"id"`          // Identificador único (0 = ainda não atribuído)
	Code        string  `json:"code"`        // Código de barras ou código externo
	Name        string  `json:"name"`        // Nome
	Description string  `json:"description"` // Descrição detalhada
	Price       float64 `json:"price"`       // Preço base
	Tax         float64 `json:"tax"`         // Fração de imposto aplicável
	Discount    float64 `json:"discount"`    // Fração de desconto aplicável
	Stock       int     `json:"stock"`       // Quantidade em estoque
}

// NewProduct cria um novo produto com as taxas padrão e sem id atribuído.
func NewProduct(code, name, description string, price float64, stock int) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if price < 0 {
		return nil, ErrNegativePrice
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}
	return &Product{
		Code:        code,
		Name:        name,
		Description: description,
		Price:       price,
		Tax:         DefaultTax,
		Discount:    DefaultDiscount,
		Stock:       stock,
	}, nil
}

// Equal compara produtos por identidade de id.
func (p *Product) Equal(other *Product) bool {
	if p == nil || other == nil {
		return false
	}
	return p.ID == other.ID
}
