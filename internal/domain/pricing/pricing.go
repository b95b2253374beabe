// Package pricing concentra todo o cálculo de valores derivados do modelo:
// preço final de produto, valores de linha de venda e agregados de venda.
// As funções são puras no sentido de que não tocam persistência nem
// notificação; a camada de repositório/serviço as invoca imediatamente após
// cada mutação, de modo que os campos derivados estão sempre materializados
// e as leituras são O(1).
package pricing

import (
	"errors"

	"github.com/hugohenrick/minimercado-pos/internal/domain/product"
	"github.com/hugohenrick/minimercado-pos/internal/domain/sale"
)

var (
	ErrLineWithoutProduct = errors.New("linha de venda sem produto resolvido")
	ErrInvalidQuantity    = errors.New("quantidade deve ser positiva")
)

// FinalPrice calcula o preço unitário final de um produto:
// preço base + imposto - desconto, ambos aplicados sobre o preço base.
func FinalPrice(p *product.Product) float64 {
	return p.Price + p.Price*p.Tax - p.Price*p.Discount
}

// NewLine constrói uma linha de venda para o produto e quantidade informados,
// capturando o preço unitário final do produto neste momento e materializando
// os valores derivados.
func NewLine(p *product.Product, quantity int) (*sale.Line, error) {
	if p == nil {
		return nil, ErrLineWithoutProduct
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	l := &sale.Line{
		ProductID: p.ID,
		Product:   p,
		Quantity:  quantity,
		UnitPrice: FinalPrice(p),
	}
	if err := RecomputeLine(l); err != nil {
		return nil, err
	}
	return l, nil
}

// SetLineProduct troca o produto de uma linha, captura um novo preço unitário
// e recalcula os valores derivados.
func SetLineProduct(l *sale.Line, p *product.Product) error {
	if p == nil {
		return ErrLineWithoutProduct
	}
	l.Product = p
	l.ProductID = p.ID
	l.UnitPrice = FinalPrice(p)
	return RecomputeLine(l)
}

// SetLineQuantity altera a quantidade de uma linha e recalcula os valores
// derivados. O preço unitário capturado não muda.
func SetLineQuantity(l *sale.Line, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	l.Quantity = quantity
	return RecomputeLine(l)
}

// RecomputeLine materializa os valores derivados de uma linha a partir do
// produto referenciado e da quantidade. Os montantes usam o preço, imposto e
// desconto atuais do produto, não o preço unitário capturado.
func RecomputeLine(l *sale.Line) error {
	if l.Product == nil {
		return ErrLineWithoutProduct
	}
	l.Subtotal = l.Product.Price * float64(l.Quantity)
	l.TaxAmount = l.Subtotal * l.Product.Tax
	l.DiscountAmount = l.Subtotal * l.Product.Discount
	l.Total = l.Subtotal + l.TaxAmount - l.DiscountAmount
	return nil
}

// RecomputeTotals recalcula os quatro agregados de uma venda somando os
// valores derivados das linhas na ordem da sequência, para que o resultado
// em ponto flutuante seja reprodutível.
func RecomputeTotals(s *sale.Sale) {
	var subtotal, tax, discount, total float64
	for _, l := range s.Lines {
		subtotal += l.Subtotal
		tax += l.TaxAmount
		discount += l.DiscountAmount
		total += l.Total
	}
	s.Subtotal = subtotal
	s.TaxAmount = tax
	s.DiscountAmount = discount
	s.Total = total
}
