// Package service coordena o fluxo de uma transação de venda entre os
// repositórios: validação de estoque, derivação de valores e persistência.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hugohenrick/minimercado-pos/internal/domain/customer"
	"github.com/hugohenrick/minimercado-pos/internal/domain/pricing"
	"github.com/hugohenrick/minimercado-pos/internal/domain/product"
	"github.com/hugohenrick/minimercado-pos/internal/domain/sale"
	"github.com/hugohenrick/minimercado-pos/pkg/logger"
)

var (
	ErrInsufficientStock = errors.New("estoque insuficiente para a quantidade solicitada")
	ErrLineNotFound      = errors.New("linha de venda não encontrada")
	ErrNilSale           = errors.New("venda não pode ser nil")
)

// ReceiptGenerator produz o documento de fatura de uma venda finalizada.
// Projeção de mão única: não realimenta o modelo de dados.
type ReceiptGenerator interface {
	Generate(s *sale.Sale) (string, error)
}

// SaleService aplica as regras de negócio de uma venda. As mutações validam
// antes de alterar qualquer estado: uma rejeição não deixa mudança parcial.
type SaleService struct {
	sales    sale.Repository
	products product.Repository
	receipts ReceiptGenerator
	log      logger.Logger
}

// NewSaleService cria uma nova instância de SaleService. receipts pode ser
// nil quando a geração de faturas não é desejada.
func NewSaleService(sales sale.Repository, products product.Repository, receipts ReceiptGenerator, log logger.Logger) *SaleService {
	if log == nil {
		log = logger.NopLogger{}
	}
	return &SaleService{
		sales:    sales,
		products: products,
		receipts: receipts,
		log:      log,
	}
}

// CreateSale abre uma venda vazia para o cliente e a persiste imediatamente.
func (s *SaleService) CreateSale(ctx context.Context, c *customer.Customer) (*sale.Sale, error) {
	v := sale.NewSale(c)
	pricing.RecomputeTotals(v)
	if err := s.sales.Add(ctx, v); err != nil {
		return nil, fmt.Errorf("erro ao criar venda: %w", err)
	}
	return v, nil
}

// AddItem adiciona um produto à venda. A quantidade deve ser positiva e não
// pode exceder o estoque atual; em caso de rejeição nem o estoque nem a
// sequência de linhas mudam. Após o sucesso o estoque está decrementado, os
// agregados recalculados e venda e produto persistidos.
func (s *SaleService) AddItem(ctx context.Context, v *sale.Sale, p *product.Product, quantity int) (*sale.Line, error) {
	if v == nil {
		return nil, ErrNilSale
	}
	if p == nil {
		return nil, pricing.ErrLineWithoutProduct
	}
	if quantity < 1 {
		return nil, pricing.ErrInvalidQuantity
	}
	if p.Stock < quantity {
		return nil, ErrInsufficientStock
	}

	l, err := pricing.NewLine(p, quantity)
	if err != nil {
		return nil, err
	}
	v.AddLine(l)
	pricing.RecomputeTotals(v)
	p.Stock -= quantity

	if err := s.products.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("erro ao atualizar estoque: %w", err)
	}
	if err := s.sales.Update(ctx, v); err != nil {
		return nil, fmt.Errorf("erro ao persistir venda: %w", err)
	}
	return l, nil
}

// RemoveItem exclui uma linha da venda, devolvendo ao produto exatamente a
// quantidade da linha removida, recalcula os agregados e persiste venda e
// produto.
func (s *SaleService) RemoveItem(ctx context.Context, v *sale.Sale, lineID int) error {
	if v == nil {
		return ErrNilSale
	}
	l := v.RemoveLine(lineID)
	if l == nil {
		return ErrLineNotFound
	}
	pricing.RecomputeTotals(v)
	l.Product.Stock += l.Quantity

	if err := s.products.Update(ctx, l.Product); err != nil {
		return fmt.Errorf("erro ao restaurar estoque: %w", err)
	}
	if err := s.sales.Update(ctx, v); err != nil {
		return fmt.Errorf("erro ao persistir venda: %w", err)
	}
	return nil
}

// SetItemQuantity altera a quantidade de uma linha existente, ajustando o
// estoque do produto pela diferença. Rejeita quando a diferença excede o
// estoque atual.
func (s *SaleService) SetItemQuantity(ctx context.Context, v *sale.Sale, lineID, quantity int) error {
	if v == nil {
		return ErrNilSale
	}
	l := v.FindLine(lineID)
	if l == nil {
		return ErrLineNotFound
	}
	if quantity < 1 {
		return pricing.ErrInvalidQuantity
	}
	delta := quantity - l.Quantity
	if delta > l.Product.Stock {
		return ErrInsufficientStock
	}

	if err := pricing.SetLineQuantity(l, quantity); err != nil {
		return err
	}
	pricing.RecomputeTotals(v)
	l.Product.Stock -= delta

	if err := s.products.Update(ctx, l.Product); err != nil {
		return fmt.Errorf("erro ao atualizar estoque: %w", err)
	}
	if err := s.sales.Update(ctx, v); err != nil {
		return fmt.Errorf("erro ao persistir venda: %w", err)
	}
	return nil
}

// RemoveSale exclui uma venda. O estoque dos produtos vendidos não é
// devolvido; a exclusão é um ato administrativo, não um estorno.
func (s *SaleService) RemoveSale(ctx context.Context, v *sale.Sale) error {
	if v == nil {
		return ErrNilSale
	}
	return s.sales.Remove(ctx, v)
}

// Finalize fecha a venda gerando a fatura. A partir daqui nenhum fluxo da
// aplicação volta a mutá-la. Retorna o caminho do documento gerado, ou vazio
// quando não há gerador configurado.
func (s *SaleService) Finalize(ctx context.Context, v *sale.Sale) (string, error) {
	if v == nil {
		return "", ErrNilSale
	}
	if s.receipts == nil {
		return "", nil
	}
	path, err := s.receipts.Generate(v)
	if err != nil {
		return "", fmt.Errorf("erro ao gerar fatura: %w", err)
	}
	s.log.Info("fatura gerada", "venda", v.ID, "arquivo", path)
	return path, nil
}
