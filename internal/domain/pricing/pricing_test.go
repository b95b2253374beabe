package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/minimercado-pos/internal/domain/product"
	"github.com/hugohenrick/minimercado-pos/internal/domain/sale"
)

func TestFinalPrice(t *testing.T) {
	p := &product.Product{Price: 100.0, Tax: 0.19, Discount: 0.05}

	got := FinalPrice(p)
	want := 100.0 + 100.0*0.19 - 100.0*0.05

	assert.InDelta(t, want, got, 1e-9)
	// Função pura: reavaliar não muda o resultado.
	assert.Equal(t, got, FinalPrice(p))
}

func TestFinalPriceSemImpostoNemDesconto(t *testing.T) {
	p := &product.Product{Price: 7.30}
	assert.InDelta(t, 7.30, FinalPrice(p), 1e-9)
}

func TestNewLineCalculaValoresDerivados(t *testing.T) {
	p := &product.Product{ID: 1, Name: "Arroz", Price: 2.50, Tax: 0.19, Discount: 0.0, Stock: 10}

	l, err := NewLine(p, 4)
	require.NoError(t, err)

	assert.Equal(t, 1, l.ProductID)
	assert.Equal(t, 4, l.Quantity)
	assert.InDelta(t, 10.00, l.Subtotal, 1e-9)
	assert.InDelta(t, 1.90, l.TaxAmount, 1e-9)
	assert.InDelta(t, 0.00, l.DiscountAmount, 1e-9)
	assert.InDelta(t, 11.90, l.Total, 1e-9)
	assert.InDelta(t, FinalPrice(p), l.UnitPrice, 1e-9)
}

func TestNewLineRejeitaProdutoNil(t *testing.T) {
	_, err := NewLine(nil, 1)
	assert.ErrorIs(t, err, ErrLineWithoutProduct)
}

func TestNewLineRejeitaQuantidadeInvalida(t *testing.T) {
	p := &product.Product{ID: 1, Price: 1.0}
	for _, qty := range []int{0, -3} {
		_, err := NewLine(p, qty)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
}

func TestSetLineQuantityRecalculaSemTrocarPrecoUnitario(t *testing.T) {
	p := &product.Product{ID: 1, Price: 2.00, Tax: 0.10}
	l, err := NewLine(p, 1)
	require.NoError(t, err)
	captured := l.UnitPrice

	// Reajuste de preço após a captura não muda o preço unitário da linha.
	p.Price = 3.00
	require.NoError(t, SetLineQuantity(l, 5))

	assert.Equal(t, 5, l.Quantity)
	assert.InDelta(t, captured, l.UnitPrice, 1e-9)
	// Os montantes derivados seguem o produto atual.
	assert.InDelta(t, 15.00, l.Subtotal, 1e-9)
}

func TestSetLineProductCapturaNovoPrecoUnitario(t *testing.T) {
	p1 := &product.Product{ID: 1, Price: 2.00, Tax: 0.19}
	p2 := &product.Product{ID: 2, Price: 5.00, Tax: 0.19, Discount: 0.10}
	l, err := NewLine(p1, 2)
	require.NoError(t, err)

	require.NoError(t, SetLineProduct(l, p2))

	assert.Equal(t, 2, l.ProductID)
	assert.InDelta(t, FinalPrice(p2), l.UnitPrice, 1e-9)
	assert.InDelta(t, 10.00, l.Subtotal, 1e-9)

	assert.ErrorIs(t, SetLineProduct(l, nil), ErrLineWithoutProduct)
}

func TestRecomputeLineRejeitaLinhaSemProduto(t *testing.T) {
	l := &sale.Line{Quantity: 1}
	assert.ErrorIs(t, RecomputeLine(l), ErrLineWithoutProduct)
}

func TestRecomputeTotalsSomaAsLinhasEmOrdem(t *testing.T) {
	arroz := &product.Product{ID: 1, Price: 2.50, Tax: 0.19}
	pan := &product.Product{ID: 2, Price: 5.00}

	s := &sale.Sale{}
	l1, err := NewLine(arroz, 4) // 10.00 + 1.90 = 11.90
	require.NoError(t, err)
	l2, err := NewLine(pan, 1) // 5.00
	require.NoError(t, err)
	s.AddLine(l1)
	s.AddLine(l2)

	RecomputeTotals(s)

	assert.InDelta(t, 16.90, s.Total, 1e-9)
	// O subtotal da venda soma apenas os subtotais base.
	assert.InDelta(t, 15.00, s.Subtotal, 1e-9)
	assert.InDelta(t, 1.90, s.TaxAmount, 1e-9)
	assert.InDelta(t, 0.00, s.DiscountAmount, 1e-9)
}

func TestRecomputeTotalsAposMutacoes(t *testing.T) {
	p := &product.Product{ID: 1, Price: 3.00, Tax: 0.19, Discount: 0.05}
	s := &sale.Sale{}

	for i := 1; i <= 5; i++ {
		l, err := NewLine(p, i)
		require.NoError(t, err)
		l.ID = i
		s.AddLine(l)
		RecomputeTotals(s)
	}
	s.RemoveLine(3)
	RecomputeTotals(s)

	var want float64
	for _, l := range s.Lines {
		want += l.Total
	}
	assert.InDelta(t, want, s.Total, 1e-9)
}

func TestRecomputeTotalsVendaVazia(t *testing.T) {
	s := &sale.Sale{Subtotal: 9, TaxAmount: 9, DiscountAmount: 9, Total: 9}
	RecomputeTotals(s)

	assert.Zero(t, s.Subtotal)
	assert.Zero(t, s.TaxAmount)
	assert.Zero(t, s.DiscountAmount)
	assert.Zero(t, s.Total)
}
