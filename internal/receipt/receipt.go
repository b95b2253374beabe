// Package receipt gera o documento de fatura em PDF de uma venda finalizada.
// É uma projeção de mão única sobre o modelo: lê a venda e seus valores
// derivados e nunca os altera.
package receipt

import (
	"errors"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/hugohenrick/minimercado-pos/internal/domain/sale"
	"github.com/hugohenrick/minimercado-pos/internal/infrastructure/storage"
)

var ErrNilSale = errors.New("venda não pode ser nil")

// Generator grava faturas no diretório de faturas do Store.
type Generator struct {
	store *storage.Store
}

// NewGenerator cria uma nova instância de Generator.
func NewGenerator(store *storage.Store) *Generator {
	return &Generator{store: store}
}

// Generate produz facturas/Factura_<id>.pdf para a venda e retorna o caminho
// do arquivo gerado. Os textos do documento seguem o vocabulário dos arquivos
// de dados.
func (g *Generator) Generate(s *sale.Sale) (string, error) {
	if s == nil {
		return "", ErrNilSale
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("Factura No. %d", s.ID)), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(0, 7, tr("Fecha: "+s.CreatedAt.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, tr("Cliente: "+customerName(s)), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	widths := []float64{80, 25, 40, 45}
	headers := []string{"Producto", "Cantidad", "Precio Unitario", "Subtotal"}
	pdf.SetFont("Helvetica", "B", 12)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, tr(h), "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 12)
	for _, l := range s.Lines {
		pdf.CellFormat(widths[0], 8, tr(l.Product.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 8, fmt.Sprintf("%d", l.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 8, fmt.Sprintf("%.2f", l.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 8, fmt.Sprintf("%.2f", l.Total), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(5)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, fmt.Sprintf("Subtotal: %.2f", s.Subtotal), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("IVA: %.2f", s.TaxAmount), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Descuento: %.2f", s.DiscountAmount), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Total: %.2f", s.Total), "", 1, "L", false, 0, "")

	path := g.store.InvoicePath(s.ID)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("erro ao gravar fatura: %w", err)
	}
	return path, nil
}

func customerName(s *sale.Sale) string {
	if s.Customer == nil {
		return fmt.Sprintf("(cliente %d no registrado)", s.CustomerID)
	}
	return s.Customer.DisplayName()
}
