package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hugohenrick/minimercado-pos/internal/domain/pricing"
	"github.com/hugohenrick/minimercado-pos/internal/domain/sale"
	"github.com/hugohenrick/minimercado-pos/internal/infrastructure/storage"
	"github.com/hugohenrick/minimercado-pos/pkg/logger"
	"github.com/hugohenrick/minimercado-pos/pkg/notifier"
)

var ErrSaleNotFound = errors.New("venda não encontrada")

// Cabeçalho de venda: id,epochMillis,clienteId,subtotal,iva,desconto,total.
// Linha de venda: id,vendaId,produtoId,quantidade,precoUnitario,subtotalBase.
// O mínimo aceito para o cabeçalho fica um campo aquém das sete colunas
// gravadas: como só identidade, data e referências são lidas na carga (os
// valores derivados são recalculados a partir dos produtos atuais), um
// cabeçalho sem a última coluna ainda é válido.
const (
	saleHeaderFieldCount = 6
	saleLineFieldCount   = 6
)

// FileSaleRepository implementa sale.Repository sobre o par de arquivos
// ventas.csv e detalles_venta.csv. Cada escrita reescreve os dois arquivos
// para todas as vendas, mantendo-os mutuamente consistentes; não há transação
// entre eles.
type FileSaleRepository struct {
	mu       sync.Mutex
	store    *storage.Store
	log      logger.Logger
	notifier *notifier.Notifier
	sales    []*sale.Sale
}

// NewFileSaleRepository carrega as vendas resolvendo as referências de
// cliente e produto contra o estado persistido atual.
func NewFileSaleRepository(store *storage.Store, log logger.Logger) (*FileSaleRepository, error) {
	if log == nil {
		log = logger.NopLogger{}
	}
	r := &FileSaleRepository{
		store:    store,
		log:      log,
		notifier: notifier.New(log),
	}
	sales, err := r.loadSales()
	if err != nil {
		return nil, err
	}
	r.sales = sales
	return r, nil
}

// loadSales monta as vendas a partir dos dois arquivos. As referências são
// resolvidas contra os arquivos de clientes e produtos relidos do disco, não
// contra qualquer cache em memória. Um cliente pendurado deixa a referência
// nula sem falhar a carga; um produto pendurado descarta apenas aquela linha.
func (r *FileSaleRepository) loadSales() ([]*sale.Sale, error) {
	headerLines, err := r.store.ReadLines(storage.SalesFile)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar vendas: %w", err)
	}
	detailLines, err := r.store.ReadLines(storage.SaleLinesFile)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar linhas de venda: %w", err)
	}

	customers, err := loadCustomers(r.store, r.log)
	if err != nil {
		return nil, err
	}
	products, err := loadProducts(r.store, r.log)
	if err != nil {
		return nil, err
	}

	byID := make(map[int]*sale.Sale, len(headerLines))
	for _, line := range headerLines {
		s, err := parseSaleHeader(line)
		if err != nil {
			r.log.Warn("registro de venda ignorado", "linha", line, "erro", err)
			continue
		}
		for _, c := range customers {
			if c.ID == s.CustomerID {
				s.Customer = c
				break
			}
		}
		if s.Customer == nil {
			r.log.Warn("cliente não resolvido para a venda", "venda", s.ID, "cliente", s.CustomerID)
		}
		byID[s.ID] = s
	}

	for _, line := range detailLines {
		rec, err := parseSaleLineRecord(line)
		if err != nil {
			r.log.Warn("registro de linha de venda ignorado", "linha", line, "erro", err)
			continue
		}
		s, ok := byID[rec.saleID]
		if !ok {
			r.log.Warn("linha de venda órfã descartada", "venda", rec.saleID, "linha", rec.id)
			continue
		}
		var found bool
		for _, p := range products {
			if p.ID == rec.productID {
				// O preço unitário e os valores derivados vêm do produto
				// atual, não dos campos gravados.
				l, err := pricing.NewLine(p, rec.quantity)
				if err != nil {
					r.log.Warn("linha de venda inválida descartada", "linha", line, "erro", err)
				} else {
					l.ID = rec.id
					s.AddLine(l)
				}
				found = true
				break
			}
		}
		if !found {
			r.log.Warn("produto não resolvido; linha de venda descartada",
				"venda", rec.saleID, "produto", rec.productID)
		}
	}

	sales := make([]*sale.Sale, 0, len(byID))
	for _, s := range byID {
		pricing.RecomputeTotals(s)
		sales = append(sales, s)
	}
	sort.Slice(sales, func(i, j int) bool { return sales[i].ID < sales[j].ID })
	return sales, nil
}

func parseSaleHeader(line string) (*sale.Sale, error) {
	fields := strings.Split(line, ",")
	if len(fields) < saleHeaderFieldCount {
		return nil, fmt.Errorf("esperados ao menos %d campos, encontrados %d", saleHeaderFieldCount, len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("id inválido: %w", err)
	}
	millis, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("data inválida: %w", err)
	}
	customerID, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("cliente inválido: %w", err)
	}
	return &sale.Sale{
		ID:         id,
		CustomerID: customerID,
		CreatedAt:  time.UnixMilli(millis),
		Lines:      make([]*sale.Line, 0, 4),
	}, nil
}

type saleLineRecord struct {
	id        int
	saleID    int
	productID int
	quantity  int
}

func parseSaleLineRecord(line string) (*saleLineRecord, error) {
	fields := strings.Split(line, ",")
	if len(fields) < saleLineFieldCount {
		return nil, fmt.Errorf("esperados ao menos %d campos, encontrados %d", saleLineFieldCount, len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("id inválido: %w", err)
	}
	saleID, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, fmt.Errorf("venda inválida: %w", err)
	}
	productID, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("produto inválido: %w", err)
	}
	quantity, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("quantidade inválida: %w", err)
	}
	return &saleLineRecord{id: id, saleID: saleID, productID: productID, quantity: quantity}, nil
}

func formatSaleHeader(s *sale.Sale) string {
	customerID := s.CustomerID
	if s.Customer != nil {
		customerID = s.Customer.ID
	}
	return fmt.Sprintf("%d,%d,%d,%.2f,%.2f,%.2f,%.2f",
		s.ID, s.CreatedAt.UnixMilli(), customerID,
		s.Subtotal, s.TaxAmount, s.DiscountAmount, s.Total)
}

func formatSaleLineRecord(saleID int, l *sale.Line) string {
	return fmt.Sprintf("%d,%d,%d,%d,%.2f,%.2f",
		l.ID, saleID, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal)
}

// List implementa sale.Repository.List
func (r *FileSaleRepository) List(ctx context.Context) ([]*sale.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*sale.Sale, len(r.sales))
	copy(out, r.sales)
	return out, nil
}

// FindByID implementa sale.Repository.FindByID
func (r *FileSaleRepository) FindByID(ctx context.Context, id int) (*sale.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.sales {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, ErrSaleNotFound
}

// Add implementa sale.Repository.Add
func (r *FileSaleRepository) Add(ctx context.Context, s *sale.Sale) error {
	if s == nil {
		return ErrNilEntity
	}
	r.mu.Lock()
	if s.ID == 0 {
		s.ID = nextID(r.sales, func(e *sale.Sale) int { return e.ID })
	}
	r.sales = append(r.sales, s)
	err := r.persistLocked()
	r.mu.Unlock()

	if err != nil {
		return err
	}
	r.notifier.Notify()
	return nil
}

// Update implementa sale.Repository.Update. Sem efeito quando o id não
// existe na coleção.
func (r *FileSaleRepository) Update(ctx context.Context, s *sale.Sale) error {
	if s == nil {
		return ErrNilEntity
	}
	r.mu.Lock()
	for i, existing := range r.sales {
		if existing.ID == s.ID {
			r.sales[i] = s
			err := r.persistLocked()
			r.mu.Unlock()

			if err != nil {
				return err
			}
			r.notifier.Notify()
			return nil
		}
	}
	r.mu.Unlock()

	r.log.Debug("atualização ignorada: venda inexistente", "id", s.ID)
	return nil
}

// Remove implementa sale.Repository.Remove. Sem efeito quando o id não
// existe na coleção.
func (r *FileSaleRepository) Remove(ctx context.Context, s *sale.Sale) error {
	if s == nil {
		return ErrNilEntity
	}
	r.mu.Lock()
	for i, existing := range r.sales {
		if existing.ID == s.ID {
			r.sales = append(r.sales[:i], r.sales[i+1:]...)
			err := r.persistLocked()
			r.mu.Unlock()

			if err != nil {
				return err
			}
			r.notifier.Notify()
			return nil
		}
	}
	r.mu.Unlock()
	return nil
}

// SaveAll implementa sale.Repository.SaveAll
func (r *FileSaleRepository) SaveAll(ctx context.Context, sales []*sale.Sale) error {
	r.mu.Lock()
	r.sales = make([]*sale.Sale, len(sales))
	copy(r.sales, sales)
	err := r.persistLocked()
	r.mu.Unlock()

	if err != nil {
		return err
	}
	r.notifier.Notify()
	return nil
}

// Subscribe implementa sale.Repository.Subscribe
func (r *FileSaleRepository) Subscribe(fn func()) notifier.Handle {
	return r.notifier.Subscribe(fn)
}

// Unsubscribe implementa sale.Repository.Unsubscribe
func (r *FileSaleRepository) Unsubscribe(h notifier.Handle) {
	r.notifier.Unsubscribe(h)
}

// allocateLineIDsLocked atribui ids às linhas ainda sem id. As linhas formam
// um tipo de entidade próprio: o próximo id é o maior id de linha entre todas
// as vendas + 1.
func (r *FileSaleRepository) allocateLineIDsLocked() {
	max := 0
	for _, s := range r.sales {
		for _, l := range s.Lines {
			if l.ID > max {
				max = l.ID
			}
		}
	}
	for _, s := range r.sales {
		for _, l := range s.Lines {
			if l.ID == 0 {
				max++
				l.ID = max
			}
		}
	}
}

// persistLocked reescreve os dois arquivos para todas as vendas. Chamado com
// o mutex adquirido; os listeners são notificados pelo chamador após a
// liberação do mutex. Uma queda entre as duas gravações pode dessincronizar
// os arquivos; a carga tolera linhas órfãs descartando-as.
func (r *FileSaleRepository) persistLocked() error {
	r.allocateLineIDsLocked()

	headers := make([]string, 0, len(r.sales))
	details := make([]string, 0, len(r.sales)*2)
	for _, s := range r.sales {
		headers = append(headers, formatSaleHeader(s))
		for _, l := range s.Lines {
			details = append(details, formatSaleLineRecord(s.ID, l))
		}
	}
	if err := r.store.WriteLines(storage.SalesFile, headers); err != nil {
		return fmt.Errorf("erro ao gravar vendas: %w", err)
	}
	if err := r.store.WriteLines(storage.SaleLinesFile, details); err != nil {
		return fmt.Errorf("erro ao gravar linhas de venda: %w", err)
	}
	return nil
}
