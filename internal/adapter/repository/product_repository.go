package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/hugohenrick/minimercado-pos/internal/domain/product"
	"github.com/hugohenrick/minimercado-pos/internal/infrastructure/storage"
	"github.com/hugohenrick/minimercado-pos/pkg/logger"
	"github.com/hugohenrick/minimercado-pos/pkg/notifier"
)

var ErrProductNotFound = errors.New("produto não encontrado")

// Registro de produto: id,nome,descrição,preço,iva%,desconto%,estoque.
// Imposto e desconto são gravados como porcentagens (ex.: 19.00) e
// convertidos de/para frações na carga e gravação.
const productFieldCount = 7

// FileProductRepository implementa product.Repository sobre o arquivo
// productos.csv, reescrevendo-o por inteiro a cada mutação.
type FileProductRepository struct {
	mu       sync.Mutex
	store    *storage.Store
	log      logger.Logger
	notifier *notifier.Notifier
	products []*product.Product
}

// NewFileProductRepository carrega a coleção do arquivo e retorna o
// repositório pronto para uso.
func NewFileProductRepository(store *storage.Store, log logger.Logger) (*FileProductRepository, error) {
	if log == nil {
		log = logger.NopLogger{}
	}
	r := &FileProductRepository{
		store:    store,
		log:      log,
		notifier: notifier.New(log),
	}
	products, err := loadProducts(store, log)
	if err != nil {
		return nil, err
	}
	r.products = products
	return r, nil
}

// loadProducts lê e decodifica productos.csv, pulando linhas malformadas
// com aviso no log.
func loadProducts(store *storage.Store, log logger.Logger) ([]*product.Product, error) {
	lines, err := store.ReadLines(storage.ProductsFile)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar produtos: %w", err)
	}
	products := make([]*product.Product, 0, len(lines))
	for _, line := range lines {
		p, err := parseProductRecord(line)
		if err != nil {
			log.Warn("registro de produto ignorado", "linha", line, "erro", err)
			continue
		}
		products = append(products, p)
	}
	return products, nil
}

func parseProductRecord(line string) (*product.Product, error) {
	fields := strings.Split(line, ",")
	if len(fields) < productFieldCount {
		return nil, fmt.Errorf("esperados %d campos, encontrados %d", productFieldCount, len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("id inválido: %w", err)
	}
	price, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return nil, fmt.Errorf("preço inválido: %w", err)
	}
	taxPercent, err := strconv.ParseFloat(fields[4], 64)
	if err != nil {
		return nil, fmt.Errorf("iva inválido: %w", err)
	}
	discountPercent, err := strconv.ParseFloat(fields[5], 64)
	if err != nil {
		return nil, fmt.Errorf("desconto inválido: %w", err)
	}
	stock, err := strconv.Atoi(fields[6])
	if err != nil {
		return nil, fmt.Errorf("estoque inválido: %w", err)
	}
	return &product.Product{
		ID:          id,
		Name:        fields[1],
		Description: fields[2],
		Price:       price,
		Tax:         taxPercent / 100.0,
		Discount:    discountPercent / 100.0,
		Stock:       stock,
	}, nil
}

func formatProductRecord(p *product.Product) string {
	return fmt.Sprintf("%d,%s,%s,%.2f,%.2f,%.2f,%d",
		p.ID, p.Name, p.Description, p.Price,
		p.Tax*100.0, p.Discount*100.0, p.Stock)
}

// List implementa product.Repository.List
func (r *FileProductRepository) List(ctx context.Context) ([]*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*product.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// FindByID implementa product.Repository.FindByID
func (r *FileProductRepository) FindByID(ctx context.Context, id int) (*product.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrProductNotFound
}

// Add implementa product.Repository.Add
func (r *FileProductRepository) Add(ctx context.Context, p *product.Product) error {
	if p == nil {
		return ErrNilEntity
	}
	r.mu.Lock()
	if p.ID == 0 {
		p.ID = nextID(r.products, func(e *product.Product) int { return e.ID })
	}
	r.products = append(r.products, p)
	err := r.persistLocked()
	r.mu.Unlock()

	if err != nil {
		return err
	}
	r.notifier.Notify()
	return nil
}

// Update implementa product.Repository.Update. Sem efeito quando o id não
// existe na coleção.
func (r *FileProductRepository) Update(ctx context.Context, p *product.Product) error {
	if p == nil {
		return ErrNilEntity
	}
	r.mu.Lock()
	for i, existing := range r.products {
		if existing.ID == p.ID {
			r.products[i] = p
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

	r.log.Debug("atualização ignorada: produto inexistente", "id", p.ID)
	return nil
}

// Remove implementa product.Repository.Remove. Sem efeito quando o id não
// existe na coleção.
func (r *FileProductRepository) Remove(ctx context.Context, p *product.Product) error {
	if p == nil {
		return ErrNilEntity
	}
	r.mu.Lock()
	for i, existing := range r.products {
		if existing.ID == p.ID {
			r.products = append(r.products[:i], r.products[i+1:]...)
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

// SaveAll implementa product.Repository.SaveAll
func (r *FileProductRepository) SaveAll(ctx context.Context, products []*product.Product) error {
	r.mu.Lock()
	r.products = make([]*product.Product, len(products))
	copy(r.products, products)
	err := r.persistLocked()
	r.mu.Unlock()

	if err != nil {
		return err
	}
	r.notifier.Notify()
	return nil
}

// Subscribe implementa product.Repository.Subscribe
func (r *FileProductRepository) Subscribe(fn func()) notifier.Handle {
	return r.notifier.Subscribe(fn)
}

// Unsubscribe implementa product.Repository.Unsubscribe
func (r *FileProductRepository) Unsubscribe(h notifier.Handle) {
	r.notifier.Unsubscribe(h)
}

// persistLocked reescreve productos.csv com a coleção inteira. Chamado com o
// mutex adquirido; os listeners são notificados pelo chamador após a
// liberação do mutex.
func (r *FileProductRepository) persistLocked() error {
	lines := make([]string, 0, len(r.products))
	for _, p := range r.products {
		lines = append(lines, formatProductRecord(p))
	}
	if err := r.store.WriteLines(storage.ProductsFile, lines); err != nil {
		return fmt.Errorf("erro ao gravar produtos: %w", err)
	}
	return nil
}
