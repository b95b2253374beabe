package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/hugohenrick/minimercado-pos/internal/domain/customer"
	"github.com/hugohenrick/minimercado-pos/internal/infrastructure/storage"
	"github.com/hugohenrick/minimercado-pos/pkg/logger"
	"github.com/hugohenrick/minimercado-pos/pkg/notifier"
)

// Erros específicos dos repositórios
var (
	ErrCustomerNotFound = errors.New("cliente não encontrado")
	ErrNilEntity        = errors.New("entidade não pode ser nil")
)

// Registro de cliente: id,nome,email,telefone,endereço. Vírgulas embutidas
// nos campos não são escapadas; limitação aceita do formato.
const customerFieldCount = 5

// FileCustomerRepository implementa customer.Repository sobre o arquivo
// clientes.csv, reescrevendo-o por inteiro a cada mutação.
type FileCustomerRepository struct {
	mu        sync.Mutex
	store     *storage.Store
	log       logger.Logger
	notifier  *notifier.Notifier
	customers []*customer.Customer
}

// NewFileCustomerRepository carrega a coleção do arquivo e retorna o
// repositório pronto para uso.
func NewFileCustomerRepository(store *storage.Store, log logger.Logger) (*FileCustomerRepository, error) {
	if log == nil {
		log = logger.NopLogger{}
	}
	r := &FileCustomerRepository{
		store:    store,
		log:      log,
		notifier: notifier.New(log),
	}
	customers, err := loadCustomers(store, log)
	if err != nil {
		return nil, err
	}
	r.customers = customers
	return r, nil
}

// loadCustomers lê e decodifica clientes.csv. Linhas malformadas são puladas
// com aviso no log; o restante da carga continua.
func loadCustomers(store *storage.Store, log logger.Logger) ([]*customer.Customer, error) {
	lines, err := store.ReadLines(storage.CustomersFile)
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar clientes: %w", err)
	}
	customers := make([]*customer.Customer, 0, len(lines))
	for _, line := range lines {
		c, err := parseCustomerRecord(line)
		if err != nil {
			log.Warn("registro de cliente ignorado", "linha", line, "erro", err)
			continue
		}
		customers = append(customers, c)
	}
	return customers, nil
}

func parseCustomerRecord(line string) (*customer.Customer, error) {
	fields := strings.Split(line, ",")
	if len(fields) < customerFieldCount {
		return nil, fmt.Errorf("esperados %d campos, encontrados %d", customerFieldCount, len(fields))
	}
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("id inválido: %w", err)
	}
	return &customer.Customer{
		ID:      id,
		Name:    fields[1],
		Email:   fields[2],
		Phone:   fields[3],
		Address: fields[4],
	}, nil
}

func formatCustomerRecord(c *customer.Customer) string {
	return fmt.Sprintf("%d,%s,%s,%s,%s", c.ID, c.Name, c.Email, c.Phone, c.Address)
}

// List implementa customer.Repository.List
func (r *FileCustomerRepository) List(ctx context.Context) ([]*customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*customer.Customer, len(r.customers))
	copy(out, r.customers)
	return out, nil
}

// FindByID implementa customer.Repository.FindByID
func (r *FileCustomerRepository) FindByID(ctx context.Context, id int) (*customer.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, ErrCustomerNotFound
}

// Add implementa customer.Repository.Add
func (r *FileCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	if c == nil {
		return ErrNilEntity
	}
	r.mu.Lock()
	if c.ID == 0 {
		c.ID = nextID(r.customers, func(e *customer.Customer) int { return e.ID })
	}
	r.customers = append(r.customers, c)
	err := r.persistLocked()
	r.mu.Unlock()

	if err != nil {
		return err
	}
	r.notifier.Notify()
	return nil
}

// Update implementa customer.Repository.Update. Sem efeito quando o id não
// existe na coleção.
func (r *FileCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	if c == nil {
		return ErrNilEntity
	}
	r.mu.Lock()
	for i, existing := range r.customers {
		if existing.ID == c.ID {
			r.customers[i] = c
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

	r.log.Debug("atualização ignorada: cliente inexistente", "id", c.ID)
	return nil
}

// Remove implementa customer.Repository.Remove. Sem efeito quando o id não
// existe na coleção.
func (r *FileCustomerRepository) Remove(ctx context.Context, c *customer.Customer) error {
	if c == nil {
		return ErrNilEntity
	}
	r.mu.Lock()
	for i, existing := range r.customers {
		if existing.ID == c.ID {
			r.customers = append(r.customers[:i], r.customers[i+1:]...)
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

// SaveAll implementa customer.Repository.SaveAll
func (r *FileCustomerRepository) SaveAll(ctx context.Context, customers []*customer.Customer) error {
	r.mu.Lock()
	r.customers = make([]*customer.Customer, len(customers))
	copy(r.customers, customers)
	err := r.persistLocked()
	r.mu.Unlock()

	if err != nil {
		return err
	}
	r.notifier.Notify()
	return nil
}

// Subscribe implementa customer.Repository.Subscribe
func (r *FileCustomerRepository) Subscribe(fn func()) notifier.Handle {
	return r.notifier.Subscribe(fn)
}

// Unsubscribe implementa customer.Repository.Unsubscribe
func (r *FileCustomerRepository) Unsubscribe(h notifier.Handle) {
	r.notifier.Unsubscribe(h)
}

// persistLocked reescreve clientes.csv com a coleção inteira. Chamado com o
// mutex adquirido; a notificação dos listeners acontece no chamador após a
// liberação do mutex, para que um listener possa ler de volta o repositório.
// Em caso de falha de E/S o estado em memória já mutado é mantido; lacuna de
// consistência conhecida entre memória e disco.
func (r *FileCustomerRepository) persistLocked() error {
	lines := make([]string, 0, len(r.customers))
	for _, c := range r.customers {
		lines = append(lines, formatCustomerRecord(c))
	}
	if err := r.store.WriteLines(storage.CustomersFile, lines); err != nil {
		return fmt.Errorf("erro ao gravar clientes: %w", err)
	}
	return nil
}
