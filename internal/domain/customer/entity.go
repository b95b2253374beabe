package customer

import "errors"

var (
	ErrEmptyName = errors.New("nome não pode ser vazio")
)

// Customer representa um cliente do minimercado.
// Apenas id, nome, email, telefone e endereço são persistidos; sobrenome e
// documento existem somente em memória durante a sessão.
type Customer struct {
	ID       int    `json:"id"`       // Identificador único (0 = ainda não atribuído)
	Name     string `json:"name"`     // Nome
	Surname  string `json:"surname"`  // Sobrenome
	Document string `json:"document"` // Documento de identidade
	Phone    string `json:"phone"`    // Telefone de contato
	Email    string `json:"email"`    // Email
	Address  string `json:"address"`  // Endereço físico
}

// NewCustomer cria um novo cliente ainda sem id atribuído.
// O id definitivo é atribuído pelo repositório na primeira persistência.
func NewCustomer(name, surname, document, phone, email, address string) (*Customer, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Customer{
		Name:     name,
		Surname:  surname,
		Document: document,
		Phone:    phone,
		Email:    email,
		Address:  address,
	}, nil
}

// Equal compara clientes por identidade: dois clientes são iguais
// se e somente se os ids coincidem.
func (c *Customer) Equal(other *Customer) bool {
	if c == nil || other == nil {
		return false
	}
	return c.ID == other.ID
}

// DisplayName retorna o nome de exibição usado na fatura.
func (c *Customer) DisplayName() string {
	if c.Surname == "" {
		return c.Name
	}
	return c.Name + " " + c.Surname
}
