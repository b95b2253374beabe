// Package storage gerencia o diretório de dados e a leitura/reescrita dos
// arquivos planos orientados a linha usados pelos repositórios. Não há
// transação entre arquivos: cada escrita reescreve um arquivo por inteiro,
// via arquivo temporário seguido de rename, de modo que o arquivo final
// nunca é visto truncado.
package storage

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Nomes dos arquivos de dados. Mantidos idênticos ao formato original para
// compatibilidade com dados já gravados.
const (
	CustomersFile = "clientes.csv"
	ProductsFile  = "productos.csv"
	SalesFile     = "ventas.csv"
	SaleLinesFile = "detalles_venta.csv"
	InvoicesDir   = "facturas"
)

var ErrEmptyDataDir = errors.New("diretório de dados não pode ser vazio")

// Config contém as configurações do armazenamento em arquivos.
type Config struct {
	DataDir string
}

// NewConfigFromEnv cria uma nova configuração a partir de variáveis de
// ambiente. POS_DATA_DIR define o diretório de dados (padrão "data").
func NewConfigFromEnv() *Config {
	return &Config{
		DataDir: getEnv("POS_DATA_DIR", "data"),
	}
}

// Store dá acesso aos arquivos de dados dentro do diretório configurado.
type Store struct {
	dir string
}

// NewStore cria o diretório de dados (e o de faturas) se necessário e
// retorna o Store.
func NewStore(cfg *Config) (*Store, error) {
	if cfg == nil || cfg.DataDir == "" {
		return nil, ErrEmptyDataDir
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("erro ao criar diretório de dados: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(cfg.DataDir, InvoicesDir), 0o755); err != nil {
		return nil, fmt.Errorf("erro ao criar diretório de faturas: %w", err)
	}
	return &Store{dir: cfg.DataDir}, nil
}

// Dir retorna o diretório de dados.
func (s *Store) Dir() string {
	return s.dir
}

// Path retorna o caminho completo de um arquivo de dados.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// InvoicePath retorna o caminho do PDF de fatura de uma venda.
func (s *Store) InvoicePath(saleID int) string {
	return filepath.Join(s.dir, InvoicesDir, fmt.Sprintf("Factura_%d.pdf", saleID))
}

// Exists informa se um arquivo de dados já foi gravado.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// ReadLines lê todas as linhas não vazias de um arquivo de dados. Um arquivo
// inexistente equivale a uma coleção vazia.
func (s *Store) ReadLines(name string) ([]string, error) {
	f, err := os.Open(s.Path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao abrir %s: %w", name, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("erro ao ler %s: %w", name, err)
	}
	return lines, nil
}

// WriteLines reescreve um arquivo de dados por inteiro com as linhas
// informadas. A escrita usa um arquivo temporário no mesmo diretório seguido
// de rename, conforme a política de reescrita total da coleção.
func (s *Store) WriteLines(name string, lines []string) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("erro ao criar arquivo temporário para %s: %w", name, err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			tmp.Close()
			os.Remove(tmpName)
			return fmt.Errorf("erro ao gravar %s: %w", name, err)
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("erro ao gravar %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("erro ao fechar %s: %w", name, err)
	}
	if err := os.Rename(tmpName, s.Path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("erro ao substituir %s: %w", name, err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}
