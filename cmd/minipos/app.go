package main

import (
	"context"

	"github.com/hugohenrick/minimercado-pos/internal/adapter/repository"
	"github.com/hugohenrick/minimercado-pos/internal/domain/customer"
	"github.com/hugohenrick/minimercado-pos/internal/domain/product"
	"github.com/hugohenrick/minimercado-pos/internal/domain/sale"
	"github.com/hugohenrick/minimercado-pos/internal/infrastructure/storage"
	"github.com/hugohenrick/minimercado-pos/internal/receipt"
	"github.com/hugohenrick/minimercado-pos/internal/seed"
	"github.com/hugohenrick/minimercado-pos/internal/service"
	"github.com/hugohenrick/minimercado-pos/pkg/logger"
)

// App representa a aplicação e suas dependências
type App struct {
	store       *storage.Store
	log         logger.Logger
	customers   customer.Repository
	products    product.Repository
	sales       sale.Repository
	saleService *service.SaleService
}

// NewApp cria uma nova instância do aplicativo com construção explícita das
// dependências: armazenamento, repositórios, gerador de faturas e serviço de
// vendas. Nenhum estado global.
func NewApp(ctx context.Context) (*App, error) {
	log := logger.NewLogger()

	cfg := storage.NewConfigFromEnv()
	store, err := storage.NewStore(cfg)
	if err != nil {
		return nil, err
	}

	runSeed := seed.Needed(store)

	customers, err := repository.NewFileCustomerRepository(store, log)
	if err != nil {
		return nil, err
	}
	products, err := repository.NewFileProductRepository(store, log)
	if err != nil {
		return nil, err
	}
	if runSeed {
		log.Info("primeira execução: gravando dados padrão", "dir", store.Dir())
		if err := seed.Run(ctx, customers, products); err != nil {
			return nil, err
		}
	}

	// As vendas são carregadas por último para que a resolução de
	// referências veja os arquivos já semeados.
	sales, err := repository.NewFileSaleRepository(store, log)
	if err != nil {
		return nil, err
	}

	receipts := receipt.NewGenerator(store)
	saleService := service.NewSaleService(sales, products, receipts, log)

	return &App{
		store:       store,
		log:         log,
		customers:   customers,
		products:    products,
		sales:       sales,
		saleService: saleService,
	}, nil
}
