package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/hugohenrick/minimercado-pos/internal/domain/customer"
	"github.com/hugohenrick/minimercado-pos/internal/domain/product"
)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "minipos",
		Short:         "Ponto de venda do minimercado",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(clienteCmd(), produtoCmd(), vendaCmd())
	return root
}

func clienteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cliente",
		Short: "Gerencia os clientes",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Lista os clientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, err := NewApp(ctx)
			if err != nil {
				return err
			}
			customers, err := app.customers.List(ctx)
			if err != nil {
				return err
			}
			for _, c := range customers {
				fmt.Printf("%d\t%s\t%s\t%s\t%s\n", c.ID, c.Name, c.Email, c.Phone, c.Address)
			}
			return nil
		},
	}

	var surname, document, phone, email, address string
	add := &cobra.Command{
		Use:   "add <nome>",
		Short: "Cadastra um cliente",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, err := NewApp(ctx)
			if err != nil {
				return err
			}
			c, err := customer.NewCustomer(args[0], surname, document, phone, email, address)
			if err != nil {
				return err
			}
			if err := app.customers.Add(ctx, c); err != nil {
				return err
			}
			fmt.Printf("cliente %d cadastrado\n", c.ID)
			return nil
		},
	}
	add.Flags().StringVar(&surname, "sobrenome", "", "sobrenome do cliente")
	add.Flags().StringVar(&document, "documento", "", "documento de identidade")
	add.Flags().StringVar(&phone, "telefone", "", "telefone de contato")
	add.Flags().StringVar(&email, "email", "", "email")
	add.Flags().StringVar(&address, "endereco", "", "endereço")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Exclui um cliente",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, err := NewApp(ctx)
			if err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id inválido: %w", err)
			}
			c, err := app.customers.FindByID(ctx, id)
			if err != nil {
				return err
			}
			return app.customers.Remove(ctx, c)
		},
	}

	cmd.AddCommand(list, add, rm)
	return cmd
}

func produtoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "produto",
		Short: "Gerencia o catálogo de produtos",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Lista os produtos",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, err := NewApp(ctx)
			if err != nil {
				return err
			}
			products, err := app.products.List(ctx)
			if err != nil {
				return err
			}
			for _, p := range products {
				fmt.Printf("%d\t%s\t%.2f\tiva=%.0f%%\tdesc=%.0f%%\testoque=%d\n",
					p.ID, p.Name, p.Price, p.Tax*100, p.Discount*100, p.Stock)
			}
			return nil
		},
	}

	var code, description string
	var price, tax, discount float64
	var stock int
	add := &cobra.Command{
		Use:   "add <nome>",
		Short: "Cadastra um produto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, err := NewApp(ctx)
			if err != nil {
				return err
			}
			p, err := product.NewProduct(code, args[0], description, price, stock)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("iva") {
				p.Tax = tax
			}
			if cmd.Flags().Changed("desconto") {
				p.Discount = discount
			}
			if err := app.products.Add(ctx, p); err != nil {
				return err
			}
			fmt.Printf("produto %d cadastrado\n", p.ID)
			return nil
		},
	}
	add.Flags().StringVar(&code, "codigo", "", "código externo")
	add.Flags().StringVar(&description, "descricao", "", "descrição")
	add.Flags().Float64Var(&price, "preco", 0, "preço base")
	add.Flags().Float64Var(&tax, "iva", product.DefaultTax, "fração de imposto (ex.: 0.19)")
	add.Flags().Float64Var(&discount, "desconto", product.DefaultDiscount, "fração de desconto")
	add.Flags().IntVar(&stock, "estoque", 0, "quantidade em estoque")

	rm := &cobra.Command{
		Use:   "rm <id>",
		Short: "Exclui um produto",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, err := NewApp(ctx)
			if err != nil {
				return err
			}
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id inválido: %w", err)
			}
			p, err := app.products.FindByID(ctx, id)
			if err != nil {
				return err
			}
			return app.products.Remove(ctx, p)
		},
	}

	cmd.AddCommand(list, add, rm)
	return cmd
}

func vendaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "venda",
		Short: "Gerencia as vendas",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Lista as vendas",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, err := NewApp(ctx)
			if err != nil {
				return err
			}
			sales, err := app.sales.List(ctx)
			if err != nil {
				return err
			}
			for _, v := range sales {
				name := fmt.Sprintf("cliente %d", v.CustomerID)
				if v.Customer != nil {
					name = v.Customer.DisplayName()
				}
				fmt.Printf("%d\t%s\t%s\titens=%d\ttotal=%.2f\n",
					v.ID, v.CreatedAt.Format("02/01/2006 15:04"), name, len(v.Lines), v.Total)
			}
			return nil
		},
	}

	nova := &cobra.Command{
		Use:   "new <clienteId>",
		Short: "Abre uma venda para um cliente",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, err := NewApp(ctx)
			if err != nil {
				return err
			}
			customerID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id inválido: %w", err)
			}
			c, err := app.customers.FindByID(ctx, customerID)
			if err != nil {
				return err
			}
			v, err := app.saleService.CreateSale(ctx, c)
			if err != nil {
				return err
			}
			fmt.Printf("venda %d aberta\n", v.ID)
			return nil
		},
	}

	addItem := &cobra.Command{
		Use:   "add-item <vendaId> <produtoId> <quantidade>",
		Short: "Adiciona um item a uma venda",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, err := NewApp(ctx)
			if err != nil {
				return err
			}
			saleID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id de venda inválido: %w", err)
			}
			productID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("id de produto inválido: %w", err)
			}
			quantity, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("quantidade inválida: %w", err)
			}
			v, err := app.sales.FindByID(ctx, saleID)
			if err != nil {
				return err
			}
			p, err := app.products.FindByID(ctx, productID)
			if err != nil {
				return err
			}
			l, err := app.saleService.AddItem(ctx, v, p, quantity)
			if err != nil {
				return err
			}
			fmt.Printf("item %d adicionado: %s x%d = %.2f (total da venda %.2f)\n",
				l.ID, p.Name, l.Quantity, l.Total, v.Total)
			return nil
		},
	}

	rmItem := &cobra.Command{
		Use:   "rm-item <vendaId> <itemId>",
		Short: "Remove um item de uma venda devolvendo o estoque",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, err := NewApp(ctx)
			if err != nil {
				return err
			}
			saleID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id de venda inválido: %w", err)
			}
			lineID, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("id de item inválido: %w", err)
			}
			v, err := app.sales.FindByID(ctx, saleID)
			if err != nil {
				return err
			}
			return app.saleService.RemoveItem(ctx, v, lineID)
		},
	}

	finalize := &cobra.Command{
		Use:   "finalize <vendaId>",
		Short: "Finaliza uma venda gerando a fatura em PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			app, err := NewApp(ctx)
			if err != nil {
				return err
			}
			saleID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("id de venda inválido: %w", err)
			}
			v, err := app.sales.FindByID(ctx, saleID)
			if err != nil {
				return err
			}
			path, err := app.saleService.Finalize(ctx, v)
			if err != nil {
				return err
			}
			fmt.Printf("fatura gerada em %s\n", path)
			return nil
		},
	}

	cmd.AddCommand(list, nova, addItem, rmItem, finalize)
	return cmd
}
