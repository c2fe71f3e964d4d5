package catalog

import (
	"time"

	"github.com/gracekids/talent_ledger/src/internal/domain/catalog"
	"github.com/gracekids/talent_ledger/src/internal/domain/shared"
)

// ===========================
// CreateProduct Use Case
// ===========================

// CreateProductCommand 獎品上架指令（Input DTO）
type CreateProductCommand struct {
	Name         string // 獎品名稱（非空）
	Price        int    // 單價（達倫，> 0）
	InitialStock int    // 初始庫存（>= 0）
}

// CreateProductResult 獎品上架結果（Output DTO）
type CreateProductResult struct {
	ProductID string
	Name      string
	Price     int
	Stock     int
	CreatedAt time.Time
}

// CreateProductUseCase 獎品上架 Use Case
//
// 商店目錄由老師（管理端）維護；兌換流程只變更庫存，
// 上架／價格／下架都走這裡的管理操作。
type CreateProductUseCase struct {
	productRepo catalog.ProductRepository
	txManager   shared.TransactionManager
}

// NewCreateProductUseCase 創建 Use Case 實例
func NewCreateProductUseCase(
	productRepo catalog.ProductRepository,
	txManager shared.TransactionManager,
) *CreateProductUseCase {
	return &CreateProductUseCase{
		productRepo: productRepo,
		txManager:   txManager,
	}
}

// Execute 執行獎品上架
func (uc *CreateProductUseCase) Execute(cmd CreateProductCommand) (*CreateProductResult, error) {
	price, err := catalog.NewPrice(cmd.Price)
	if err != nil {
		return nil, err
	}

	stock, err := catalog.NewStockLevel(cmd.InitialStock)
	if err != nil {
		return nil, err
	}

	p, err := catalog.NewProduct(cmd.Name, price, stock)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		return uc.productRepo.Save(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	return &CreateProductResult{
		ProductID: p.ProductID().String(),
		Name:      p.Name(),
		Price:     p.Price().Value(),
		Stock:     p.Stock().Value(),
		CreatedAt: p.CreatedAt(),
	}, nil
}
