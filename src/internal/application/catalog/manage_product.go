package catalog

import (
	"fmt"

	"github.com/gracekids/talent_ledger/src/internal/domain/catalog"
	"github.com/gracekids/talent_ledger/src/internal/domain/shared"
)

// ===========================
// 獎品管理 Use Cases（補貨／調價／下架）
// ===========================

// RestockProductCommand 補貨指令
type RestockProductCommand struct {
	ProductID string
	Quantity  int // 補貨數量（>= 1）
}

// RestockProductResult 補貨結果
type RestockProductResult struct {
	ProductID string
	Stock     int // 補貨後庫存
}

// RestockProductUseCase 補貨 Use Case
type RestockProductUseCase struct {
	productRepo catalog.ProductRepository
	txManager   shared.TransactionManager
}

// NewRestockProductUseCase 創建 Use Case 實例
func NewRestockProductUseCase(
	productRepo catalog.ProductRepository,
	txManager shared.TransactionManager,
) *RestockProductUseCase {
	return &RestockProductUseCase{productRepo: productRepo, txManager: txManager}
}

// Execute 執行補貨
//
// 與兌換共用存儲層的原子遞增：補貨與併發兌換交錯時庫存守衛
// 依然成立。
func (uc *RestockProductUseCase) Execute(cmd RestockProductCommand) (*RestockProductResult, error) {
	quantity, err := catalog.NewQuantity(cmd.Quantity)
	if err != nil {
		return nil, err
	}

	productID, err := catalog.ProductIDFromString(cmd.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product ID: %w", err)
	}

	var result *RestockProductResult
	err = uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		updated, err := uc.productRepo.AdjustStock(ctx, productID, quantity.Value())
		if err != nil {
			return fmt.Errorf("failed to adjust stock: %w", err)
		}
		result = &RestockProductResult{
			ProductID: updated.ProductID().String(),
			Stock:     updated.Stock().Value(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ChangePriceCommand 調價指令
type ChangePriceCommand struct {
	ProductID string
	NewPrice  int // 新單價（> 0）
}

// ChangePriceUseCase 調價 Use Case
// 不追溯已完成的兌換：歷史流水保留成交當下的成本。
type ChangePriceUseCase struct {
	productRepo catalog.ProductRepository
	txManager   shared.TransactionManager
}

// NewChangePriceUseCase 創建 Use Case 實例
func NewChangePriceUseCase(
	productRepo catalog.ProductRepository,
	txManager shared.TransactionManager,
) *ChangePriceUseCase {
	return &ChangePriceUseCase{productRepo: productRepo, txManager: txManager}
}

// Execute 執行調價
func (uc *ChangePriceUseCase) Execute(cmd ChangePriceCommand) error {
	newPrice, err := catalog.NewPrice(cmd.NewPrice)
	if err != nil {
		return err
	}

	productID, err := catalog.ProductIDFromString(cmd.ProductID)
	if err != nil {
		return fmt.Errorf("failed to parse product ID: %w", err)
	}

	return uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		p, err := uc.productRepo.FindByID(ctx, productID)
		if err != nil {
			return fmt.Errorf("failed to find product: %w", err)
		}
		p.ChangePrice(newPrice)
		return uc.productRepo.Update(ctx, p)
	})
}

// DeactivateProductCommand 下架指令
type DeactivateProductCommand struct {
	ProductID string
}

// DeactivateProductUseCase 下架 Use Case
// 下架後的獎品對兌換流程視同不存在；記錄保留供歷史流水引用。
type DeactivateProductUseCase struct {
	productRepo catalog.ProductRepository
	txManager   shared.TransactionManager
}

// NewDeactivateProductUseCase 創建 Use Case 實例
func NewDeactivateProductUseCase(
	productRepo catalog.ProductRepository,
	txManager shared.TransactionManager,
) *DeactivateProductUseCase {
	return &DeactivateProductUseCase{productRepo: productRepo, txManager: txManager}
}

// Execute 執行下架（冪等：重複下架是 no-op）
func (uc *DeactivateProductUseCase) Execute(cmd DeactivateProductCommand) error {
	productID, err := catalog.ProductIDFromString(cmd.ProductID)
	if err != nil {
		return fmt.Errorf("failed to parse product ID: %w", err)
	}

	return uc.txManager.InTransaction(func(ctx shared.TransactionContext) error {
		p, err := uc.productRepo.FindByID(ctx, productID)
		if err != nil {
			return fmt.Errorf("failed to find product: %w", err)
		}
		p.Deactivate()
		return uc.productRepo.Update(ctx, p)
	})
}
