package catalog

import (
	"time"

	"github.com/gracekids/talent_ledger/src/internal/domain/shared"
	"github.com/gracekids/talent_ledger/src/internal/domain/student"
)

// ===========================
// Product 聚合根
// ===========================

// Product 商店獎品聚合根
//
// 聚合邊界：
// - 獎品基本信息（ID, 名稱, 價格）
// - 庫存量（StockLevel）
// - 上下架狀態（active）
//
// 業務不變條件：
// - Price > 0
// - Stock >= 0（庫存永不為負；會違反的兌換在任何變更前被拒絕）
// - 兌換只能針對上架中（active）的獎品
//
// 設計原則：
// - 所有欄位 unexported，狀態變更只通過命令方法
// - 兌換流程只變更 stock 欄位；價格與名稱由管理操作變更
type Product struct {
	// 聚合根識別符
	productID ProductID

	// 基本信息
	name  string
	price Price

	// 庫存與狀態
	stock  StockLevel
	active bool

	// 審計字段
	createdAt time.Time
	updatedAt time.Time

	// 待發布的領域事件
	events []shared.DomainEvent
}

// NewProduct 創建新獎品（上架）
//
// 業務規則：
// - 名稱不能為空
// - 價格必須 > 0，初始庫存必須 >= 0
// - 新獎品預設為上架狀態
func NewProduct(name string, price Price, initialStock StockLevel) (*Product, error) {
	if name == "" {
		return nil, ErrEmptyProductName
	}

	now := time.Now()
	p := &Product{
		productID: NewProductID(),
		name:      name,
		price:     price,
		stock:     initialStock,
		active:    true,
		createdAt: now,
		updatedAt: now,
		events:    make([]shared.DomainEvent, 0),
	}

	p.addEvent(NewProductListedEvent(p.productID, name, price.Value(), initialStock.Value()))

	return p, nil
}

// ===========================
// 查詢方法（Getters）
// ===========================

// ProductID 獲取獎品 ID
func (p *Product) ProductID() ProductID {
	return p.productID
}

// Name 獲取獎品名稱
func (p *Product) Name() string {
	return p.name
}

// Price 獲取獎品單價
func (p *Product) Price() Price {
	return p.price
}

// Stock 獲取當前庫存
func (p *Product) Stock() StockLevel {
	return p.stock
}

// IsActive 判斷是否上架中
func (p *Product) IsActive() bool {
	return p.active
}

// CreatedAt 獲取創建時間
func (p *Product) CreatedAt() time.Time {
	return p.createdAt
}

// UpdatedAt 獲取最後更新時間
func (p *Product) UpdatedAt() time.Time {
	return p.updatedAt
}

// CostOf 計算兌換指定數量所需的達倫總數
func (p *Product) CostOf(q Quantity) (student.TalentAmount, error) {
	return student.NewTalentAmount(p.price.CostOf(q))
}

// ===========================
// 事件管理
// ===========================

func (p *Product) addEvent(event shared.DomainEvent) {
	p.events = append(p.events, event)
}

// PullEvents 獲取所有待發布事件並清空列表
func (p *Product) PullEvents() []shared.DomainEvent {
	events := p.events
	p.events = make([]shared.DomainEvent, 0)
	return events
}

// ===========================
// 命令方法（狀態變更）
// ===========================

// ReserveStock 出貨（兌換流程調用）
//
// 業務規則：
// - 獎品必須上架中（ErrProductInactive）
// - 庫存必須足夠（ErrStockInsufficient）
// - 失敗時聚合狀態完全不變
func (p *Product) ReserveStock(q Quantity) error {
	if !p.active {
		return ErrProductInactive.WithContext("product_id", p.productID.String())
	}

	newStock, err := p.stock.Reserve(q)
	if err != nil {
		return err
	}

	p.stock = newStock
	p.updatedAt = time.Now()

	p.addEvent(NewStockReservedEvent(p.productID, q.Value(), p.stock.Value()))

	return nil
}

// Replenish 補貨（管理操作）
func (p *Product) Replenish(q Quantity) {
	p.stock = p.stock.Replenish(q)
	p.updatedAt = time.Now()

	p.addEvent(NewStockReplenishedEvent(p.productID, q.Value(), p.stock.Value()))
}

// ChangePrice 調整價格（管理操作）
// 不追溯已完成的兌換：歷史流水記錄的是成交當下的成本。
func (p *Product) ChangePrice(newPrice Price) {
	p.price = newPrice
	p.updatedAt = time.Now()
}

// Deactivate 下架（管理操作）
// 下架後的獎品對兌換流程視同不存在（外層返回 ErrProductNotFound 語義）。
func (p *Product) Deactivate() {
	if !p.active {
		return
	}
	p.active = false
	p.updatedAt = time.Now()

	p.addEvent(NewProductDeactivatedEvent(p.productID))
}

// Reactivate 重新上架（管理操作）
func (p *Product) Reactivate() {
	if p.active {
		return
	}
	p.active = true
	p.updatedAt = time.Now()
}

// ===========================
// 聚合重建方法（僅供 Infrastructure Layer 使用）
// ===========================

// ReconstructProduct 從持久化存儲重建聚合根
//
// 重要：即使是從資料庫重建，也必須驗證不變條件（價格 > 0、庫存 >= 0），
// 防止損壞資料污染領域層。
func ReconstructProduct(
	productID ProductID,
	name string,
	price int,
	stock int,
	active bool,
	createdAt time.Time,
	updatedAt time.Time,
) (*Product, error) {
	if productID.IsEmpty() {
		return nil, ErrInvalidProductID.WithContext(
			"reason", "invalid product ID in database",
		)
	}

	if name == "" {
		return nil, ErrEmptyProductName.WithContext(
			"reason", "empty product name in database",
		)
	}

	priceVO, err := NewPrice(price)
	if err != nil {
		return nil, err
	}

	stockVO, err := NewStockLevel(stock)
	if err != nil {
		return nil, err
	}

	return &Product{
		productID: productID,
		name:      name,
		price:     priceVO,
		stock:     stockVO,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
		events:    make([]shared.DomainEvent, 0),
	}, nil
}
