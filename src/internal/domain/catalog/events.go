package catalog

import (
	"time"

	"github.com/google/uuid"
)

// ===========================
// Product 領域事件
// ===========================

// ProductListedEvent 獎品上架事件
type ProductListedEvent struct {
	eventID    string
	productID  ProductID
	name       string
	price      int
	stock      int
	occurredAt time.Time
}

// NewProductListedEvent 創建獎品上架事件
func NewProductListedEvent(productID ProductID, name string, price, stock int) *ProductListedEvent {
	return &ProductListedEvent{
		eventID:    uuid.New().String(),
		productID:  productID,
		name:       name,
		price:      price,
		stock:      stock,
		occurredAt: time.Now(),
	}
}

func (e *ProductListedEvent) EventID() string       { return e.eventID }
func (e *ProductListedEvent) EventType() string     { return "catalog.product_listed" }
func (e *ProductListedEvent) OccurredAt() time.Time { return e.occurredAt }
func (e *ProductListedEvent) AggregateID() string   { return e.productID.String() }

// Name 獲取獎品名稱
func (e *ProductListedEvent) Name() string { return e.name }

// Price 獲取上架價格
func (e *ProductListedEvent) Price() int { return e.price }

// Stock 獲取初始庫存
func (e *ProductListedEvent) Stock() int { return e.stock }

// StockReservedEvent 庫存已出貨事件
type StockReservedEvent struct {
	eventID    string
	productID  ProductID
	quantity   int
	remaining  int
	occurredAt time.Time
}

// NewStockReservedEvent 創建庫存已出貨事件
func NewStockReservedEvent(productID ProductID, quantity, remaining int) *StockReservedEvent {
	return &StockReservedEvent{
		eventID:    uuid.New().String(),
		productID:  productID,
		quantity:   quantity,
		remaining:  remaining,
		occurredAt: time.Now(),
	}
}

func (e *StockReservedEvent) EventID() string       { return e.eventID }
func (e *StockReservedEvent) EventType() string     { return "catalog.stock_reserved" }
func (e *StockReservedEvent) OccurredAt() time.Time { return e.occurredAt }
func (e *StockReservedEvent) AggregateID() string   { return e.productID.String() }

// Quantity 獲取出貨數量
func (e *StockReservedEvent) Quantity() int { return e.quantity }

// Remaining 獲取剩餘庫存
func (e *StockReservedEvent) Remaining() int { return e.remaining }

// StockReplenishedEvent 已補貨事件
type StockReplenishedEvent struct {
	eventID    string
	productID  ProductID
	quantity   int
	remaining  int
	occurredAt time.Time
}

// NewStockReplenishedEvent 創建已補貨事件
func NewStockReplenishedEvent(productID ProductID, quantity, remaining int) *StockReplenishedEvent {
	return &StockReplenishedEvent{
		eventID:    uuid.New().String(),
		productID:  productID,
		quantity:   quantity,
		remaining:  remaining,
		occurredAt: time.Now(),
	}
}

func (e *StockReplenishedEvent) EventID() string       { return e.eventID }
func (e *StockReplenishedEvent) EventType() string     { return "catalog.stock_replenished" }
func (e *StockReplenishedEvent) OccurredAt() time.Time { return e.occurredAt }
func (e *StockReplenishedEvent) AggregateID() string   { return e.productID.String() }

// Quantity 獲取補貨數量
func (e *StockReplenishedEvent) Quantity() int { return e.quantity }

// Remaining 獲取補貨後庫存
func (e *StockReplenishedEvent) Remaining() int { return e.remaining }

// ProductDeactivatedEvent 獎品下架事件
type ProductDeactivatedEvent struct {
	eventID    string
	productID  ProductID
	occurredAt time.Time
}

// NewProductDeactivatedEvent 創建獎品下架事件
func NewProductDeactivatedEvent(productID ProductID) *ProductDeactivatedEvent {
	return &ProductDeactivatedEvent{
		eventID:    uuid.New().String(),
		productID:  productID,
		occurredAt: time.Now(),
	}
}

func (e *ProductDeactivatedEvent) EventID() string       { return e.eventID }
func (e *ProductDeactivatedEvent) EventType() string     { return "catalog.product_deactivated" }
func (e *ProductDeactivatedEvent) OccurredAt() time.Time { return e.occurredAt }
func (e *ProductDeactivatedEvent) AggregateID() string   { return e.productID.String() }
