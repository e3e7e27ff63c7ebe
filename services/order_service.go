package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/pos-engine/apperr"
	"github.com/yeremiapane/pos-engine/kds"
	"github.com/yeremiapane/pos-engine/models"
	"github.com/yeremiapane/pos-engine/utils"
)

// OrderService is the order ledger: it owns the order/item state machines
// and keeps the financial block consistent on every mutation. Each mutation
// is one transaction that re-reads the order under a row lock, so concurrent
// edits to the same order serialize while distinct orders stay concurrent.
type OrderService struct {
	DB       *gorm.DB
	Pricing  Pricing
	Tables   *TableService
	Printing *PrintService
}

func NewOrderService(db *gorm.DB, pricing Pricing, tables *TableService, printing *PrintService) *OrderService {
	return &OrderService{DB: db, Pricing: pricing, Tables: tables, Printing: printing}
}

type CreateOrderInput struct {
	Type            models.OrderType
	TableID         *uint
	ServerID        *uint
	GuestCount      int
	Notes           string
	DeliveryAddress string
	DeliveryContact string
}

func (s *OrderService) CreateOrder(in CreateOrderInput) (*models.Order, error) {
	if !in.Type.Valid() {
		return nil, apperr.Validationf("order type %q is invalid", in.Type)
	}
	if in.Type == models.OrderDineIn && in.TableID == nil {
		return nil, apperr.Validationf("a table is required for dine-in orders")
	}
	if in.Type == models.OrderDelivery {
		if strings.TrimSpace(in.DeliveryAddress) == "" {
			return nil, apperr.Validationf("delivery address is required")
		}
		if strings.TrimSpace(in.DeliveryContact) == "" {
			return nil, apperr.Validationf("delivery contact is required")
		}
	}

	var order models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		number, err := nextOrderNumber(tx)
		if err != nil {
			return apperr.Internal(err)
		}

		order = models.Order{
			OrderNumber:     number,
			Type:            in.Type,
			Status:          models.OrderOpen,
			TableID:         in.TableID,
			ServerID:        in.ServerID,
			GuestCount:      in.GuestCount,
			Notes:           in.Notes,
			DeliveryAddress: in.DeliveryAddress,
			DeliveryContact: in.DeliveryContact,
		}
		if err := tx.Create(&order).Error; err != nil {
			return apperr.Internal(err)
		}

		if in.TableID != nil {
			table, err := s.Tables.occupyTx(tx, *in.TableID, order.ID)
			if err != nil {
				return err
			}
			order.TableLabel = table.Label
			if err := tx.Model(&order).Update("table_label", table.Label).Error; err != nil {
				return apperr.Internal(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("order #%d created (%s)", order.OrderNumber, order.Type)
	kds.BroadcastOrderUpdate(order)
	return &order, nil
}

// lockedOrder re-reads the order inside the mutation transaction.
func (s *OrderService) lockedOrder(tx *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := lockForUpdate(tx).First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("order %d not found", orderID)
		}
		return nil, apperr.Internal(err)
	}
	return &order, nil
}

// recalcTx rewrites the financial block from the order's current item set.
// Always a full sum over items, the one canonical formula.
func (s *OrderService) recalcTx(tx *gorm.DB, order *models.Order) error {
	var items []models.OrderItem
	if err := tx.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		return apperr.Internal(err)
	}
	s.Pricing.Recalculate(order, items)
	if err := tx.Save(order).Error; err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *OrderService) AddItem(orderID, menuItemID uint, quantity int, notes string) (*models.OrderItem, *models.Order, error) {
	if quantity < 1 {
		return nil, nil, apperr.Validationf("quantity must be at least 1")
	}

	var (
		item  models.OrderItem
		order *models.Order
	)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.lockedOrder(tx, orderID)
		if err != nil {
			return err
		}
		if order.Closed() {
			return apperr.Conflictf("order #%d is %s", order.OrderNumber, order.Status)
		}

		var menuItem models.MenuItem
		if err := tx.First(&menuItem, menuItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("menu item %d not found", menuItemID)
			}
			return apperr.Internal(err)
		}

		item = models.OrderItem{
			OrderID:    order.ID,
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Price:      menuItem.Price,
			Quantity:   quantity,
			Notes:      notes,
			Status:     models.ItemPending,
		}
		if err := tx.Create(&item).Error; err != nil {
			return apperr.Internal(err)
		}
		return s.recalcTx(tx, order)
	})
	if err != nil {
		return nil, nil, err
	}

	kds.BroadcastOrderUpdate(*order)
	return &item, order, nil
}

type UpdateOrderInput struct {
	Discount   *float64
	Notes      *string
	GuestCount *int
}

// UpdateOrder edits the order-level fields (discount, notes, guest count).
// A discount change shifts the total only; the subtotal is untouched so the
// stored tax stands.
func (s *OrderService) UpdateOrder(orderID uint, in UpdateOrderInput) (*models.Order, error) {
	if in.Discount != nil && *in.Discount < 0 {
		return nil, apperr.Validationf("discount cannot be negative")
	}
	if in.GuestCount != nil && *in.GuestCount < 0 {
		return nil, apperr.Validationf("guest count cannot be negative")
	}

	var order *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.lockedOrder(tx, orderID)
		if err != nil {
			return err
		}
		if order.Closed() {
			return apperr.Conflictf("order #%d is %s", order.OrderNumber, order.Status)
		}
		if in.Discount != nil {
			order.Discount = Round2(*in.Discount)
		}
		if in.Notes != nil {
			order.Notes = *in.Notes
		}
		if in.GuestCount != nil {
			order.GuestCount = *in.GuestCount
		}
		s.Pricing.RecalculateTotal(order)
		if err := tx.Save(order).Error; err != nil {
			return apperr.Internal(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	kds.BroadcastOrderUpdate(*order)
	return order, nil
}

// lockedItem resolves an item through its order, never by bare item id, so a
// removal can only touch lines known to belong to the order.
func (s *OrderService) lockedItem(tx *gorm.DB, orderID, itemID uint) (*models.OrderItem, error) {
	var item models.OrderItem
	err := tx.Where("id = ? AND order_id = ?", itemID, orderID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("item %d not found on order %d", itemID, orderID)
	}
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &item, nil
}

func (s *OrderService) UpdateItem(orderID, itemID uint, quantity *int, notes *string) (*models.OrderItem, *models.Order, error) {
	if quantity != nil && *quantity < 1 {
		return nil, nil, apperr.Validationf("quantity must be at least 1")
	}

	var (
		item  *models.OrderItem
		order *models.Order
	)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.lockedOrder(tx, orderID)
		if err != nil {
			return err
		}
		if order.Closed() {
			return apperr.Conflictf("order #%d is %s", order.OrderNumber, order.Status)
		}
		item, err = s.lockedItem(tx, orderID, itemID)
		if err != nil {
			return err
		}
		if quantity != nil {
			item.Quantity = *quantity
		}
		if notes != nil {
			item.Notes = *notes
		}
		if err := tx.Save(item).Error; err != nil {
			return apperr.Internal(err)
		}
		return s.recalcTx(tx, order)
	})
	if err != nil {
		return nil, nil, err
	}

	kds.BroadcastOrderUpdate(*order)
	return item, order, nil
}

func (s *OrderService) RemoveItem(orderID, itemID uint) (*models.Order, error) {
	var order *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.lockedOrder(tx, orderID)
		if err != nil {
			return err
		}
		if order.Closed() {
			return apperr.Conflictf("order #%d is %s", order.OrderNumber, order.Status)
		}
		item, err := s.lockedItem(tx, orderID, itemID)
		if err != nil {
			return err
		}
		if err := tx.Delete(item).Error; err != nil {
			return apperr.Internal(err)
		}
		return s.recalcTx(tx, order)
	})
	if err != nil {
		return nil, err
	}

	kds.BroadcastOrderUpdate(*order)
	return order, nil
}

// SendToKitchen flushes pending items to the kitchen and returns the count.
// Safe to call again: with nothing pending it sends zero items and leaves
// the order status alone.
func (s *OrderService) SendToKitchen(orderID uint) (int, error) {
	var (
		order *models.Order
		sent  []models.OrderItem
	)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.lockedOrder(tx, orderID)
		if err != nil {
			return err
		}
		if order.Closed() {
			return apperr.Conflictf("order #%d is %s", order.OrderNumber, order.Status)
		}

		var pending []models.OrderItem
		if err := tx.Where("order_id = ? AND status = ?", order.ID, models.ItemPending).
			Find(&pending).Error; err != nil {
			return apperr.Internal(err)
		}

		now := time.Now().UTC()
		for i := range pending {
			if err := pending[i].MarkSent(now); err != nil {
				return apperr.Internal(err)
			}
			if err := tx.Save(&pending[i]).Error; err != nil {
				return apperr.Internal(err)
			}
		}
		sent = pending

		if order.Status == models.OrderOpen && len(sent) > 0 {
			if err := order.TransitionTo(models.OrderSent); err != nil {
				return apperr.Internal(err)
			}
			if err := tx.Save(order).Error; err != nil {
				return apperr.Internal(err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if len(sent) > 0 {
		// fire-and-forget: a missing kitchen printer never blocks the order
		if _, err := s.Printing.DispatchKitchenTicket(order, sent); err != nil {
			utils.ErrorLogger.Printf("kitchen ticket for order #%d: %v", order.OrderNumber, err)
		}
		kds.BroadcastOrderUpdate(*order)
	}
	return len(sent), nil
}

func (s *OrderService) VoidOrder(orderID uint, reason string) (*models.Order, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, apperr.Validationf("a void reason is required")
	}

	var (
		order *models.Order
		table *models.Table
	)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.lockedOrder(tx, orderID)
		if err != nil {
			return err
		}
		if order.Status == models.OrderPaid {
			return apperr.Conflictf("order #%d is already paid", order.OrderNumber)
		}
		if order.Status == models.OrderVoided {
			return apperr.Conflictf("order #%d is already voided", order.OrderNumber)
		}
		if err := order.TransitionTo(models.OrderVoided); err != nil {
			return apperr.Internal(err)
		}
		if err := tx.Save(order).Error; err != nil {
			return apperr.Internal(err)
		}
		if order.TableID != nil {
			table, err = s.Tables.releaseTx(tx, *order.TableID, models.TableAvailable)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// reason goes to the audit collaborator; here that is the structured log
	utils.InfoLogger.WithField("reason", reason).
		Printf("order #%d voided", order.OrderNumber)
	kds.BroadcastOrderUpdate(*order)
	if table != nil {
		kds.BroadcastTableUpdate(*table)
	}
	return order, nil
}

// Progress moves the order along the kitchen flow
// (sent -> preparing -> ready -> served).
func (s *OrderService) Progress(orderID uint, to models.OrderStatus) (*models.Order, error) {
	switch to {
	case models.OrderPreparing, models.OrderReady, models.OrderServed:
	default:
		return nil, apperr.Validationf("status %q is not a kitchen step", to)
	}

	var order *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.lockedOrder(tx, orderID)
		if err != nil {
			return err
		}
		if err := order.TransitionTo(to); err != nil {
			return apperr.Conflictf("order #%d cannot move from %s to %s", order.OrderNumber, order.Status, to)
		}
		return tx.Save(order).Error
	})
	if err != nil {
		return nil, err
	}

	kds.BroadcastOrderUpdate(*order)
	return order, nil
}

func (s *OrderService) Get(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("order %d not found", orderID)
		}
		return nil, apperr.Internal(err)
	}
	return &order, nil
}

func (s *OrderService) List(status, orderType string, limit int) ([]models.Order, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	query := s.DB.Preload("Items").Order("created_at desc").Limit(limit)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if orderType != "" {
		query = query.Where("type = ?", orderType)
	}
	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return orders, nil
}
