package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yeremiapane/pos-engine/apperr"
	"github.com/yeremiapane/pos-engine/kds"
	"github.com/yeremiapane/pos-engine/models"
	"github.com/yeremiapane/pos-engine/utils"
)

// PaymentService settles orders. Settlement is the only path that produces a
// Payment record; an approved payment is immutable.
type PaymentService struct {
	DB       *gorm.DB
	Pricing  Pricing
	Tables   *TableService
	Printing *PrintService
}

func NewPaymentService(db *gorm.DB, pricing Pricing, tables *TableService, printing *PrintService) *PaymentService {
	return &PaymentService{DB: db, Pricing: pricing, Tables: tables, Printing: printing}
}

type SettleInput struct {
	OrderID     uint
	Method      models.PaymentMethod
	Tendered    float64
	Tip         float64
	ProcessedBy string
}

func (s *PaymentService) Settle(in SettleInput) (*models.Payment, *models.Order, error) {
	if !in.Method.Valid() {
		return nil, nil, apperr.Validationf("payment method %q is invalid", in.Method)
	}
	if in.Tip < 0 {
		return nil, nil, apperr.Validationf("tip cannot be negative")
	}

	var (
		payment models.Payment
		order   *models.Order
		table   *models.Table
	)
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		order, err = s.lockedOrder(tx, in.OrderID)
		if err != nil {
			return err
		}
		if order.Closed() {
			return apperr.Conflictf("order #%d is already %s", order.OrderNumber, order.Status)
		}

		// tip lands on the order before due is read; subtotal is untouched
		// so the stored tax stands
		order.Tip = Round2(in.Tip)
		s.Pricing.RecalculateTotal(order)
		due := order.Total

		tendered := in.Tendered
		changeDue := 0.0
		if in.Method.Cash() {
			if tendered < due {
				return apperr.Validationf("cash tendered %.2f does not cover amount due %.2f", tendered, due)
			}
			changeDue = Round2(tendered - due)
		} else {
			// card-like tenders settle at exactly the amount due; gateway
			// declines come back through the external collaborator
			tendered = due
		}

		payment = models.Payment{
			OrderID:        order.ID,
			Method:         in.Method,
			AmountDue:      due,
			AmountTendered: tendered,
			ChangeDue:      changeDue,
			Tip:            order.Tip,
			Status:         models.PaymentPending,
			Reference:      fmt.Sprintf("PAY-%s", uuid.NewString()),
			ProcessedBy:    in.ProcessedBy,
		}
		if err := payment.Resolve(models.PaymentApproved); err != nil {
			return apperr.Internal(err)
		}
		if err := tx.Create(&payment).Error; err != nil {
			return apperr.Internal(err)
		}

		if err := order.TransitionTo(models.OrderPaid); err != nil {
			return apperr.Internal(err)
		}
		now := time.Now().UTC()
		order.PaidAt = &now
		if err := tx.Save(order).Error; err != nil {
			return apperr.Internal(err)
		}

		if order.TableID != nil {
			table, err = s.Tables.releaseTx(tx, *order.TableID, models.TableCleaning)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	utils.InfoLogger.Printf("order #%d settled by %s (%s), change %.2f",
		order.OrderNumber, payment.ProcessedBy, payment.Method, payment.ChangeDue)
	kds.BroadcastOrderUpdate(*order)
	kds.BroadcastPaymentUpdate(payment)
	if table != nil {
		kds.BroadcastTableUpdate(*table)
	}

	// receipt dispatch is fire-and-forget; an unmapped printer must never
	// unwind a settlement
	var items []models.OrderItem
	if err := s.DB.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
		utils.ErrorLogger.Printf("load items for order #%d receipt: %v", order.OrderNumber, err)
	} else if _, err := s.Printing.DispatchReceipt(order, items, &payment); err != nil {
		utils.ErrorLogger.Printf("receipt for order #%d: %v", order.OrderNumber, err)
	}

	return &payment, order, nil
}

func (s *PaymentService) lockedOrder(tx *gorm.DB, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := lockForUpdate(tx).First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("order %d not found", orderID)
		}
		return nil, apperr.Internal(err)
	}
	return &order, nil
}

func (s *PaymentService) List(limit int) ([]models.Payment, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var payments []models.Payment
	if err := s.DB.Order("created_at desc").Limit(limit).Find(&payments).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return payments, nil
}
