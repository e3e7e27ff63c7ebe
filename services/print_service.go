package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yeremiapane/pos-engine/apperr"
	"github.com/yeremiapane/pos-engine/kds"
	"github.com/yeremiapane/pos-engine/models"
	"github.com/yeremiapane/pos-engine/utils"
)

// PrinterRole is the logical purpose a device is mapped to.
type PrinterRole string

const (
	RoleKitchen PrinterRole = "kitchen"
	RoleReceipt PrinterRole = "receipt"
	RoleBar     PrinterRole = "bar"
)

// JobPublisher pushes queued jobs to the printer agent's queue. Optional;
// the agent can also poll /print-jobs.
type JobPublisher interface {
	PublishPrintJob(ctx context.Context, job *models.PrintJob) error
}

// PrintService resolves a role to a configured device, encodes the rendered
// ticket for that device and enqueues a PrintJob. Printing is optional
// infrastructure: an unconfigured role produces no job and no error.
type PrintService struct {
	DB        *gorm.DB
	Publisher JobPublisher
}

func NewPrintService(db *gorm.DB, publisher JobPublisher) *PrintService {
	return &PrintService{DB: db, Publisher: publisher}
}

// Resolve looks the role up in the printer mapping. A missing mapping row or
// an unset column is a configuration gap, not a failure.
func (s *PrintService) Resolve(role PrinterRole) (*models.Printer, error) {
	var mapping models.PrinterMapping
	if err := s.DB.First(&mapping).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ConfigGapf("no printer mapping configured")
		}
		return nil, apperr.Internal(err)
	}

	var printerID *uint
	switch role {
	case RoleKitchen:
		printerID = mapping.KitchenPrinterID
	case RoleReceipt:
		printerID = mapping.ReceiptPrinterID
	case RoleBar:
		printerID = mapping.BarPrinterID
	default:
		return nil, apperr.Validationf("unknown printer role %q", role)
	}
	if printerID == nil {
		return nil, apperr.ConfigGapf("no printer mapped for role %q", role)
	}

	var printer models.Printer
	if err := s.DB.First(&printer, *printerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ConfigGapf("printer %d mapped for %q no longer exists", *printerID, role)
		}
		return nil, apperr.Internal(err)
	}
	return &printer, nil
}

// encodePayload wraps the ticket text for the device. Each connection kind
// owns its branch; new kinds extend the switch without touching dispatch.
func encodePayload(conn models.PrinterConnection, content string) string {
	switch conn {
	case models.ConnEscpos:
		// initialize, content, feed, full cut
		return fmt.Sprintf("\x1b@\n%s\n\n\x1dV\x00", content)
	case models.ConnDriver:
		return content
	}
	return content
}

// DispatchKitchenTicket queues a kitchen ticket for the items just sent.
// Returns (nil, nil) when no kitchen printer is configured.
func (s *PrintService) DispatchKitchenTicket(order *models.Order, items []models.OrderItem) (*models.PrintJob, error) {
	content := RenderKitchenTicket(order, items)
	return s.dispatch(RoleKitchen, models.JobKitchen, order, nil, content)
}

// DispatchReceipt queues a customer receipt after settlement.
func (s *PrintService) DispatchReceipt(order *models.Order, items []models.OrderItem, payment *models.Payment) (*models.PrintJob, error) {
	content := RenderReceipt(order, items, payment)
	var paymentID *uint
	if payment != nil {
		paymentID = &payment.ID
	}
	return s.dispatch(RoleReceipt, models.JobReceipt, order, paymentID, content)
}

func (s *PrintService) dispatch(role PrinterRole, jobType models.PrintJobType, order *models.Order, paymentID *uint, content string) (*models.PrintJob, error) {
	printer, err := s.Resolve(role)
	if err != nil {
		if apperr.IsKind(err, apperr.KindConfigGap) {
			utils.InfoLogger.Printf("print skipped: %v", err)
			return nil, nil
		}
		return nil, err
	}

	job := models.PrintJob{
		OrderID:   &order.ID,
		PaymentID: paymentID,
		PrinterID: printer.ID,
		JobType:   jobType,
		Payload:   encodePayload(printer.ConnectionType, content),
		Status:    models.PrintQueued,
	}
	if err := s.DB.Create(&job).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	if s.Publisher != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Publisher.PublishPrintJob(ctx, &job); err != nil {
			// the job row is the source of truth; the agent can poll it
			utils.ErrorLogger.Printf("publish print job %d: %v", job.ID, err)
		}
	}

	kds.BroadcastPrintJobQueued(job)
	return &job, nil
}

// ListJobs returns queued and processed jobs, most recent first.
func (s *PrintService) ListJobs(limit int) ([]models.PrintJob, error) {
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	var jobs []models.PrintJob
	if err := s.DB.Order("created_at desc").Limit(limit).Find(&jobs).Error; err != nil {
		return nil, apperr.Internal(err)
	}
	return jobs, nil
}
