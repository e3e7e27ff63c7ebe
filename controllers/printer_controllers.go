package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/pos-engine/apperr"
	"github.com/yeremiapane/pos-engine/models"
	"github.com/yeremiapane/pos-engine/services"
	"github.com/yeremiapane/pos-engine/utils"
)

// PrinterController manages the printer registry consumed by the
// dispatcher: device records, the role mapping and the job queue view.
type PrinterController struct {
	DB       *gorm.DB
	Printing *services.PrintService
}

func NewPrinterController(db *gorm.DB, printing *services.PrintService) *PrinterController {
	return &PrinterController{DB: db, Printing: printing}
}

func (pc *PrinterController) GetAllPrinters(c *gin.Context) {
	var printers []models.Printer
	if err := pc.DB.Order("name asc").Find(&printers).Error; err != nil {
		utils.RespondError(c, apperr.Internal(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of printers", printers)
}

func (pc *PrinterController) CreatePrinter(c *gin.Context) {
	type ReqBody struct {
		Name             string `json:"name" binding:"required"`
		ConnectionType   string `json:"connection_type" binding:"required"`
		DeviceIdentifier string `json:"device_identifier" binding:"required"`
	}
	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, apperr.Validationf("invalid request body: %v", err))
		return
	}

	conn := models.PrinterConnection(body.ConnectionType)
	if !conn.Valid() {
		utils.RespondError(c, apperr.Validationf("connection type %q is invalid", body.ConnectionType))
		return
	}

	printer := models.Printer{
		Name:             body.Name,
		ConnectionType:   conn,
		DeviceIdentifier: body.DeviceIdentifier,
	}
	if err := pc.DB.Create(&printer).Error; err != nil {
		utils.RespondError(c, apperr.Internal(err))
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Printer created", printer)
}

// DeletePrinter also clears any mapping column pointing at the device so the
// dispatcher sees an honest configuration gap instead of a dangling id.
func (pc *PrinterController) DeletePrinter(c *gin.Context) {
	printerID, err := paramUint(c, "printer_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	err = pc.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		var mapping models.PrinterMapping
		if err := tx.First(&mapping).Error; err == nil {
			if mapping.KitchenPrinterID != nil && *mapping.KitchenPrinterID == printerID {
				updates["kitchen_printer_id"] = nil
			}
			if mapping.ReceiptPrinterID != nil && *mapping.ReceiptPrinterID == printerID {
				updates["receipt_printer_id"] = nil
			}
			if mapping.BarPrinterID != nil && *mapping.BarPrinterID == printerID {
				updates["bar_printer_id"] = nil
			}
			if len(updates) > 0 {
				if err := tx.Model(&mapping).Updates(updates).Error; err != nil {
					return err
				}
			}
		}
		return tx.Delete(&models.Printer{}, printerID).Error
	})
	if err != nil {
		utils.RespondError(c, apperr.Internal(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Printer deleted", gin.H{"printer_id": printerID})
}

func (pc *PrinterController) GetMapping(c *gin.Context) {
	var mapping models.PrinterMapping
	if err := pc.DB.First(&mapping).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondJSON(c, http.StatusOK, "Printer mapping", models.PrinterMapping{})
			return
		}
		utils.RespondError(c, apperr.Internal(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Printer mapping", mapping)
}

func (pc *PrinterController) UpdateMapping(c *gin.Context) {
	type ReqBody struct {
		KitchenPrinterID *uint `json:"kitchen_printer_id"`
		ReceiptPrinterID *uint `json:"receipt_printer_id"`
		BarPrinterID     *uint `json:"bar_printer_id"`
	}
	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, apperr.Validationf("invalid request body: %v", err))
		return
	}

	for _, id := range []*uint{body.KitchenPrinterID, body.ReceiptPrinterID, body.BarPrinterID} {
		if id == nil {
			continue
		}
		var count int64
		if err := pc.DB.Model(&models.Printer{}).Where("id = ?", *id).Count(&count).Error; err != nil {
			utils.RespondError(c, apperr.Internal(err))
			return
		}
		if count == 0 {
			utils.RespondError(c, apperr.Validationf("printer %d not found", *id))
			return
		}
	}

	var mapping models.PrinterMapping
	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&mapping).Error; err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			mapping = models.PrinterMapping{}
			if err := tx.Create(&mapping).Error; err != nil {
				return err
			}
		}
		return tx.Model(&mapping).Updates(map[string]interface{}{
			"kitchen_printer_id": body.KitchenPrinterID,
			"receipt_printer_id": body.ReceiptPrinterID,
			"bar_printer_id":     body.BarPrinterID,
		}).Error
	})
	if err != nil {
		utils.RespondError(c, apperr.Internal(err))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Printer mapping updated", mapping)
}

// GetPrintJobs -> queued/processed jobs, most recent first
func (pc *PrinterController) GetPrintJobs(c *gin.Context) {
	jobs, err := pc.Printing.ListJobs(20)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of print jobs", jobs)
}
