package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/pos-engine/apperr"
	"github.com/yeremiapane/pos-engine/models"
	"github.com/yeremiapane/pos-engine/services"
	"github.com/yeremiapane/pos-engine/utils"
)

type PaymentController struct {
	Payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{Payments: payments}
}

// Settle -> record full payment against an order and close it out
func (pc *PaymentController) Settle(c *gin.Context) {
	orderID, err := paramUint(c, "order_id")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	type ReqBody struct {
		Method   string  `json:"method" binding:"required"`
		Tendered float64 `json:"tendered"`
		Tip      float64 `json:"tip"`
	}
	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, apperr.Validationf("invalid request body: %v", err))
		return
	}

	_, name := actor(c)
	payment, order, err := pc.Payments.Settle(services.SettleInput{
		OrderID:     orderID,
		Method:      models.PaymentMethod(body.Method),
		Tendered:    body.Tendered,
		Tip:         body.Tip,
		ProcessedBy: name,
	})
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Payment approved", gin.H{
		"payment":    payment,
		"change_due": payment.ChangeDue,
		"order":      order,
	})
}

func (pc *PaymentController) GetAllPayments(c *gin.Context) {
	payments, err := pc.Payments.List(100)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of payments", payments)
}
