package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yeremiapane/pos-engine/controllers"
	"github.com/yeremiapane/pos-engine/middlewares"
	"github.com/yeremiapane/pos-engine/services"
)

type Services struct {
	Orders   *services.OrderService
	Payments *services.PaymentService
	Tables   *services.TableService
	Printing *services.PrintService
}

func SetupRouter(db *gorm.DB, svc Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	orderCtrl := controllers.NewOrderController(svc.Orders)
	paymentCtrl := controllers.NewPaymentController(svc.Payments)
	tableCtrl := controllers.NewTableController(svc.Tables)
	printerCtrl := controllers.NewPrinterController(db, svc.Printing)
	menuCtrl := controllers.NewMenuController(db)

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now().UTC()})
	})

	// KDS websocket; auth travels as a query token
	r.GET("/ws/:role", middlewares.AuthMiddleware(), controllers.KDSHandler)

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())

	// read-only catalog and floor plan
	api.GET("/menu", menuCtrl.GetAllMenuItems)
	api.GET("/tables", tableCtrl.GetAllTables)

	// ORDERS
	orders := api.Group("/orders")
	{
		orders.GET("", middlewares.RequireCapability(middlewares.CapOrdersRead), orderCtrl.GetAllOrders)
		orders.GET("/:order_id", middlewares.RequireCapability(middlewares.CapOrdersRead), orderCtrl.GetOrderByID)

		write := orders.Group("", middlewares.RequireCapability(middlewares.CapOrdersWrite))
		{
			write.POST("", orderCtrl.CreateOrder)
			write.PATCH("/:order_id", orderCtrl.UpdateOrder)
			write.POST("/:order_id/items", orderCtrl.AddItem)
			write.PATCH("/:order_id/items/:item_id", orderCtrl.UpdateItem)
			write.DELETE("/:order_id/items/:item_id", orderCtrl.RemoveItem)
			write.POST("/:order_id/send", orderCtrl.SendToKitchen)
			write.PATCH("/:order_id/status", orderCtrl.UpdateStatus)
		}

		orders.POST("/:order_id/void", middlewares.RequireCapability(middlewares.CapOrdersVoid), orderCtrl.VoidOrder)
		orders.POST("/:order_id/settle", middlewares.RequireCapability(middlewares.CapPaymentsWrite), paymentCtrl.Settle)
	}

	// PAYMENTS
	api.GET("/payments", middlewares.RequireCapability(middlewares.CapPaymentsRead), paymentCtrl.GetAllPayments)

	// TABLES (manual status edits)
	api.PATCH("/tables/:table_id", middlewares.RequireCapability(middlewares.CapTablesWrite), tableCtrl.UpdateTableStatus)

	// PRINTING (settings + job queue view)
	api.GET("/print-jobs", middlewares.RequireCapability(middlewares.CapOrdersRead), printerCtrl.GetPrintJobs)
	settings := api.Group("", middlewares.RequireCapability(middlewares.CapSettingsWrite))
	{
		settings.GET("/printers", printerCtrl.GetAllPrinters)
		settings.POST("/printers", printerCtrl.CreatePrinter)
		settings.DELETE("/printers/:printer_id", printerCtrl.DeletePrinter)
		settings.GET("/printer-mappings", printerCtrl.GetMapping)
		settings.PUT("/printer-mappings", printerCtrl.UpdateMapping)
	}

	return r
}
