package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/yeremiapane/pos-engine/config"
	"github.com/yeremiapane/pos-engine/database"
	"github.com/yeremiapane/pos-engine/mq"
	"github.com/yeremiapane/pos-engine/router"
	"github.com/yeremiapane/pos-engine/services"
	"github.com/yeremiapane/pos-engine/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("no .env file, using environment")
	}

	cfg := config.Load()
	utils.SetJWTSecret(cfg.JWTSecret)

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Seed(db); err != nil {
		utils.ErrorLogger.Fatalf("seed: %v", err)
	}

	// the print broker is optional; without it the agent polls /print-jobs
	var publisher services.JobPublisher
	if cfg.PrintBrokerURL != "" {
		p, err := mq.Dial(cfg.PrintBrokerURL)
		if err != nil {
			utils.ErrorLogger.Fatalf("print broker: %v", err)
		}
		defer p.Close()
		publisher = p
		utils.InfoLogger.Println("print broker connected")
	}

	pricing := services.Pricing{TaxRate: cfg.TaxRate}
	tables := services.NewTableService(db)
	printing := services.NewPrintService(db, publisher)
	orders := services.NewOrderService(db, pricing, tables, printing)
	payments := services.NewPaymentService(db, pricing, tables, printing)

	r := router.SetupRouter(db, router.Services{
		Orders:   orders,
		Payments: payments,
		Tables:   tables,
		Printing: printing,
	})

	utils.InfoLogger.Printf("listening on port %s (tax rate %.4f)", cfg.Port, cfg.TaxRate)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
