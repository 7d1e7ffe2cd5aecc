package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-almacen-pos/internal/handler"
	"go-almacen-pos/internal/middleware"
	"go-almacen-pos/internal/service"
	"go-almacen-pos/internal/store"
	"go-almacen-pos/internal/ws"
	"go-almacen-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database + Snapshot Store
	db := database.ConnectDB()
	posStore, err := store.New(db)
	if err != nil {
		log.Fatal("Failed to prepare snapshot store: ", err)
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	posService, err := service.NewPosService(posStore, wsHub)
	if err != nil {
		log.Fatal("Failed to load application state: ", err)
	}
	authService := service.NewAuthService(posService)
	assistantService := service.NewAssistantService(posService)

	authHandler := handler.NewAuthHandler(authService)
	catalogHandler := handler.NewCatalogHandler(posService)
	checkoutHandler := handler.NewCheckoutHandler(posService)
	consignmentHandler := handler.NewConsignmentHandler(posService)
	transactionHandler := handler.NewTransactionHandler(posService)
	customerHandler := handler.NewCustomerHandler(posService)
	reportHandler := handler.NewReportHandler(posService)
	userHandler := handler.NewUserHandler(posService)
	backupHandler := handler.NewBackupHandler(posService)
	assistantHandler := handler.NewAssistantHandler(assistantService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Almacen POS v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(posService))

	// Catalog
	protected.Get("/products", catalogHandler.GetProducts)
	protected.Post("/products", catalogHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequireRole("admin"), catalogHandler.UpdateProduct)
	protected.Post("/products/:id/stock", catalogHandler.AddStock)
	protected.Get("/categories", catalogHandler.GetCategories)

	// Checkout (two-phase: propose -> review -> confirm/cancel)
	protected.Post("/checkout", checkoutHandler.Propose)
	protected.Get("/checkout/pending", checkoutHandler.PendingReceipt)
	protected.Patch("/checkout/pending", checkoutHandler.EditReceipt)
	protected.Post("/checkout/confirm", checkoutHandler.Confirm)
	protected.Post("/checkout/cancel", checkoutHandler.Cancel)

	// Customers and debts
	protected.Get("/customers", customerHandler.GetCustomers)
	protected.Post("/customers", customerHandler.CreateCustomer)
	protected.Put("/customers/:id", customerHandler.UpdateCustomer)
	protected.Post("/customers/:id/settle", consignmentHandler.SettleCustomer)
	protected.Get("/consignments", consignmentHandler.GetConsignments)
	protected.Get("/consignments/by-customer", consignmentHandler.GetDebtsByCustomer)
	protected.Post("/consignments/:id/settle", consignmentHandler.Settle)
	protected.Put("/consignments/:id", middleware.RequireRole("admin"), consignmentHandler.Edit)

	// Ledger
	protected.Get("/transactions", transactionHandler.GetTransactions)
	protected.Get("/transactions/:id", transactionHandler.GetTransaction)
	protected.Delete("/transactions/:id", transactionHandler.Delete)
	protected.Get("/logs", transactionHandler.GetLogs)

	// Reports
	protected.Get("/reports/daily", reportHandler.GetDailyReport)
	protected.Get("/reports/dashboard", reportHandler.GetDashboardStats)
	protected.Get("/reports/sales-chart", reportHandler.GetSalesChart)

	// User management (admin)
	protected.Get("/users", middleware.RequireRole("admin"), userHandler.GetUsers)
	protected.Post("/users", middleware.RequireRole("admin"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequireRole("admin"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequireRole("admin"), userHandler.DeleteUser)

	// Backup (admin)
	protected.Get("/backup/export", middleware.RequireRole("admin"), backupHandler.Export)
	protected.Post("/backup/import", middleware.RequireRole("admin"), backupHandler.Import)
	protected.Post("/backup/reset", middleware.RequireRole("admin"), backupHandler.Reset)

	// Assistant
	protected.Post("/assistant/ask", assistantHandler.Ask)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
