package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestorlite/erp-api/internal/application/auth"
	appinv "github.com/gestorlite/erp-api/internal/application/inventory"
	"github.com/gestorlite/erp-api/internal/application/orders"
	"github.com/gestorlite/erp-api/internal/application/usecase"
	"github.com/gestorlite/erp-api/internal/domain/entity"
	"github.com/gestorlite/erp-api/internal/domain/repository"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	PartnerUC        *usecase.PartnerUseCase
	ExpenseUC        *usecase.ExpenseUseCase
	OrderUC          *orders.OrderUseCase
	OrderPDFUC       *orders.PDFUseCase
	RegisterMovement *appinv.RegisterMovementUseCase
	BalanceUC        *appinv.BalanceUseCase
	ReconcileUC      *appinv.ReconcileUseCase
	AuthUC           *auth.AuthUseCase
	LotRepo          repository.StockLotRepository
	MovementRepo     repository.StockMovementRepository
	JWTSecret        string
	FIFODefault      bool
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido; escrita restrita a admin/estoquista)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(entity.RoleAdmin, entity.RoleEstoquista), productHandler.Create)
	products.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleEstoquista), productHandler.Update)

	// Partners (protegido)
	partners := protected.Group("/partners")
	partnerHandler := NewPartnerHandler(deps.PartnerUC)
	partners.Post("/", partnerHandler.Create)
	partners.Get("/", partnerHandler.List)
	partners.Get("/:id", partnerHandler.GetByID)
	partners.Put("/:id", partnerHandler.Update)

	// Orders (protegido; confirmação restrita a admin/estoquista)
	ordersGroup := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, deps.OrderPDFUC, deps.ReconcileUC, deps.FIFODefault)
	ordersGroup.Post("/", orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Get("/:id/pdf", orderHandler.DownloadPDF)
	ordersGroup.Post("/:id/confirm", RequireRole(entity.RoleAdmin, entity.RoleEstoquista), orderHandler.Confirm)

	// Inventory (protegido; movimentação manual e reconciliação restritas a admin/estoquista)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(
		deps.RegisterMovement,
		deps.BalanceUC,
		deps.ReconcileUC,
		deps.LotRepo,
		deps.MovementRepo,
		deps.FIFODefault,
	)
	invGroup.Post("/movements", RequireRole(entity.RoleAdmin, entity.RoleEstoquista), inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/balance/:productID", inventoryHandler.GetBalance)
	invGroup.Get("/products/:productID/lots", inventoryHandler.ListLots)
	invGroup.Get("/low-stock", inventoryHandler.ListLowStock)
	invGroup.Get("/reconciliation/candidates", RequireRole(entity.RoleAdmin, entity.RoleEstoquista), inventoryHandler.ListReconciliationCandidates)
	invGroup.Post("/reconciliation", RequireRole(entity.RoleAdmin, entity.RoleEstoquista), inventoryHandler.RunReconciliation)

	// Expenses (protegido; exclusão restrita a admin)
	expenses := protected.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/:id", expenseHandler.GetByID)
	expenses.Put("/:id", expenseHandler.Update)
	expenses.Post("/:id/pay", expenseHandler.MarkPaid)
	expenses.Delete("/:id", RequireRole(entity.RoleAdmin), expenseHandler.Delete)
}
