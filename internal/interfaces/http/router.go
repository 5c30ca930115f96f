package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/crm-api/internal/application/analytics"
	"github.com/jhoicas/crm-api/internal/application/auth"
	"github.com/jhoicas/crm-api/internal/application/pipeline"
	"github.com/jhoicas/crm-api/internal/application/sales"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CustomerUC   *usecase.CustomerUseCase
	ProductUC    *usecase.ProductUseCase
	LeadUC       *usecase.LeadUseCase
	ActivityUC   *usecase.ActivityUseCase
	NoteUC       *usecase.NoteUseCase
	TaskUC       *usecase.TaskUseCase
	StatusChange *pipeline.StatusChangeUseCase
	CreateOrder  *sales.CreateOrderUseCase
	OrderUC      *sales.OrderUseCase
	OrderPDF     *sales.OrderPDFUseCase
	DashboardUC  *appanalytics.DashboardUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Customers
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := protected.Group("/customers")
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)

	// Products (escritura solo admin)
	productHandler := NewProductHandler(deps.ProductUC)
	adminOnly := RequireRole(entity.RoleAdmin)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Orders
	orderHandler := NewOrderHandler(deps.CreateOrder, deps.OrderUC, deps.OrderPDF)
	orders := protected.Group("/orders")
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Delete("/:id", orderHandler.Delete)
	orders.Get("/:id/pdf", orderHandler.DownloadPDF)

	// Leads + pipeline
	leadHandler := NewLeadHandler(deps.LeadUC)
	pipelineHandler := NewPipelineHandler(deps.StatusChange)
	activityHandler := NewActivityHandler(deps.ActivityUC)
	noteHandler := NewNoteHandler(deps.NoteUC)
	taskHandler := NewTaskHandler(deps.TaskUC)

	leads := protected.Group("/leads")
	leads.Get("/", leadHandler.List)
	leads.Post("/", leadHandler.Create)
	leads.Get("/:id", leadHandler.GetByID)
	leads.Put("/:id", leadHandler.Update)
	leads.Delete("/:id", leadHandler.Delete)
	leads.Patch("/:id/status", pipelineHandler.ChangeStatus)
	leads.Get("/:id/pipeline", pipelineHandler.Progress)
	leads.Get("/:id/activities", activityHandler.ListByLead)
	leads.Post("/:id/activities", activityHandler.Create)
	leads.Get("/:id/notes", noteHandler.ListByLead)
	leads.Post("/:id/notes", noteHandler.Create)
	leads.Get("/:id/tasks", taskHandler.ListByLead)
	leads.Post("/:id/tasks", taskHandler.Create)

	protected.Get("/pipeline/stages", pipelineHandler.Stages)

	protected.Put("/activities/:id", activityHandler.Update)
	protected.Delete("/activities/:id", activityHandler.Delete)
	protected.Put("/notes/:id", noteHandler.Update)
	protected.Delete("/notes/:id", noteHandler.Delete)
	protected.Put("/tasks/:id", taskHandler.Update)
	protected.Patch("/tasks/:id/complete", taskHandler.Complete)
	protected.Delete("/tasks/:id", taskHandler.Delete)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.GetSummary)
}
