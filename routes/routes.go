package routes

import (
	"github.com/gofiber/fiber/v2"

	"workforce-backend/controllers"
	"workforce-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Then per-request transaction (commits/rolls back around the handler)
	protected.Use(middlewares.RequestTx())

	// Clients
	protected.Post("/client", controllers.CreateClient)
	protected.Get("/clients", controllers.GetClients)
	protected.Get("/client/:id", controllers.GetClient)
	protected.Put("/client/:id", controllers.UpdateClient)
	protected.Post("/client/:id/rates", controllers.SetClientRate)

	// Collaborators
	protected.Post("/collaborator", controllers.CreateCollaborator)
	protected.Get("/collaborators", controllers.GetCollaborators)
	protected.Get("/collaborator/:id", controllers.GetCollaborator)
	protected.Put("/collaborator/:id", controllers.UpdateCollaborator)
	protected.Post("/collaborator/:id/rates", controllers.SetCollaboratorRate)

	// Assignments
	protected.Post("/assignment", controllers.CreateAssignments) // batch create
	protected.Get("/assignments", controllers.GetAssignments)
	protected.Put("/assignment/:id", controllers.UpdateAssignment)

	// Work orders + roster
	protected.Post("/work-order", controllers.CreateWorkOrder)
	protected.Get("/work-orders", controllers.GetWorkOrders)
	protected.Get("/work-order/:id", controllers.GetWorkOrder)
	protected.Post("/work-order/:id/collaborators", controllers.AddRosterEntry)

	// Surcharge rules (admin reference data)
	protected.Post("/surcharge-rule", controllers.CreateSurchargeRule)
	protected.Get("/surcharge-rules", controllers.GetSurchargeRules)
	protected.Put("/surcharge-rule/:id", controllers.UpdateSurchargeRule)
	protected.Delete("/surcharge-rule/:id", controllers.DeleteSurchargeRule)

	// Attendance (each mutation triggers the invoice hook)
	protected.Post("/check-in", controllers.CheckIn)
	protected.Post("/check-out", controllers.CheckOut)
	protected.Put("/check-record/:id/evidence", controllers.AttachEvidence)
	protected.Delete("/check-record/:id", controllers.DeleteCheckRecord)
	protected.Post("/check-record/:id/breaks", controllers.CreateBreak)
	protected.Put("/breaks/:id", controllers.UpdateBreak)
	protected.Delete("/breaks/:id", controllers.DeleteBreak)

	// Invoices
	protected.Post("/invoices", controllers.CreateInvoices)
	protected.Get("/invoices", controllers.GetInvoices)
	protected.Get("/invoice/:id", controllers.GetInvoice)
	protected.Put("/invoice/:id/number", controllers.AssignInvoiceNumber)
	protected.Put("/invoice/:id/recalculate", controllers.RecalculateInvoice)
	protected.Delete("/invoice/:id", controllers.SoftDeleteInvoice)
	protected.Delete("/invoice/:id/hard", controllers.HardDeleteInvoice)
}
