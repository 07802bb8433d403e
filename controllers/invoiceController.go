package controllers

import (
	"workforce-backend/database"
	"workforce-backend/middlewares"
	"workforce-backend/services"
	"workforce-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type InvoiceCreateInput struct {
	UserID       uint   `json:"user_id" validate:"required"`
	WorkOrderIDs []uint `json:"work_order_ids"`
}

// CreateInvoices builds invoices for every eligible (collaborator, work order)
// pair of the given collaborator. Pairs that are already invoiced or missing
// attendance are skipped; an empty result is a success, not an error.
func CreateInvoices(c *fiber.Ctx) error {
	var input InvoiceCreateInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	svc := services.NewInvoiceService(database.DB)
	invoices, err := svc.CreateInvoicesForUser(input.UserID, input.WorkOrderIDs)
	if err != nil {
		return err
	}

	return c.Status(201).JSON(fiber.Map{
		"message":  "success",
		"invoices": invoices,
	})
}

func GetInvoices(c *fiber.Ctx) error {
	filter := services.InvoiceFilter{
		CollaboratorName: c.Query("collaborator"),
		ClientName:       c.Query("client"),
		InvoiceNumber:    c.Query("invoice_number"),
		WorkOrderCode:    c.Query("work_order"),
		AssignmentTitle:  c.Query("assignment"),
		SortBy:           c.Query("sort_by"),
		SortDir:          c.Query("sort_dir"),
		Page:             utils.ParseIntDefault(c.Query("page"), 1),
		Limit:            utils.ParseIntDefault(c.Query("limit"), 0),
	}

	svc := services.NewInvoiceService(database.DB)
	page, err := svc.ListInvoices(filter)
	if err != nil {
		return err
	}

	// Flat list when no pagination was requested, page envelope otherwise.
	if filter.Limit == 0 {
		return c.JSON(page.Data)
	}
	return c.JSON(page)
}

func GetInvoice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid invoice id")
	}

	svc := services.NewInvoiceService(database.DB)
	invoice, err := svc.GetInvoice(uint(id))
	if err != nil {
		return err
	}
	return c.JSON(invoice)
}

type InvoiceNumberInput struct {
	InvoiceNumber string `json:"invoice_number" validate:"required"`
}

func AssignInvoiceNumber(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid invoice id")
	}

	var input InvoiceNumberInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	svc := services.NewInvoiceService(database.DB)
	invoice, err := svc.AssignInvoiceNumber(uint(id), input.InvoiceNumber)
	if err != nil {
		return err
	}
	return c.JSON(invoice)
}

// RecalculateInvoice explicitly reruns the recalculation of one invoice.
// Unlike the attendance hook, errors here propagate to the caller.
func RecalculateInvoice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid invoice id")
	}

	svc := services.NewInvoiceService(database.DB)
	invoice, err := svc.GetInvoice(uint(id))
	if err != nil {
		return err
	}
	if err := svc.RecalculateAndUpdateInvoice(invoice.ID, invoice.CollaboratorID, invoice.WorkOrderID); err != nil {
		return err
	}

	invoice, err = svc.GetInvoice(uint(id))
	if err != nil {
		return err
	}
	return c.JSON(invoice)
}

func SoftDeleteInvoice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid invoice id")
	}

	svc := services.NewInvoiceService(database.DB)
	if err := svc.SoftDeleteInvoice(uint(id)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}

func HardDeleteInvoice(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid invoice id")
	}

	svc := services.NewInvoiceService(database.DB)
	if err := svc.HardDeleteInvoice(uint(id)); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}
