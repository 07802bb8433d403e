package controllers

import (
	"time"

	"workforce-backend/database"
	"workforce-backend/middlewares"
	"workforce-backend/models"

	"github.com/gofiber/fiber/v2"
)

type WorkOrderInput struct {
	Code        string     `json:"code" validate:"required"`
	Description string     `json:"description"`
	ClientID    uint       `json:"client_id" validate:"required"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

func CreateWorkOrder(c *fiber.Ctx) error {
	var input WorkOrderInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	db, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var client models.Client
	if err := db.First(&client, input.ClientID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "client not found")
	}

	order := models.WorkOrder{
		Code:        input.Code,
		Description: input.Description,
		ClientID:    input.ClientID,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	}
	if err := db.Create(&order).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create work order")
	}
	return c.Status(201).JSON(order)
}

func GetWorkOrders(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var orders []models.WorkOrder
	db.Preload("Client").Find(&orders)
	return c.JSON(fiber.Map{
		"work_orders": orders,
		"message":     "success",
	})
}

func GetWorkOrder(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid work order id")
	}

	db, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var order models.WorkOrder
	if err := db.Preload("Client").First(&order, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "work order not found")
	}

	var roster []models.WorkOrderCollaborator
	db.Preload("Collaborator").Preload("Assignment").
		Where("work_order_id = ?", id).Find(&roster)

	return c.JSON(fiber.Map{
		"work_order": order,
		"roster":     roster,
	})
}

type RosterInput struct {
	CollaboratorID uint `json:"collaborator_id" validate:"required"`
	AssignmentID   uint `json:"assignment_id" validate:"required"`
}

// AddRosterEntry assigns a collaborator to a work order for one
// assignment-type.
func AddRosterEntry(c *fiber.Ctx) error {
	orderID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid work order id")
	}

	var input RosterInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	db, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var order models.WorkOrder
	if err := db.First(&order, orderID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "work order not found")
	}
	var collaborator models.Collaborator
	if err := db.First(&collaborator, input.CollaboratorID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "collaborator not found")
	}
	var assignment models.Assignment
	if err := db.First(&assignment, input.AssignmentID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "assignment not found")
	}

	entry := models.WorkOrderCollaborator{
		WorkOrderID:    uint(orderID),
		CollaboratorID: input.CollaboratorID,
		AssignmentID:   input.AssignmentID,
	}
	if err := db.Create(&entry).Error; err != nil {
		return fiber.NewError(fiber.StatusConflict, "collaborator already on roster for this assignment")
	}
	return c.Status(201).JSON(entry)
}
