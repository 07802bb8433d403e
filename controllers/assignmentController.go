package controllers

import (
	"workforce-backend/database"
	"workforce-backend/middlewares"
	"workforce-backend/models"
	"workforce-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type AssignmentInput struct {
	Title          string  `json:"title" validate:"required"`
	Description    string  `json:"description"`
	BaseHourlyCost float64 `json:"base_hourly_cost" validate:"gte=0"`
}

// CreateAssignments batch-creates assignment-types.
func CreateAssignments(c *fiber.Ctx) error {
	var inputs []AssignmentInput
	if err := c.BodyParser(&inputs); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	for i := range inputs {
		if err := middlewares.ValidateStruct(&inputs[i]); err != nil {
			return err
		}
		utils.NormalizeDTO(&inputs[i])
	}

	db, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var created []models.Assignment
	for _, input := range inputs {
		assignment := models.Assignment{
			Title:          input.Title,
			Description:    input.Description,
			BaseHourlyCost: input.BaseHourlyCost,
			Active:         true,
		}
		if err := db.Create(&assignment).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not create assignment")
		}
		created = append(created, assignment)
	}
	return c.Status(201).JSON(created)
}

func GetAssignments(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var assignments []models.Assignment
	db.Find(&assignments)
	return c.JSON(fiber.Map{
		"assignments": assignments,
		"message":     "success",
	})
}

type AssignmentUpdateInput struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	BaseHourlyCost *float64 `json:"base_hourly_cost" validate:"omitempty,gte=0"`
}

func UpdateAssignment(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid assignment id")
	}

	var input AssignmentUpdateInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&input)

	db, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var assignment models.Assignment
	if err := db.First(&assignment, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "assignment not found")
	}

	updates := utils.UpdatesFromPtrDTO(&input)
	if len(updates) > 0 {
		if err := db.Model(&assignment).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update assignment")
		}
	}
	return c.JSON(assignment)
}
