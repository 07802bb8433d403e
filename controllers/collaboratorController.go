package controllers

import (
	"workforce-backend/database"
	"workforce-backend/middlewares"
	"workforce-backend/models"
	"workforce-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type CollaboratorInput struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number"`
	DocumentID  string `json:"document_id"`
}

func CreateCollaborator(c *fiber.Ctx) error {
	var input CollaboratorInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	db, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	collaborator := models.Collaborator{
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		DocumentID:  input.DocumentID,
		Active:      true,
	}
	if err := db.Create(&collaborator).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create collaborator")
	}
	return c.Status(201).JSON(collaborator)
}

func GetCollaborators(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var collaborators []models.Collaborator
	db.Find(&collaborators)
	return c.JSON(fiber.Map{
		"collaborators": collaborators,
		"message":       "success",
	})
}

func GetCollaborator(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid collaborator id")
	}

	db, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var collaborator models.Collaborator
	if err := db.First(&collaborator, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "collaborator not found")
	}

	var rates []models.CollaboratorRate
	db.Where("collaborator_id = ?", id).Find(&rates)

	return c.JSON(fiber.Map{
		"collaborator": collaborator,
		"rates":        rates,
	})
}

type CollaboratorUpdateInput struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number"`
	DocumentID  *string `json:"document_id"`
}

func UpdateCollaborator(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid collaborator id")
	}

	var input CollaboratorUpdateInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&input)

	db, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var collaborator models.Collaborator
	if err := db.First(&collaborator, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "collaborator not found")
	}

	updates := utils.UpdatesFromPtrDTO(&input)
	if len(updates) > 0 {
		if err := db.Model(&collaborator).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update collaborator")
		}
	}
	return c.JSON(collaborator)
}

type CollaboratorRateInput struct {
	AssignmentID uint    `json:"assignment_id" validate:"required"`
	HourlyCost   float64 `json:"hourly_cost" validate:"gte=0"`
}

// SetCollaboratorRate upserts the hourly cost paid to a collaborator for one
// assignment-type, overriding the assignment's base cost.
func SetCollaboratorRate(c *fiber.Ctx) error {
	collaboratorID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid collaborator id")
	}

	var input CollaboratorRateInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	db, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var collaborator models.Collaborator
	if err := db.First(&collaborator, collaboratorID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "collaborator not found")
	}
	var assignment models.Assignment
	if err := db.First(&assignment, input.AssignmentID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "assignment not found")
	}

	rate := models.CollaboratorRate{
		CollaboratorID: uint(collaboratorID),
		AssignmentID:   input.AssignmentID,
		HourlyCost:     utils.Round2(input.HourlyCost),
	}
	existing := models.CollaboratorRate{}
	err = db.Where("collaborator_id = ? AND assignment_id = ?", collaboratorID, input.AssignmentID).First(&existing).Error
	if err == nil {
		rate.Id = existing.Id
		if err := db.Model(&existing).Update("hourly_cost", rate.HourlyCost).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update rate")
		}
		return c.JSON(rate)
	}
	if err := db.Create(&rate).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create rate")
	}
	return c.Status(201).JSON(rate)
}
