package controllers

import (
	"workforce-backend/database"
	"workforce-backend/middlewares"
	"workforce-backend/models"
	"workforce-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ClientInput struct {
	CompanyName string `json:"company_name" validate:"required"`
	Address     string `json:"address" validate:"required"`
	City        string `json:"city" validate:"required"`
	Country     string `json:"country" validate:"required"`
	Zip         string `json:"zip" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number"`
	ContactName string `json:"contact_name"`
}

func CreateClient(c *fiber.Ctx) error {
	var input ClientInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizeDTO(&input)

	db, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	client := models.Client{
		CompanyName: input.CompanyName,
		Address:     input.Address,
		City:        input.City,
		Country:     input.Country,
		Zip:         input.Zip,
		Email:       input.Email,
		PhoneNumber: input.PhoneNumber,
		ContactName: input.ContactName,
		Active:      true,
	}
	if err := db.Create(&client).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create client")
	}
	return c.Status(201).JSON(client)
}

func GetClients(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var clients []models.Client
	db.Find(&clients)
	return c.JSON(fiber.Map{
		"clients": clients,
		"message": "success",
	})
}

func GetClient(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid client id")
	}

	db, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var client models.Client
	if err := db.First(&client, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "client not found")
	}
	return c.JSON(client)
}

type ClientUpdateInput struct {
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Country     *string `json:"country"`
	Zip         *string `json:"zip"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number"`
	ContactName *string `json:"contact_name"`
}

func UpdateClient(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid client id")
	}

	var input ClientUpdateInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&input)

	db, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var client models.Client
	if err := db.First(&client, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "client not found")
	}

	updates := utils.UpdatesFromPtrDTO(&input)
	if len(updates) > 0 {
		if err := db.Model(&client).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update client")
		}
	}
	return c.JSON(client)
}

type ClientRateInput struct {
	AssignmentID uint    `json:"assignment_id" validate:"required"`
	HourlyPrice  float64 `json:"hourly_price" validate:"gte=0"`
}

// SetClientRate upserts the hourly price charged to a client for one
// assignment-type.
func SetClientRate(c *fiber.Ctx) error {
	clientID, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid client id")
	}

	var input ClientRateInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	db, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var client models.Client
	if err := db.First(&client, clientID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "client not found")
	}
	var assignment models.Assignment
	if err := db.First(&assignment, input.AssignmentID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "assignment not found")
	}

	rate := models.ClientRate{
		ClientID:     uint(clientID),
		AssignmentID: input.AssignmentID,
		HourlyPrice:  utils.Round2(input.HourlyPrice),
	}
	existing := models.ClientRate{}
	err = db.Where("client_id = ? AND assignment_id = ?", clientID, input.AssignmentID).First(&existing).Error
	if err == nil {
		rate.Id = existing.Id
		if err := db.Model(&existing).Update("hourly_price", rate.HourlyPrice).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update rate")
		}
		return c.JSON(rate)
	}
	if err := db.Create(&rate).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create rate")
	}
	return c.Status(201).JSON(rate)
}
