package controllers

import (
	"workforce-backend/database"
	"workforce-backend/middlewares"
	"workforce-backend/models"
	"workforce-backend/utils"

	"github.com/gofiber/fiber/v2"
)

type SurchargeRuleInput struct {
	Name       string   `json:"name" validate:"required"`
	Percentage float64  `json:"percentage" validate:"gte=0"`
	MinHour    float64  `json:"min_hour" validate:"gte=0"`
	MaxHour    *float64 `json:"max_hour" validate:"omitempty,gtfield=MinHour"`
}

func CreateSurchargeRule(c *fiber.Ctx) error {
	var input SurchargeRuleInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	db, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	rule := models.SurchargeRule{
		Name:       input.Name,
		Percentage: input.Percentage,
		MinHour:    input.MinHour,
		MaxHour:    input.MaxHour,
	}
	if err := db.Create(&rule).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create surcharge rule")
	}
	return c.Status(201).JSON(rule)
}

// GetSurchargeRules returns the rule table in evaluation order.
func GetSurchargeRules(c *fiber.Ctx) error {
	db, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var rules []models.SurchargeRule
	db.Order("min_hour asc").Find(&rules)
	return c.JSON(fiber.Map{
		"rules":   rules,
		"message": "success",
	})
}

type SurchargeRuleUpdateInput struct {
	Name       *string  `json:"name"`
	Percentage *float64 `json:"percentage" validate:"omitempty,gte=0"`
	MinHour    *float64 `json:"min_hour" validate:"omitempty,gte=0"`
	MaxHour    *float64 `json:"max_hour"`
}

func UpdateSurchargeRule(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid rule id")
	}

	var input SurchargeRuleUpdateInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	db, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var rule models.SurchargeRule
	if err := db.First(&rule, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "surcharge rule not found")
	}

	updates := utils.UpdatesFromPtrDTO(&input)
	if len(updates) > 0 {
		if err := db.Model(&rule).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update surcharge rule")
		}
	}
	return c.JSON(rule)
}

func DeleteSurchargeRule(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid rule id")
	}

	db, err := database.FromCtx(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	var rule models.SurchargeRule
	if err := db.First(&rule, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "surcharge rule not found")
	}
	if err := db.Delete(&rule).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not delete surcharge rule")
	}
	return c.JSON(fiber.Map{"message": "success"})
}
