package controllers

import (
	"encoding/json"
	"log"
	"time"

	"workforce-backend/database"
	"workforce-backend/middlewares"
	"workforce-backend/models"
	"workforce-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// triggerInvoiceUpdate runs the invoice hook for a check record after the
// attendance write committed. Best-effort: failures are logged and never
// surface to the attendance caller.
func triggerInvoiceUpdate(checkRecordID uint) {
	svc := services.NewInvoiceService(database.DB)
	if err := svc.UpdateInvoicesByCheckRecord(checkRecordID); err != nil {
		log.Printf("invoice update for check record %d failed: %v", checkRecordID, err)
	}
}

type CheckInput struct {
	CollaboratorID uint     `json:"collaborator_id" validate:"required"`
	WorkOrderID    uint     `json:"work_order_id" validate:"required"`
	Time           string   `json:"time" validate:"required"`
	InitialStatus  string   `json:"initial_status"`
	EvidenceURLs   []string `json:"evidence_urls"`
}

func createCheckRecord(c *fiber.Ctx, kind string) error {
	var input CheckInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	if _, err := services.ResolveInstant(time.Now().UTC(), input.Time); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid time, want HH:MM")
	}

	var collaborator models.Collaborator
	if err := database.DB.First(&collaborator, input.CollaboratorID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "collaborator not found")
	}
	var order models.WorkOrder
	if err := database.DB.First(&order, input.WorkOrderID).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "work order not found")
	}

	record := models.CheckRecord{
		CollaboratorID: input.CollaboratorID,
		WorkOrderID:    input.WorkOrderID,
		Kind:           kind,
		Time:           input.Time,
		InitialStatus:  input.InitialStatus,
	}
	if len(input.EvidenceURLs) > 0 {
		blob, err := json.Marshal(input.EvidenceURLs)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid evidence urls")
		}
		record.EvidenceURLs = datatypes.JSON(blob)
	}

	// Attendance writes commit on their own, decoupled from the request TX,
	// so the invoice hook sees committed data.
	tx := database.DB.Begin()
	if err := tx.Create(&record).Error; err != nil {
		tx.Rollback()
		// At most one record per (collaborator, work order, kind).
		return fiber.NewError(fiber.StatusConflict, "check record already exists for this pair")
	}
	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not save check record")
	}

	triggerInvoiceUpdate(record.ID)

	return c.Status(201).JSON(record)
}

func CheckIn(c *fiber.Ctx) error {
	return createCheckRecord(c, models.CheckKindIn)
}

func CheckOut(c *fiber.Ctx) error {
	return createCheckRecord(c, models.CheckKindOut)
}

type EvidenceInput struct {
	EvidenceURLs []string `json:"evidence_urls" validate:"required,min=1,dive,url"`
}

// AttachEvidence is the only permitted mutation of an existing check record.
func AttachEvidence(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid check record id")
	}

	var input EvidenceInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}

	var record models.CheckRecord
	if err := database.DB.First(&record, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "check record not found")
	}

	blob, err := json.Marshal(input.EvidenceURLs)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid evidence urls")
	}
	if err := database.DB.Model(&record).Update("evidence_urls", datatypes.JSON(blob)).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not attach evidence")
	}
	return c.JSON(record)
}

// DeleteCheckRecord removes a check record and its breaks. No invoice hook
// fires: with an incomplete pair, recalculation would skip anyway and the
// existing invoice keeps its last computed state.
func DeleteCheckRecord(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid check record id")
	}

	var record models.CheckRecord
	if err := database.DB.First(&record, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "check record not found")
	}

	tx := database.DB.Begin()
	if err := tx.Where("check_record_id = ?", record.ID).Delete(&models.BreakPeriod{}).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete breaks")
	}
	if err := tx.Delete(&record).Error; err != nil {
		tx.Rollback()
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete check record")
	}
	if err := tx.Commit().Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete check record")
	}
	return c.JSON(fiber.Map{"message": "success"})
}

type BreakInput struct {
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	Reason    string `json:"reason"`
}

func validBreakTimes(input BreakInput) bool {
	now := time.Now().UTC()
	if _, err := services.ResolveInstant(now, input.StartTime); err != nil {
		return false
	}
	if _, err := services.ResolveInstant(now, input.EndTime); err != nil {
		return false
	}
	return true
}

// CreateBreak attaches a break period to a check-in record.
func CreateBreak(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid check record id")
	}

	var input BreakInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	if !validBreakTimes(input) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid break times, want HH:MM")
	}

	var record models.CheckRecord
	if err := database.DB.First(&record, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "check record not found")
	}
	if record.Kind != models.CheckKindIn {
		return fiber.NewError(fiber.StatusBadRequest, "breaks attach to the check-in record")
	}

	brk := models.BreakPeriod{
		CheckRecordID: record.ID,
		StartTime:     input.StartTime,
		EndTime:       input.EndTime,
		Reason:        input.Reason,
	}
	if err := database.DB.Create(&brk).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create break")
	}

	triggerInvoiceUpdate(record.ID)

	return c.Status(201).JSON(brk)
}

func UpdateBreak(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid break id")
	}

	var input BreakInput
	if err := middlewares.BindAndValidate(c, &input); err != nil {
		return err
	}
	if !validBreakTimes(input) {
		return fiber.NewError(fiber.StatusBadRequest, "invalid break times, want HH:MM")
	}

	var brk models.BreakPeriod
	if err := database.DB.First(&brk, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "break not found")
	}

	if err := database.DB.Model(&brk).Updates(map[string]any{
		"start_time": input.StartTime,
		"end_time":   input.EndTime,
		"reason":     input.Reason,
	}).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not update break")
	}

	triggerInvoiceUpdate(brk.CheckRecordID)

	return c.JSON(brk)
}

func DeleteBreak(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid break id")
	}

	var brk models.BreakPeriod
	if err := database.DB.First(&brk, id).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "break not found")
	}
	if err := database.DB.Delete(&brk).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "could not delete break")
	}

	triggerInvoiceUpdate(brk.CheckRecordID)

	return c.JSON(fiber.Map{"message": "success"})
}
