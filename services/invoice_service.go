package services

import (
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"workforce-backend/models"
	"workforce-backend/utils"
)

// InvoiceService builds and maintains invoices for (collaborator, work order)
// pairs. Recalculation is a pure function of the current attendance, break and
// pricing state, so re-running it always converges to the same totals.
type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db}
}

// shift is the hours derivation for one pair: resolved instants plus net
// worked hours after break deduction.
type shift struct {
	CheckInAt  time.Time
	CheckOutAt time.Time
	NetHours   float64
}

// computeShift derives worked hours from a check-in/check-out pair. The
// check-in's creation timestamp anchors every wall-clock string to a calendar
// date; the check-out and each break end are independently rolled over to the
// next day when they land at or before their start. Net hours floor at zero.
func computeShift(checkIn, checkOut models.CheckRecord) (shift, error) {
	anchor := checkIn.CreatedAt

	start, err := ResolveInstant(anchor, checkIn.Time)
	if err != nil {
		return shift{}, err
	}
	end, err := ResolveInstant(anchor, checkOut.Time)
	if err != nil {
		return shift{}, err
	}
	end = RollOverIfNeeded(start, end)

	total := HoursBetween(start, end)

	var breakHours float64
	for _, b := range checkIn.Breaks {
		bStart, err := ResolveInstant(anchor, b.StartTime)
		if err != nil {
			return shift{}, err
		}
		bEnd, err := ResolveInstant(anchor, b.EndTime)
		if err != nil {
			return shift{}, err
		}
		bEnd = RollOverIfNeeded(bStart, bEnd)
		breakHours += HoursBetween(bStart, bEnd)
	}

	net := total - breakHours
	if net < 0 {
		net = 0
	}
	return shift{CheckInAt: start, CheckOutAt: end, NetHours: net}, nil
}

// buildLine computes one invoice line's amounts: regular pay capped at
// RegularHoursCap per side, plus every applicable surcharge tier on top.
func buildLine(assignmentID uint, assignmentName string, sh shift, rateCompany, rateCollaborator float64, rules []models.SurchargeRule) models.InvoiceAssignment {
	regular := RegularHours(sh.NetHours)

	line := models.InvoiceAssignment{
		AssignmentID:              assignmentID,
		AssignmentName:            assignmentName,
		CheckInAt:                 sh.CheckInAt,
		CheckOutAt:                sh.CheckOutAt,
		HoursWorked:               sh.NetHours,
		HourlyRateCompany:         rateCompany,
		HourlyRateCollaborator:    rateCollaborator,
		RegularAmountCompany:      utils.Round2(regular * rateCompany),
		RegularAmountCollaborator: utils.Round2(regular * rateCollaborator),
	}

	line.TotalAmountCompany = line.RegularAmountCompany
	line.TotalAmountCollaborator = line.RegularAmountCollaborator

	for _, rule := range rules {
		hours := ApplicableHours(sh.NetHours, rule.MinHour, rule.MaxHour)
		if hours <= 0 {
			continue
		}
		line.TotalAmountCompany += utils.Round2(hours * rateCompany * rule.Percentage)
		line.TotalAmountCollaborator += utils.Round2(hours * rateCollaborator * rule.Percentage)
		line.SurchargeDetails = append(line.SurchargeDetails, models.SurchargeDetail{
			SurchargeRuleID: rule.Id,
			RuleName:        rule.Name,
			HoursApplied:    hours,
			Percentage:      rule.Percentage,
		})
	}

	line.TotalAmountCompany = utils.Round2(line.TotalAmountCompany)
	line.TotalAmountCollaborator = utils.Round2(line.TotalAmountCollaborator)
	return line
}

// loadCheckPair fetches both check records for a pair, breaks preloaded on the
// check-in. ok is false when either side is missing (attendance not complete).
func (s *InvoiceService) loadCheckPair(collaboratorID, workOrderID uint) (checkIn, checkOut models.CheckRecord, ok bool, err error) {
	err = s.db.Preload("Breaks").
		Where("collaborator_id = ? AND work_order_id = ? AND kind = ?", collaboratorID, workOrderID, models.CheckKindIn).
		First(&checkIn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return checkIn, checkOut, false, nil
		}
		return checkIn, checkOut, false, err
	}

	err = s.db.
		Where("collaborator_id = ? AND work_order_id = ? AND kind = ?", collaboratorID, workOrderID, models.CheckKindOut).
		First(&checkOut).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return checkIn, checkOut, false, nil
		}
		return checkIn, checkOut, false, err
	}

	return checkIn, checkOut, true, nil
}

// orderedRules loads the surcharge table in ascending minimum-hour order.
func (s *InvoiceService) orderedRules() ([]models.SurchargeRule, error) {
	var rules []models.SurchargeRule
	if err := s.db.Order("min_hour asc").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

// CreateInvoicesForUser builds one invoice per (collaborator, work order) pair
// that has a complete check-in/check-out and no live invoice yet. Passing
// workOrderIDs restricts the candidate orders. Already-invoiced and incomplete
// pairs are skipped, never duplicated; an empty result is valid. One pair's
// failure is logged and contained — the remaining pairs still run.
func (s *InvoiceService) CreateInvoicesForUser(userID uint, workOrderIDs []uint) ([]models.Invoice, error) {
	var collaborator models.Collaborator
	if err := s.db.First(&collaborator, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rules, err := s.orderedRules()
	if err != nil {
		return nil, err
	}

	q := s.db.Preload("Assignment").Where("collaborator_id = ?", userID)
	if len(workOrderIDs) > 0 {
		q = q.Where("work_order_id IN ?", workOrderIDs)
	}
	var roster []models.WorkOrderCollaborator
	if err := q.Order("work_order_id asc, assignment_id asc").Find(&roster).Error; err != nil {
		return nil, err
	}

	// Group roster rows by work order, keeping first-seen order.
	byOrder := make(map[uint][]models.WorkOrderCollaborator)
	var orderIDs []uint
	for _, row := range roster {
		if _, seen := byOrder[row.WorkOrderID]; !seen {
			orderIDs = append(orderIDs, row.WorkOrderID)
		}
		byOrder[row.WorkOrderID] = append(byOrder[row.WorkOrderID], row)
	}

	created := []models.Invoice{}
	for _, orderID := range orderIDs {
		invoice, built, err := s.createInvoiceForPair(userID, orderID, byOrder[orderID], rules)
		if err != nil {
			log.Printf("invoice creation for collaborator %d, work order %d failed: %v", userID, orderID, err)
			continue
		}
		if built {
			created = append(created, invoice)
		}
	}
	return created, nil
}

// createInvoiceForPair runs the create state machine for one pair. built is
// false on the skip outcomes: incomplete attendance or an existing live
// invoice.
func (s *InvoiceService) createInvoiceForPair(userID, workOrderID uint, roster []models.WorkOrderCollaborator, rules []models.SurchargeRule) (models.Invoice, bool, error) {
	var invoice models.Invoice

	checkIn, checkOut, ok, err := s.loadCheckPair(userID, workOrderID)
	if err != nil {
		return invoice, false, err
	}
	if !ok {
		return invoice, false, nil
	}

	var existing int64
	err = s.db.Model(&models.Invoice{}).
		Where("collaborator_id = ? AND work_order_id = ? AND deleted = ?", userID, workOrderID, false).
		Count(&existing).Error
	if err != nil {
		return invoice, false, err
	}
	if existing > 0 {
		return invoice, false, nil
	}

	var workOrder models.WorkOrder
	if err := s.db.First(&workOrder, workOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invoice, false, ErrNotFound
		}
		return invoice, false, err
	}

	sh, err := computeShift(checkIn, checkOut)
	if err != nil {
		return invoice, false, err
	}

	invoice = models.Invoice{
		CollaboratorID:   userID,
		WorkOrderID:      workOrderID,
		TotalHoursWorked: sh.NetHours,
	}

	for _, row := range roster {
		rateCollaborator, err := ResolveCollaboratorRate(s.db, userID, row.Assignment)
		if err != nil {
			return invoice, false, err
		}
		rateCompany, err := ResolveCompanyRate(s.db, workOrder.ClientID, row.AssignmentID)
		if err != nil {
			return invoice, false, err
		}

		line := buildLine(row.AssignmentID, row.Assignment.Title, sh, rateCompany, rateCollaborator, rules)
		invoice.TotalAmountCompany += line.RegularAmountCompany
		invoice.TotalAmountCollaborator += line.RegularAmountCollaborator
		invoice.TotalWithSurchargeCompany += line.TotalAmountCompany
		invoice.TotalWithSurchargeCollaborator += line.TotalAmountCollaborator
		invoice.Lines = append(invoice.Lines, line)
	}

	invoice.TotalAmountCompany = utils.Round2(invoice.TotalAmountCompany)
	invoice.TotalAmountCollaborator = utils.Round2(invoice.TotalAmountCollaborator)
	invoice.TotalWithSurchargeCompany = utils.Round2(invoice.TotalWithSurchargeCompany)
	invoice.TotalWithSurchargeCollaborator = utils.Round2(invoice.TotalWithSurchargeCollaborator)

	// Invoice plus nested lines and details land in one transaction; a failed
	// pair leaves nothing behind.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&invoice).Error
	})
	if err != nil {
		return models.Invoice{}, false, err
	}
	return invoice, true, nil
}

// RecalculateAndUpdateInvoice re-derives an existing invoice from the current
// attendance, break, rule and pricing state, reproducing the creation math
// exactly. Rates are re-resolved, not reused from the stored lines, so pricing
// edits take effect. Each line's surcharge details are replaced wholesale. A
// pair whose attendance became incomplete is skipped without error; the
// invoice keeps its last computed state.
func (s *InvoiceService) RecalculateAndUpdateInvoice(invoiceID, userID, workOrderID uint) error {
	var invoice models.Invoice
	err := s.db.Preload("Lines").First(&invoice, invoiceID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	rules, err := s.orderedRules()
	if err != nil {
		return err
	}

	checkIn, checkOut, ok, err := s.loadCheckPair(userID, workOrderID)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	var workOrder models.WorkOrder
	if err := s.db.First(&workOrder, workOrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	sh, err := computeShift(checkIn, checkOut)
	if err != nil {
		return err
	}

	type lineUpdate struct {
		id       uint
		computed models.InvoiceAssignment
	}
	updates := make([]lineUpdate, 0, len(invoice.Lines))

	var totalCompany, totalCollaborator, withSurchargeCompany, withSurchargeCollaborator float64
	for _, line := range invoice.Lines {
		var assignment models.Assignment
		if err := s.db.First(&assignment, line.AssignmentID).Error; err != nil {
			return err
		}
		rateCollaborator, err := ResolveCollaboratorRate(s.db, userID, assignment)
		if err != nil {
			return err
		}
		rateCompany, err := ResolveCompanyRate(s.db, workOrder.ClientID, line.AssignmentID)
		if err != nil {
			return err
		}

		computed := buildLine(line.AssignmentID, assignment.Title, sh, rateCompany, rateCollaborator, rules)
		totalCompany += computed.RegularAmountCompany
		totalCollaborator += computed.RegularAmountCollaborator
		withSurchargeCompany += computed.TotalAmountCompany
		withSurchargeCollaborator += computed.TotalAmountCollaborator
		updates = append(updates, lineUpdate{id: line.ID, computed: computed})
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			// Stale tier rows must never survive a rule change: delete all,
			// insert the freshly computed set.
			if err := tx.Where("invoice_assignment_id = ?", u.id).Delete(&models.SurchargeDetail{}).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.InvoiceAssignment{}).Where("id = ?", u.id).Updates(map[string]any{
				"assignment_name":             u.computed.AssignmentName,
				"check_in_at":                 u.computed.CheckInAt,
				"check_out_at":                u.computed.CheckOutAt,
				"hours_worked":                u.computed.HoursWorked,
				"hourly_rate_company":         u.computed.HourlyRateCompany,
				"hourly_rate_collaborator":    u.computed.HourlyRateCollaborator,
				"regular_amount_company":      u.computed.RegularAmountCompany,
				"regular_amount_collaborator": u.computed.RegularAmountCollaborator,
				"total_amount_company":        u.computed.TotalAmountCompany,
				"total_amount_collaborator":   u.computed.TotalAmountCollaborator,
			}).Error; err != nil {
				return err
			}
			for _, detail := range u.computed.SurchargeDetails {
				detail.InvoiceAssignmentID = u.id
				if err := tx.Create(&detail).Error; err != nil {
					return err
				}
			}
		}

		return tx.Model(&models.Invoice{}).Where("id = ?", invoiceID).Updates(map[string]any{
			"total_hours_worked":                sh.NetHours,
			"total_amount_company":              utils.Round2(totalCompany),
			"total_amount_collaborator":         utils.Round2(totalCollaborator),
			"total_with_surcharge_company":      utils.Round2(withSurchargeCompany),
			"total_with_surcharge_collaborator": utils.Round2(withSurchargeCollaborator),
			"updated_at":                        time.Now().UTC(),
		}).Error
	})
}

// UpdateInvoicesByCheckRecord is the attendance-event hook: it resolves the
// mutated record to its (collaborator, work order) pair, then creates the
// missing invoice or recalculates every live one. Attendance handlers call it
// after their own write commits and only log the returned error — a failed
// recalculation must never surface to the attendance API's caller.
func (s *InvoiceService) UpdateInvoicesByCheckRecord(checkRecordID uint) error {
	var record models.CheckRecord
	if err := s.db.First(&record, checkRecordID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var invoices []models.Invoice
	err := s.db.
		Where("collaborator_id = ? AND work_order_id = ? AND deleted = ?", record.CollaboratorID, record.WorkOrderID, false).
		Find(&invoices).Error
	if err != nil {
		return err
	}

	if len(invoices) == 0 {
		_, err := s.CreateInvoicesForUser(record.CollaboratorID, []uint{record.WorkOrderID})
		return err
	}

	for _, invoice := range invoices {
		if err := s.RecalculateAndUpdateInvoice(invoice.ID, record.CollaboratorID, record.WorkOrderID); err != nil {
			// Contained per invoice: the next triggering event converges it.
			log.Printf("recalculation of invoice %d failed: %v", invoice.ID, err)
		}
	}
	return nil
}

// AssignInvoiceNumber sets an invoice's number. A different live invoice
// already holding the number is a conflict.
func (s *InvoiceService) AssignInvoiceNumber(invoiceID uint, number string) (models.Invoice, error) {
	var invoice models.Invoice
	if err := s.db.First(&invoice, invoiceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invoice, ErrNotFound
		}
		return invoice, err
	}

	var holders int64
	err := s.db.Model(&models.Invoice{}).
		Where("invoice_number = ? AND id <> ? AND deleted = ?", number, invoiceID, false).
		Count(&holders).Error
	if err != nil {
		return invoice, err
	}
	if holders > 0 {
		return invoice, ErrConflict
	}

	if err := s.db.Model(&invoice).Update("invoice_number", number).Error; err != nil {
		return invoice, err
	}
	invoice.InvoiceNumber = number
	return invoice, nil
}

// SoftDeleteInvoice flags the invoice deleted. The pair becomes eligible for a
// fresh Create afterwards.
func (s *InvoiceService) SoftDeleteInvoice(id uint) error {
	var invoice models.Invoice
	if err := s.db.First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.db.Model(&invoice).Update("deleted", true).Error
}

// HardDeleteInvoice removes the invoice and its children, explicitly child
// before parent: surcharge details, then lines, then the invoice row.
func (s *InvoiceService) HardDeleteInvoice(id uint) error {
	var invoice models.Invoice
	if err := s.db.First(&invoice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var lineIDs []uint
		if err := tx.Model(&models.InvoiceAssignment{}).Where("invoice_id = ?", id).Pluck("id", &lineIDs).Error; err != nil {
			return err
		}
		if len(lineIDs) > 0 {
			if err := tx.Where("invoice_assignment_id IN ?", lineIDs).Delete(&models.SurchargeDetail{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceAssignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Invoice{}, id).Error
	})
}

// GetInvoice loads one live invoice with its lines, details and display
// associations.
func (s *InvoiceService) GetInvoice(id uint) (models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.
		Preload("Lines.SurchargeDetails").
		Preload("Collaborator").
		Preload("WorkOrder.Client").
		Where("deleted = ?", false).
		First(&invoice, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invoice, ErrNotFound
		}
		return invoice, err
	}
	return invoice, nil
}
