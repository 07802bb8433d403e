package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"workforce-backend/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Client{},
		&models.Collaborator{},
		&models.Assignment{},
		&models.WorkOrder{},
		&models.WorkOrderCollaborator{},
		&models.CheckRecord{},
		&models.BreakPeriod{},
		&models.SurchargeRule{},
		&models.CollaboratorRate{},
		&models.ClientRate{},
		&models.Invoice{},
		&models.InvoiceAssignment{},
		&models.SurchargeDetail{},
	))
	return db
}

// fixture is one collaborator rostered on one work order for one assignment
// with a $10/h base cost and no client pricing.
type fixture struct {
	db           *gorm.DB
	svc          *InvoiceService
	collaborator models.Collaborator
	client       models.Client
	order        models.WorkOrder
	assignment   models.Assignment
}

var testAnchor = time.Date(2024, 5, 10, 8, 5, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	db := setupTestDB(t)
	f := &fixture{db: db, svc: NewInvoiceService(db)}

	f.client = models.Client{CompanyName: "Acme Logistics", Address: "Dock 4", City: "Hamburg", Country: "DE", Zip: "20457", Email: "ops@acme.test"}
	require.NoError(t, db.Create(&f.client).Error)

	f.collaborator = models.Collaborator{FirstName: "Jonas", LastName: "Weber", Email: "jonas@crew.test", Active: true}
	require.NoError(t, db.Create(&f.collaborator).Error)

	f.assignment = models.Assignment{Title: "Forklift Operator", BaseHourlyCost: 10, Active: true}
	require.NoError(t, db.Create(&f.assignment).Error)

	f.order = models.WorkOrder{Code: "WO-1001", ClientID: f.client.Id, StartDate: testAnchor}
	require.NoError(t, db.Create(&f.order).Error)

	roster := models.WorkOrderCollaborator{WorkOrderID: f.order.ID, CollaboratorID: f.collaborator.Id, AssignmentID: f.assignment.Id}
	require.NoError(t, db.Create(&roster).Error)

	return f
}

func (f *fixture) addCheck(t *testing.T, kind, hhmm string) models.CheckRecord {
	rec := models.CheckRecord{
		CollaboratorID: f.collaborator.Id,
		WorkOrderID:    f.order.ID,
		Kind:           kind,
		Time:           hhmm,
		CreatedAt:      testAnchor,
	}
	require.NoError(t, f.db.Create(&rec).Error)
	return rec
}

func (f *fixture) addRule(t *testing.T, name string, percentage, minHour float64, maxHour *float64) models.SurchargeRule {
	rule := models.SurchargeRule{Name: name, Percentage: percentage, MinHour: minHour, MaxHour: maxHour}
	require.NoError(t, f.db.Create(&rule).Error)
	return rule
}

func (f *fixture) createInvoices(t *testing.T) []models.Invoice {
	invoices, err := f.svc.CreateInvoicesForUser(f.collaborator.Id, nil)
	require.NoError(t, err)
	return invoices
}

func TestCreateInvoiceSimpleShift(t *testing.T) {
	f := newFixture(t)
	f.addCheck(t, models.CheckKindIn, "08:00")
	f.addCheck(t, models.CheckKindOut, "17:00")
	// Tier floor above the 9 worked hours: never reached.
	f.addRule(t, "Overtime", 0.5, 9.5, nil)

	invoices := f.createInvoices(t)
	require.Len(t, invoices, 1)

	inv := invoices[0]
	assert.InDelta(t, 9.0, inv.TotalHoursWorked, 1e-9)
	assert.InDelta(t, 80.0, inv.TotalAmountCollaborator, 1e-9) // min(9,8) * 10
	assert.InDelta(t, 80.0, inv.TotalWithSurchargeCollaborator, 1e-9)
	assert.InDelta(t, 0.0, inv.TotalAmountCompany, 1e-9) // no client pricing configured

	require.Len(t, inv.Lines, 1)
	line := inv.Lines[0]
	assert.Equal(t, f.assignment.Id, line.AssignmentID)
	assert.InDelta(t, 9.0, line.HoursWorked, 1e-9)
	assert.InDelta(t, 10.0, line.HourlyRateCollaborator, 1e-9)
	assert.InDelta(t, 80.0, line.RegularAmountCollaborator, 1e-9)
	assert.Empty(t, line.SurchargeDetails)
}

func TestCreateInvoiceOvernightShift(t *testing.T) {
	f := newFixture(t)
	f.addCheck(t, models.CheckKindIn, "22:00")
	f.addCheck(t, models.CheckKindOut, "06:00")

	invoices := f.createInvoices(t)
	require.Len(t, invoices, 1)
	assert.InDelta(t, 8.0, invoices[0].TotalHoursWorked, 1e-9)
}

func TestCreateInvoiceDeductsBreaks(t *testing.T) {
	f := newFixture(t)
	in := f.addCheck(t, models.CheckKindIn, "08:00")
	f.addCheck(t, models.CheckKindOut, "17:00")
	require.NoError(t, f.db.Create(&models.BreakPeriod{CheckRecordID: in.ID, StartTime: "12:00", EndTime: "12:30", Reason: "lunch"}).Error)

	invoices := f.createInvoices(t)
	require.Len(t, invoices, 1)
	assert.InDelta(t, 8.5, invoices[0].TotalHoursWorked, 1e-9)
}

func TestCreateInvoiceOvernightBreak(t *testing.T) {
	f := newFixture(t)
	in := f.addCheck(t, models.CheckKindIn, "22:00")
	f.addCheck(t, models.CheckKindOut, "06:00")
	// Break crosses midnight: end is numerically before start.
	require.NoError(t, f.db.Create(&models.BreakPeriod{CheckRecordID: in.ID, StartTime: "23:30", EndTime: "00:30"}).Error)

	invoices := f.createInvoices(t)
	require.Len(t, invoices, 1)
	assert.InDelta(t, 7.0, invoices[0].TotalHoursWorked, 1e-9)
}

func TestCreateInvoiceBreaksLongerThanShiftFloorAtZero(t *testing.T) {
	f := newFixture(t)
	in := f.addCheck(t, models.CheckKindIn, "08:00")
	f.addCheck(t, models.CheckKindOut, "09:00")
	require.NoError(t, f.db.Create(&models.BreakPeriod{CheckRecordID: in.ID, StartTime: "08:00", EndTime: "10:00"}).Error)

	invoices := f.createInvoices(t)
	require.Len(t, invoices, 1)
	assert.InDelta(t, 0.0, invoices[0].TotalHoursWorked, 1e-9)
	assert.InDelta(t, 0.0, invoices[0].TotalWithSurchargeCollaborator, 1e-9)
}

func TestCreateInvoiceAppliesSurchargeTier(t *testing.T) {
	f := newFixture(t)
	f.addCheck(t, models.CheckKindIn, "08:00")
	f.addCheck(t, models.CheckKindOut, "18:00") // 10 hours
	rule := f.addRule(t, "Overtime", 0.35, 8, nil)

	invoices := f.createInvoices(t)
	require.Len(t, invoices, 1)

	inv := invoices[0]
	assert.InDelta(t, 10.0, inv.TotalHoursWorked, 1e-9)
	// Regular base stays on the full 8 capped hours; tier pay comes on top.
	assert.InDelta(t, 80.0, inv.TotalAmountCollaborator, 1e-9)
	assert.InDelta(t, 87.0, inv.TotalWithSurchargeCollaborator, 1e-9) // 80 + 2*10*0.35

	require.Len(t, inv.Lines, 1)
	require.Len(t, inv.Lines[0].SurchargeDetails, 1)
	detail := inv.Lines[0].SurchargeDetails[0]
	assert.Equal(t, rule.Id, detail.SurchargeRuleID)
	assert.InDelta(t, 2.0, detail.HoursApplied, 1e-9)
	assert.InDelta(t, 0.35, detail.Percentage, 1e-9)
}

func TestCreateInvoiceMultipleAssignmentsShareHours(t *testing.T) {
	f := newFixture(t)
	second := models.Assignment{Title: "Warehouse Picker", BaseHourlyCost: 12, Active: true}
	require.NoError(t, f.db.Create(&second).Error)
	require.NoError(t, f.db.Create(&models.WorkOrderCollaborator{
		WorkOrderID: f.order.ID, CollaboratorID: f.collaborator.Id, AssignmentID: second.Id,
	}).Error)

	f.addCheck(t, models.CheckKindIn, "08:00")
	f.addCheck(t, models.CheckKindOut, "17:00")

	invoices := f.createInvoices(t)
	require.Len(t, invoices, 1)

	inv := invoices[0]
	require.Len(t, inv.Lines, 2)
	for _, line := range inv.Lines {
		assert.InDelta(t, inv.TotalHoursWorked, line.HoursWorked, 1e-9)
	}
	assert.InDelta(t, 80.0+96.0, inv.TotalAmountCollaborator, 1e-9)
}

func TestCreateInvoiceUsesRateOverrides(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Create(&models.CollaboratorRate{
		CollaboratorID: f.collaborator.Id, AssignmentID: f.assignment.Id, HourlyCost: 14,
	}).Error)
	require.NoError(t, f.db.Create(&models.ClientRate{
		ClientID: f.client.Id, AssignmentID: f.assignment.Id, HourlyPrice: 25,
	}).Error)

	f.addCheck(t, models.CheckKindIn, "08:00")
	f.addCheck(t, models.CheckKindOut, "16:00") // 8 hours

	invoices := f.createInvoices(t)
	require.Len(t, invoices, 1)
	assert.InDelta(t, 8*14.0, invoices[0].TotalAmountCollaborator, 1e-9)
	assert.InDelta(t, 8*25.0, invoices[0].TotalAmountCompany, 1e-9)
}

func TestCreateInvoicesSkipsIncompletePair(t *testing.T) {
	f := newFixture(t)
	f.addCheck(t, models.CheckKindIn, "08:00")
	// No check-out: nothing to invoice, and that is not an error.

	invoices := f.createInvoices(t)
	assert.Empty(t, invoices)
}

func TestCreateInvoicesIdempotent(t *testing.T) {
	f := newFixture(t)
	f.addCheck(t, models.CheckKindIn, "08:00")
	f.addCheck(t, models.CheckKindOut, "17:00")

	first := f.createInvoices(t)
	require.Len(t, first, 1)

	second := f.createInvoices(t)
	assert.Empty(t, second)

	var count int64
	require.NoError(t, f.db.Model(&models.Invoice{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateInvoicesUnknownCollaborator(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.CreateInvoicesForUser(9999, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRecalculationConverges(t *testing.T) {
	f := newFixture(t)
	f.addCheck(t, models.CheckKindIn, "08:00")
	f.addCheck(t, models.CheckKindOut, "18:00")
	f.addRule(t, "Overtime", 0.35, 8, nil)

	created := f.createInvoices(t)
	require.Len(t, created, 1)
	id := created[0].ID

	for i := 0; i < 3; i++ {
		require.NoError(t, f.svc.RecalculateAndUpdateInvoice(id, f.collaborator.Id, f.order.ID))
	}

	inv, err := f.svc.GetInvoice(id)
	require.NoError(t, err)
	assert.InDelta(t, 10.0, inv.TotalHoursWorked, 1e-9)
	assert.InDelta(t, 87.0, inv.TotalWithSurchargeCollaborator, 1e-9)

	// Details are replaced, never accumulated.
	var details int64
	require.NoError(t, f.db.Model(&models.SurchargeDetail{}).Count(&details).Error)
	assert.EqualValues(t, 1, details)
}

func TestRecalculationPicksUpCurrentPricing(t *testing.T) {
	f := newFixture(t)
	f.addCheck(t, models.CheckKindIn, "08:00")
	f.addCheck(t, models.CheckKindOut, "16:00")

	created := f.createInvoices(t)
	require.Len(t, created, 1)
	assert.InDelta(t, 80.0, created[0].TotalAmountCollaborator, 1e-9)

	// Pricing changes after creation; recalculation must use the new value.
	require.NoError(t, f.db.Create(&models.CollaboratorRate{
		CollaboratorID: f.collaborator.Id, AssignmentID: f.assignment.Id, HourlyCost: 20,
	}).Error)

	require.NoError(t, f.svc.RecalculateAndUpdateInvoice(created[0].ID, f.collaborator.Id, f.order.ID))

	inv, err := f.svc.GetInvoice(created[0].ID)
	require.NoError(t, err)
	assert.InDelta(t, 160.0, inv.TotalAmountCollaborator, 1e-9)
	require.Len(t, inv.Lines, 1)
	assert.InDelta(t, 20.0, inv.Lines[0].HourlyRateCollaborator, 1e-9)
}

func TestRecalculationSkipsWhenAttendanceIncomplete(t *testing.T) {
	f := newFixture(t)
	f.addCheck(t, models.CheckKindIn, "08:00")
	out := f.addCheck(t, models.CheckKindOut, "17:00")

	created := f.createInvoices(t)
	require.Len(t, created, 1)

	// Attendance deleted after the fact: the invoice keeps its last state.
	require.NoError(t, f.db.Delete(&out).Error)
	require.NoError(t, f.svc.RecalculateAndUpdateInvoice(created[0].ID, f.collaborator.Id, f.order.ID))

	inv, err := f.svc.GetInvoice(created[0].ID)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, inv.TotalHoursWorked, 1e-9)
}

func TestBreakEditTriggersRecalculationWithoutDuplicate(t *testing.T) {
	f := newFixture(t)
	in := f.addCheck(t, models.CheckKindIn, "08:00")
	f.addCheck(t, models.CheckKindOut, "17:00")

	created := f.createInvoices(t)
	require.Len(t, created, 1)
	assert.InDelta(t, 9.0, created[0].TotalHoursWorked, 1e-9)

	// The attendance hook after a break edit recalculates in place.
	require.NoError(t, f.db.Create(&models.BreakPeriod{CheckRecordID: in.ID, StartTime: "12:00", EndTime: "13:00"}).Error)
	require.NoError(t, f.svc.UpdateInvoicesByCheckRecord(in.ID))

	var count int64
	require.NoError(t, f.db.Model(&models.Invoice{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	inv, err := f.svc.GetInvoice(created[0].ID)
	require.NoError(t, err)
	assert.InDelta(t, 8.0, inv.TotalHoursWorked, 1e-9)
	assert.InDelta(t, 80.0, inv.TotalAmountCollaborator, 1e-9)
}

func TestUpdateInvoicesByCheckRecordCreatesWhenMissing(t *testing.T) {
	f := newFixture(t)
	f.addCheck(t, models.CheckKindIn, "08:00")
	out := f.addCheck(t, models.CheckKindOut, "17:00")

	require.NoError(t, f.svc.UpdateInvoicesByCheckRecord(out.ID))

	var count int64
	require.NoError(t, f.db.Model(&models.Invoice{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUpdateInvoicesByCheckRecordUnknownRecord(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.svc.UpdateInvoicesByCheckRecord(404), ErrNotFound)
}

func TestAssignInvoiceNumber(t *testing.T) {
	f := newFixture(t)
	f.addCheck(t, models.CheckKindIn, "08:00")
	f.addCheck(t, models.CheckKindOut, "17:00")
	created := f.createInvoices(t)
	require.Len(t, created, 1)

	inv, err := f.svc.AssignInvoiceNumber(created[0].ID, "INV-2024-001")
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-001", inv.InvoiceNumber)

	_, err = f.svc.AssignInvoiceNumber(9999, "INV-2024-002")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAssignInvoiceNumberConflict(t *testing.T) {
	f := newFixture(t)
	f.addCheck(t, models.CheckKindIn, "08:00")
	f.addCheck(t, models.CheckKindOut, "17:00")
	created := f.createInvoices(t)
	require.Len(t, created, 1)

	// A second invoice for another pair already holds the number.
	other := models.Invoice{CollaboratorID: f.collaborator.Id, WorkOrderID: f.order.ID + 1, InvoiceNumber: "INV-TAKEN"}
	require.NoError(t, f.db.Create(&other).Error)

	_, err := f.svc.AssignInvoiceNumber(created[0].ID, "INV-TAKEN")
	assert.ErrorIs(t, err, ErrConflict)

	// Re-assigning an invoice its own number is fine.
	_, err = f.svc.AssignInvoiceNumber(other.ID, "INV-TAKEN")
	assert.NoError(t, err)
}

func TestSoftDeleteFreesThePair(t *testing.T) {
	f := newFixture(t)
	f.addCheck(t, models.CheckKindIn, "08:00")
	f.addCheck(t, models.CheckKindOut, "17:00")
	created := f.createInvoices(t)
	require.Len(t, created, 1)

	require.NoError(t, f.svc.SoftDeleteInvoice(created[0].ID))

	_, err := f.svc.GetInvoice(created[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// The pair is eligible for a fresh create again.
	again := f.createInvoices(t)
	assert.Len(t, again, 1)
}

func TestHardDeleteRemovesChildren(t *testing.T) {
	f := newFixture(t)
	f.addCheck(t, models.CheckKindIn, "08:00")
	f.addCheck(t, models.CheckKindOut, "18:00")
	f.addRule(t, "Overtime", 0.35, 8, nil)
	created := f.createInvoices(t)
	require.Len(t, created, 1)

	require.NoError(t, f.svc.HardDeleteInvoice(created[0].ID))

	var invoices, lines, details int64
	require.NoError(t, f.db.Model(&models.Invoice{}).Count(&invoices).Error)
	require.NoError(t, f.db.Model(&models.InvoiceAssignment{}).Count(&lines).Error)
	require.NoError(t, f.db.Model(&models.SurchargeDetail{}).Count(&details).Error)
	assert.Zero(t, invoices)
	assert.Zero(t, lines)
	assert.Zero(t, details)

	assert.ErrorIs(t, f.svc.HardDeleteInvoice(created[0].ID), ErrNotFound)
}
