package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workforce-backend/models"
)

// seedListFixture creates two invoiced pairs: Jonas Weber on WO-1001 for Acme
// and Mia Krause on WO-2002 for Borealis.
func seedListFixture(t *testing.T) *fixture {
	f := newFixture(t)
	f.addCheck(t, models.CheckKindIn, "08:00")
	f.addCheck(t, models.CheckKindOut, "17:00")
	require.Len(t, f.createInvoices(t), 1)

	client2 := models.Client{CompanyName: "Borealis Freight", Address: "Pier 9", City: "Kiel", Country: "DE", Zip: "24103", Email: "ops@borealis.test"}
	require.NoError(t, f.db.Create(&client2).Error)
	collab2 := models.Collaborator{FirstName: "Mia", LastName: "Krause", Email: "mia@crew.test", Active: true}
	require.NoError(t, f.db.Create(&collab2).Error)
	order2 := models.WorkOrder{Code: "WO-2002", ClientID: client2.Id, StartDate: testAnchor}
	require.NoError(t, f.db.Create(&order2).Error)
	require.NoError(t, f.db.Create(&models.WorkOrderCollaborator{
		WorkOrderID: order2.ID, CollaboratorID: collab2.Id, AssignmentID: f.assignment.Id,
	}).Error)
	for _, kind := range []string{models.CheckKindIn, models.CheckKindOut} {
		hhmm := "09:00"
		if kind == models.CheckKindOut {
			hhmm = "15:00"
		}
		require.NoError(t, f.db.Create(&models.CheckRecord{
			CollaboratorID: collab2.Id, WorkOrderID: order2.ID, Kind: kind, Time: hhmm, CreatedAt: testAnchor,
		}).Error)
	}
	invoices, err := f.svc.CreateInvoicesForUser(collab2.Id, nil)
	require.NoError(t, err)
	require.Len(t, invoices, 1)

	return f
}

func TestListInvoicesUnfiltered(t *testing.T) {
	f := seedListFixture(t)

	page, err := f.svc.ListInvoices(InvoiceFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 1, page.LastPage)
}

func TestListInvoicesFilters(t *testing.T) {
	f := seedListFixture(t)

	page, err := f.svc.ListInvoices(InvoiceFilter{CollaboratorName: "mia"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Mia", page.Data[0].Collaborator.FirstName)

	page, err = f.svc.ListInvoices(InvoiceFilter{ClientName: "acme"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "WO-1001", page.Data[0].WorkOrder.Code)

	page, err = f.svc.ListInvoices(InvoiceFilter{WorkOrderCode: "2002"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)

	page, err = f.svc.ListInvoices(InvoiceFilter{AssignmentTitle: "forklift"})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)

	page, err = f.svc.ListInvoices(InvoiceFilter{CollaboratorName: "nobody"})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.EqualValues(t, 0, page.Total)
}

func TestListInvoicesExcludesSoftDeleted(t *testing.T) {
	f := seedListFixture(t)

	var inv models.Invoice
	require.NoError(t, f.db.First(&inv).Error)
	require.NoError(t, f.svc.SoftDeleteInvoice(inv.ID))

	page, err := f.svc.ListInvoices(InvoiceFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
}

func TestListInvoicesPaginationAndSort(t *testing.T) {
	f := seedListFixture(t)

	page, err := f.svc.ListInvoices(InvoiceFilter{SortBy: "total_hours_worked", SortDir: "asc", Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	assert.Equal(t, 2, page.LastPage)
	require.Len(t, page.Data, 1)
	assert.InDelta(t, 6.0, page.Data[0].TotalHoursWorked, 1e-9) // Mia's shorter shift first

	page, err = f.svc.ListInvoices(InvoiceFilter{SortBy: "total_hours_worked", SortDir: "asc", Page: 2, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.InDelta(t, 9.0, page.Data[0].TotalHoursWorked, 1e-9)
}
