package services

import (
	"math"
	"strings"

	"workforce-backend/models"
)

// InvoiceFilter carries the listing endpoint's filter/sort/pagination
// parameters. Zero values mean "no filter"; Limit == 0 returns the flat,
// unpaginated list.
type InvoiceFilter struct {
	CollaboratorName string
	ClientName       string
	InvoiceNumber    string
	WorkOrderCode    string
	AssignmentTitle  string
	SortBy           string
	SortDir          string
	Page             int
	Limit            int
}

// InvoicePage is the paginated listing response shape.
type InvoicePage struct {
	Data     []models.Invoice `json:"data"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	LastPage int              `json:"last_page"`
}

// Whitelisted sort columns; anything else falls back to created_at.
var invoiceSortColumns = map[string]string{
	"created_at":         "invoices.created_at",
	"updated_at":         "invoices.updated_at",
	"invoice_number":     "invoices.invoice_number",
	"total_hours_worked": "invoices.total_hours_worked",
	"total_company":      "invoices.total_with_surcharge_company",
	"total_collaborator": "invoices.total_with_surcharge_collaborator",
}

// ListInvoices returns live invoices matching the filter. Name/code/title
// filters are case-insensitive substring matches; collaborator and client
// names require joins, assignment titles an EXISTS over the line table.
func (s *InvoiceService) ListInvoices(f InvoiceFilter) (InvoicePage, error) {
	q := s.db.Model(&models.Invoice{}).Where("invoices.deleted = ?", false)

	if f.CollaboratorName != "" {
		q = q.Joins("JOIN collaborators ON collaborators.id = invoices.collaborator_id").
			Where("LOWER(collaborators.first_name || ' ' || collaborators.last_name) LIKE ?", containsPattern(f.CollaboratorName))
	}
	if f.ClientName != "" || f.WorkOrderCode != "" {
		q = q.Joins("JOIN work_orders ON work_orders.id = invoices.work_order_id")
		if f.WorkOrderCode != "" {
			q = q.Where("LOWER(work_orders.code) LIKE ?", containsPattern(f.WorkOrderCode))
		}
		if f.ClientName != "" {
			q = q.Joins("JOIN clients ON clients.id = work_orders.client_id").
				Where("LOWER(clients.company_name) LIKE ?", containsPattern(f.ClientName))
		}
	}
	if f.InvoiceNumber != "" {
		q = q.Where("LOWER(invoices.invoice_number) LIKE ?", containsPattern(f.InvoiceNumber))
	}
	if f.AssignmentTitle != "" {
		q = q.Where("EXISTS (SELECT 1 FROM invoice_assignments ia WHERE ia.invoice_id = invoices.id AND LOWER(ia.assignment_name) LIKE ?)",
			containsPattern(f.AssignmentTitle))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return InvoicePage{}, err
	}

	column, ok := invoiceSortColumns[f.SortBy]
	if !ok {
		column = "invoices.created_at"
	}
	direction := "desc"
	if strings.EqualFold(f.SortDir, "asc") {
		direction = "asc"
	}
	q = q.Order(column + " " + direction)

	page := f.Page
	if page < 1 {
		page = 1
	}
	lastPage := 1
	if f.Limit > 0 {
		lastPage = int(math.Ceil(float64(total) / float64(f.Limit)))
		if lastPage < 1 {
			lastPage = 1
		}
		q = q.Offset((page - 1) * f.Limit).Limit(f.Limit)
	}

	var invoices []models.Invoice
	err := q.
		Preload("Lines.SurchargeDetails").
		Preload("Collaborator").
		Preload("WorkOrder.Client").
		Find(&invoices).Error
	if err != nil {
		return InvoicePage{}, err
	}

	return InvoicePage{Data: invoices, Total: total, Page: page, LastPage: lastPage}, nil
}

func containsPattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}
