package model

import (
	"strings"
	"time"

	"github.com/existflow/clientpulse/internal/apperr"
)

// Invoice statuses
const (
	InvoiceUnpaid = "Unpaid"
	InvoicePaid   = "Paid"
)

// DefaultInvoiceDescription is used when an invoice has no description
const DefaultInvoiceDescription = "Professional Services"

var invoiceStatuses = []string{InvoiceUnpaid, InvoicePaid}

// Invoice is a billable record for a client
type Invoice struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	ClientID    string    `json:"clientId"`
	Client      *Client   `json:"client"` // Resolved on read
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	DueDate     *Date     `json:"dueDate,omitempty"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// InvoiceInput is the create payload
type InvoiceInput struct {
	Client      string   `json:"client"`
	ClientID    string   `json:"clientId"`
	Amount      *float64 `json:"amount"`
	Status      string   `json:"status"`
	DueDate     *Date    `json:"dueDate"`
	Description string   `json:"description"`
}

// NewInvoice builds a validated invoice from input
func NewInvoice(id, ownerID string, in InvoiceInput, now time.Time) (*Invoice, error) {
	inv := &Invoice{
		ID:          id,
		OwnerID:     ownerID,
		ClientID:    strings.TrimSpace(firstNonEmpty(in.ClientID, in.Client)),
		Status:      in.Status,
		DueDate:     in.DueDate,
		Description: strings.TrimSpace(in.Description),
		CreatedAt:   Stamp(now),
	}
	inv.UpdatedAt = inv.CreatedAt
	if in.Amount != nil {
		inv.Amount = *in.Amount
	}
	if inv.Status == "" {
		inv.Status = InvoiceUnpaid
	}
	if s, ok := canonical(invoiceStatuses, inv.Status); ok {
		inv.Status = s
	}
	if inv.Description == "" {
		inv.Description = DefaultInvoiceDescription
	}

	var problems []string
	if inv.ClientID == "" {
		problems = append(problems, "client is required")
	}
	if in.Amount == nil {
		problems = append(problems, "amount is required")
	} else if inv.Amount < 0 {
		problems = append(problems, "amount must be >= 0")
	}
	if !oneOf(invoiceStatuses, inv.Status) {
		problems = append(problems, "status must be one of "+strings.Join(invoiceStatuses, ", "))
	}
	if len(problems) > 0 {
		return nil, apperr.Validation(problems...)
	}
	return inv, nil
}

// MarkPaid sets the invoice to Paid. There is no way back to Unpaid.
func (i *Invoice) MarkPaid() {
	i.Status = InvoicePaid
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
