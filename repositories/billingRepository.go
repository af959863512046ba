package repositories

import (
	"SolidarityHospital/models"
	"SolidarityHospital/store"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

type InvoiceRepository struct {
	invoices *collection[models.Invoice]
}

func NewInvoiceRepository(s store.Store) *InvoiceRepository {
	return &InvoiceRepository{
		invoices: newCollection(s, store.Invoices, func(i *models.Invoice) string { return i.ID }),
	}
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	if err := r.invoices.append(ctx, *invoice); err != nil {
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id string) (*models.Invoice, error) {
	invoice, err := r.invoices.find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return invoice, nil
}

func (r *InvoiceRepository) GetAll(ctx context.Context) ([]models.Invoice, error) {
	invoices, err := r.invoices.all(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all invoices: %w", err)
	}
	return invoices, nil
}

func (r *InvoiceRepository) Modify(ctx context.Context, id string, fn func(*models.Invoice) error) (*models.Invoice, error) {
	invoice, err := r.invoices.modify(ctx, id, fn)
	if err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	return invoice, nil
}

// Delete removes an invoice. Its payments are left in place.
func (r *InvoiceRepository) Delete(ctx context.Context, id string) error {
	removed, err := r.invoices.remove(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete invoice: %w", err)
	}
	if !removed {
		log.Debug().Str("invoice_id", id).Msg("Delete of unknown invoice ignored")
	}
	return nil
}

type PaymentRepository struct {
	payments *collection[models.Payment]
}

func NewPaymentRepository(s store.Store) *PaymentRepository {
	return &PaymentRepository{
		payments: newCollection(s, store.Payments, func(p *models.Payment) string { return p.InvoiceID }),
	}
}

// Append records a payment. Payments are never updated or removed.
func (r *PaymentRepository) Append(ctx context.Context, payment *models.Payment) error {
	if err := r.payments.append(ctx, *payment); err != nil {
		return fmt.Errorf("failed to record payment: %w", err)
	}
	return nil
}

func (r *PaymentRepository) GetAll(ctx context.Context) ([]models.Payment, error) {
	payments, err := r.payments.all(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get all payments: %w", err)
	}
	return payments, nil
}
