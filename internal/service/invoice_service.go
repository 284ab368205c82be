package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "bookshop/internal/errors"
	"bookshop/internal/model"
	"bookshop/internal/repository"
)

// InvoiceItemInput references a product and a quantity; name and price are
// snapshotted from the catalog at creation time.
type InvoiceItemInput struct {
	ProductID uint
	Quantity  int
}

// InvoiceInput carries the writable invoice fields.
type InvoiceInput struct {
	Customer model.Customer
	Items    []InvoiceItemInput
	Notes    string
}

// UpdateInvoiceInput carries optional invoice fields; empty/nil fields are
// left untouched. Line items are immutable after creation.
type UpdateInvoiceInput struct {
	Customer *model.Customer
	Status   string
	Notes    *string
}

// InvoiceService exposes order operations.
type InvoiceService interface {
	Create(ctx context.Context, input InvoiceInput) (*model.Invoice, error)
	Get(ctx context.Context, id uint) (*model.Invoice, error)
	List(ctx context.Context) ([]model.Invoice, error)
	Update(ctx context.Context, id uint, input UpdateInvoiceInput) (*model.Invoice, error)
	Delete(ctx context.Context, id uint) error
}

type invoiceService struct {
	repo     repository.InvoiceRepository
	products repository.ProductRepository
}

// NewInvoiceService builds an InvoiceService.
func NewInvoiceService(repo repository.InvoiceRepository, products repository.ProductRepository) InvoiceService {
	return &invoiceService{repo: repo, products: products}
}

// Create validates the customer and items, snapshots product name and price
// per line, and computes line and grand totals server side.
func (s *invoiceService) Create(ctx context.Context, input InvoiceInput) (*model.Invoice, error) {
	c := input.Customer
	if c.Name == "" || c.Email == "" || c.Phone == "" || c.Address == "" {
		return nil, fmt.Errorf("%w: customer name, email, phone and address are required", apperrors.ErrValidation)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: invoice needs at least one item", apperrors.ErrValidation)
	}

	items := make([]model.InvoiceItem, 0, len(input.Items))
	var totalAmount float64
	for _, in := range input.Items {
		if in.Quantity < 1 {
			return nil, fmt.Errorf("%w: item quantity must be at least 1", apperrors.ErrValidation)
		}
		product, err := s.products.FindByID(ctx, in.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrProductNotFound
			}
			return nil, err
		}

		lineTotal := float64(in.Quantity) * product.Price
		items = append(items, model.InvoiceItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			Price:       product.Price,
			Total:       lineTotal,
		})
		totalAmount += lineTotal
	}

	invoice := &model.Invoice{
		InvoiceNumber: newInvoiceNumber(),
		Customer:      input.Customer,
		Items:         items,
		TotalAmount:   totalAmount,
		Status:        model.InvoiceStatusPending,
		Notes:         input.Notes,
	}
	if err := s.repo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return invoice, nil
}

func (s *invoiceService) Get(ctx context.Context, id uint) (*model.Invoice, error) {
	invoice, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvoiceNotFound
		}
		return nil, err
	}
	return invoice, nil
}

func (s *invoiceService) List(ctx context.Context) ([]model.Invoice, error) {
	return s.repo.List(ctx)
}

func (s *invoiceService) Update(ctx context.Context, id uint, input UpdateInvoiceInput) (*model.Invoice, error) {
	invoice, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Status != "" {
		if !model.ValidInvoiceStatus(input.Status) {
			return nil, fmt.Errorf("%w: unknown invoice status %q", apperrors.ErrValidation, input.Status)
		}
		invoice.Status = input.Status
	}
	if input.Customer != nil {
		invoice.Customer = *input.Customer
	}
	if input.Notes != nil {
		invoice.Notes = *input.Notes
	}

	if err := s.repo.Update(ctx, invoice); err != nil {
		return nil, fmt.Errorf("update invoice: %w", err)
	}
	return invoice, nil
}

func (s *invoiceService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	return nil
}

// newInvoiceNumber returns an 8-character identifier.
func newInvoiceNumber() string {
	return uuid.New().String()[:8]
}
