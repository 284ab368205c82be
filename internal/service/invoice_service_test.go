package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "bookshop/internal/errors"
	"bookshop/internal/model"
	"bookshop/internal/pagination"
	"bookshop/internal/repository"
)

// MockInvoiceRepository is a mock implementation of repository.InvoiceRepository.
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, invoice *model.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, id uint) (*model.Invoice, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) List(ctx context.Context) ([]model.Invoice, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Invoice), args.Error(1)
}

// MockProductRepository is a mock implementation of repository.ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) ListPage(ctx context.Context, req pagination.Request) ([]model.Product, int64, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Product), args.Get(1).(int64), args.Error(2)
}

func (m *MockProductRepository) Search(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) SearchPage(ctx context.Context, filter repository.ProductFilter, req pagination.Request) ([]model.Product, int64, error) {
	args := m.Called(ctx, filter, req)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]model.Product), args.Get(1).(int64), args.Error(2)
}

var testCustomer = model.Customer{
	Name:    "Dana",
	Email:   "dana@example.com",
	Phone:   "555-0100",
	Address: "1 Main St",
}

func TestInvoiceService_Create(t *testing.T) {
	book := &model.Product{ID: 1, Name: "Dune", Price: 12.5}
	sequel := &model.Product{ID: 2, Name: "Dune Messiah", Price: 10}

	t.Run("snapshots prices and computes totals", func(t *testing.T) {
		mockInvoices := new(MockInvoiceRepository)
		mockProducts := new(MockProductRepository)
		mockProducts.On("FindByID", mock.Anything, uint(1)).Return(book, nil)
		mockProducts.On("FindByID", mock.Anything, uint(2)).Return(sequel, nil)
		mockInvoices.On("Create", mock.Anything, mock.AnythingOfType("*model.Invoice")).Return(nil)

		svc := NewInvoiceService(mockInvoices, mockProducts)
		invoice, err := svc.Create(context.Background(), InvoiceInput{
			Customer: testCustomer,
			Items: []InvoiceItemInput{
				{ProductID: 1, Quantity: 2},
				{ProductID: 2, Quantity: 3},
			},
		})
		require.NoError(t, err)

		require.Len(t, invoice.Items, 2)
		assert.Equal(t, "Dune", invoice.Items[0].ProductName)
		assert.Equal(t, 12.5, invoice.Items[0].Price)
		assert.Equal(t, 25.0, invoice.Items[0].Total)
		assert.Equal(t, 30.0, invoice.Items[1].Total)
		assert.Equal(t, 55.0, invoice.TotalAmount)
		assert.Equal(t, model.InvoiceStatusPending, invoice.Status)
		assert.Len(t, invoice.InvoiceNumber, 8)
		mockInvoices.AssertExpectations(t)
	})

	t.Run("unknown product", func(t *testing.T) {
		mockProducts := new(MockProductRepository)
		mockProducts.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewInvoiceService(new(MockInvoiceRepository), mockProducts)
		_, err := svc.Create(context.Background(), InvoiceInput{
			Customer: testCustomer,
			Items:    []InvoiceItemInput{{ProductID: 99, Quantity: 1}},
		})
		assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
	})

	t.Run("quantity below one", func(t *testing.T) {
		svc := NewInvoiceService(new(MockInvoiceRepository), new(MockProductRepository))
		_, err := svc.Create(context.Background(), InvoiceInput{
			Customer: testCustomer,
			Items:    []InvoiceItemInput{{ProductID: 1, Quantity: 0}},
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("no items", func(t *testing.T) {
		svc := NewInvoiceService(new(MockInvoiceRepository), new(MockProductRepository))
		_, err := svc.Create(context.Background(), InvoiceInput{Customer: testCustomer})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("incomplete customer", func(t *testing.T) {
		svc := NewInvoiceService(new(MockInvoiceRepository), new(MockProductRepository))
		_, err := svc.Create(context.Background(), InvoiceInput{
			Customer: model.Customer{Name: "Dana"},
			Items:    []InvoiceItemInput{{ProductID: 1, Quantity: 1}},
		})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestInvoiceService_Update(t *testing.T) {
	stored := func() *model.Invoice {
		return &model.Invoice{
			ID:            3,
			InvoiceNumber: "ab12cd34",
			Customer:      testCustomer,
			Status:        model.InvoiceStatusPending,
			TotalAmount:   55,
		}
	}

	t.Run("status transition", func(t *testing.T) {
		mockInvoices := new(MockInvoiceRepository)
		mockInvoices.On("FindByID", mock.Anything, uint(3)).Return(stored(), nil)
		mockInvoices.On("Update", mock.Anything, mock.AnythingOfType("*model.Invoice")).Return(nil)

		svc := NewInvoiceService(mockInvoices, new(MockProductRepository))
		invoice, err := svc.Update(context.Background(), 3, UpdateInvoiceInput{Status: model.InvoiceStatusPaid})
		require.NoError(t, err)
		assert.Equal(t, model.InvoiceStatusPaid, invoice.Status)
	})

	t.Run("unknown status rejected", func(t *testing.T) {
		mockInvoices := new(MockInvoiceRepository)
		mockInvoices.On("FindByID", mock.Anything, uint(3)).Return(stored(), nil)

		svc := NewInvoiceService(mockInvoices, new(MockProductRepository))
		_, err := svc.Update(context.Background(), 3, UpdateInvoiceInput{Status: "shipped"})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("empty fields leave invoice untouched", func(t *testing.T) {
		mockInvoices := new(MockInvoiceRepository)
		mockInvoices.On("FindByID", mock.Anything, uint(3)).Return(stored(), nil)
		mockInvoices.On("Update", mock.Anything, mock.AnythingOfType("*model.Invoice")).Return(nil)

		svc := NewInvoiceService(mockInvoices, new(MockProductRepository))
		invoice, err := svc.Update(context.Background(), 3, UpdateInvoiceInput{})
		require.NoError(t, err)
		assert.Equal(t, model.InvoiceStatusPending, invoice.Status)
		assert.Equal(t, testCustomer, invoice.Customer)
	})

	t.Run("missing invoice", func(t *testing.T) {
		mockInvoices := new(MockInvoiceRepository)
		mockInvoices.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewInvoiceService(mockInvoices, new(MockProductRepository))
		_, err := svc.Update(context.Background(), 404, UpdateInvoiceInput{Status: model.InvoiceStatusPaid})
		assert.ErrorIs(t, err, apperrors.ErrInvoiceNotFound)
	})
}

func TestInvoiceService_Delete(t *testing.T) {
	t.Run("existing invoice", func(t *testing.T) {
		mockInvoices := new(MockInvoiceRepository)
		mockInvoices.On("FindByID", mock.Anything, uint(3)).Return(&model.Invoice{ID: 3}, nil)
		mockInvoices.On("Delete", mock.Anything, uint(3)).Return(nil)

		svc := NewInvoiceService(mockInvoices, new(MockProductRepository))
		require.NoError(t, svc.Delete(context.Background(), 3))
		mockInvoices.AssertExpectations(t)
	})

	t.Run("missing invoice", func(t *testing.T) {
		mockInvoices := new(MockInvoiceRepository)
		mockInvoices.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewInvoiceService(mockInvoices, new(MockProductRepository))
		assert.ErrorIs(t, svc.Delete(context.Background(), 404), apperrors.ErrInvoiceNotFound)
	})
}
