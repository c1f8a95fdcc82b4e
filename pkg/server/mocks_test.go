package server_test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/invoice-generator/pkg/archive"
	"github.com/invoice-generator/pkg/invoice"
)

// --- Mocks ---

// MockRenderer
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(inv *invoice.Invoice, w io.Writer) error {
	args := m.Called(inv, w)
	return args.Error(0)
}

// MockStore
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	args := m.Called(ctx, name, data)
	return args.String(0), args.Error(1)
}

// MockRecorder
type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, e archive.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}
