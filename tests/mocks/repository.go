package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockPayloadRepository struct {
	mock.Mock
}

func (m *MockPayloadRepository) Put(ctx context.Context, body []byte) (string, error) {
	args := m.Called(ctx, body)
	return args.String(0), args.Error(1)
}

func (m *MockPayloadRepository) Get(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockPayloadRepository) Prune(ctx context.Context, before time.Time) (int, error) {
	args := m.Called(ctx, before)
	return args.Int(0), args.Error(1)
}

func (m *MockPayloadRepository) Close() error {
	args := m.Called()
	return args.Error(0)
}
