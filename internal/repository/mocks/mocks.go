package mocks

import (
	"context"

	"devfolio/internal/repository"

	"github.com/stretchr/testify/mock"
)

// RecordStore is a mock for repository.RecordStore.
type RecordStore[T any] struct {
	mock.Mock
}

func (m *RecordStore[T]) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *RecordStore[T]) FetchAll(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]T); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordStore[T]) FetchOne(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	if rec, ok := args.Get(0).(*T); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordStore[T]) FetchByField(ctx context.Context, field string, value any) ([]T, error) {
	args := m.Called(ctx, field, value)
	if list, ok := args.Get(0).([]T); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *RecordStore[T]) Create(ctx context.Context, record T) (string, error) {
	args := m.Called(ctx, record)
	return args.String(0), args.Error(1)
}

func (m *RecordStore[T]) Increment(ctx context.Context, id, field string, delta int) error {
	args := m.Called(ctx, id, field, delta)
	return args.Error(0)
}

func (m *RecordStore[T]) Subscribe(ctx context.Context, onSnapshot func([]T), onError func(error)) repository.Unsubscribe {
	args := m.Called(ctx, onSnapshot, onError)
	if unsub, ok := args.Get(0).(repository.Unsubscribe); ok {
		return unsub
	}
	return func() {}
}

// CounterRepository is a mock for repository.CounterRepository.
type CounterRepository struct {
	mock.Mock
}

func (m *CounterRepository) Get(ctx context.Context, name string) (int64, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(int64), args.Error(1)
}
