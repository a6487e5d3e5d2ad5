package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/shadowtrack/shadowtrack/internal/domain/entry"
)

// EntryRepository is a mock for entry.Repository.
type EntryRepository struct {
	mock.Mock
}

var _ entry.Repository = (*EntryRepository)(nil)

func (m *EntryRepository) Insert(ctx context.Context, userID string, e *entry.Entry) (*entry.Entry, error) {
	args := m.Called(ctx, userID, e)
	if stored, ok := args.Get(0).(*entry.Entry); ok {
		return stored, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) ListByUser(ctx context.Context, userID string) ([]entry.Entry, error) {
	args := m.Called(ctx, userID)
	if list, ok := args.Get(0).([]entry.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) SetDeleted(ctx context.Context, userID, id string, deleted bool) (*entry.Entry, error) {
	args := m.Called(ctx, userID, id, deleted)
	if updated, ok := args.Get(0).(*entry.Entry); ok {
		return updated, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) SetDeletedAll(ctx context.Context, userID string, deleted bool) error {
	args := m.Called(ctx, userID, deleted)
	return args.Error(0)
}

func (m *EntryRepository) PurgeTrashed(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
