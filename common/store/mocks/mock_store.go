package mocks

import (
	"context"

	"github.com/littleones/daycare-api/common/store"

	"github.com/stretchr/testify/mock"
)

// MockStore lets tests fail individual store calls. Calls that are not
// mocked are forwarded to Store when it is set.
type MockStore struct {
	mock.Mock
	Store store.Store
}

func (m *MockStore) mocked(method string) bool {
	for _, call := range m.ExpectedCalls {
		if call.Method == method {
			return true
		}
	}
	return false
}

func (m *MockStore) AddChild(ctx context.Context, child store.Child) (store.Child, error) {
	if !m.mocked("AddChild") && m.Store != nil {
		return m.Store.AddChild(ctx, child)
	}
	args := m.Called(ctx, child)
	return args.Get(0).(store.Child), args.Error(1)
}

func (m *MockStore) ListChildren(ctx context.Context) ([]store.Child, error) {
	if !m.mocked("ListChildren") && m.Store != nil {
		return m.Store.ListChildren(ctx)
	}
	args := m.Called(ctx)
	return args.Get(0).([]store.Child), args.Error(1)
}

func (m *MockStore) GetChildrenByIds(ctx context.Context, ids []string) ([]store.Child, error) {
	if !m.mocked("GetChildrenByIds") && m.Store != nil {
		return m.Store.GetChildrenByIds(ctx, ids)
	}
	args := m.Called(ctx, ids)
	return args.Get(0).([]store.Child), args.Error(1)
}

func (m *MockStore) AddStaff(ctx context.Context, staff store.Staff) (store.Staff, error) {
	if !m.mocked("AddStaff") && m.Store != nil {
		return m.Store.AddStaff(ctx, staff)
	}
	args := m.Called(ctx, staff)
	return args.Get(0).(store.Staff), args.Error(1)
}

func (m *MockStore) ListStaff(ctx context.Context) ([]store.Staff, error) {
	if !m.mocked("ListStaff") && m.Store != nil {
		return m.Store.ListStaff(ctx)
	}
	args := m.Called(ctx)
	return args.Get(0).([]store.Staff), args.Error(1)
}

func (m *MockStore) GetStaffByIds(ctx context.Context, ids []string) ([]store.Staff, error) {
	if !m.mocked("GetStaffByIds") && m.Store != nil {
		return m.Store.GetStaffByIds(ctx, ids)
	}
	args := m.Called(ctx, ids)
	return args.Get(0).([]store.Staff), args.Error(1)
}

func (m *MockStore) AddUser(ctx context.Context, user store.User) (store.User, error) {
	if !m.mocked("AddUser") && m.Store != nil {
		return m.Store.AddUser(ctx, user)
	}
	args := m.Called(ctx, user)
	return args.Get(0).(store.User), args.Error(1)
}

func (m *MockStore) ListUsers(ctx context.Context) ([]store.User, error) {
	if !m.mocked("ListUsers") && m.Store != nil {
		return m.Store.ListUsers(ctx)
	}
	args := m.Called(ctx)
	return args.Get(0).([]store.User), args.Error(1)
}

func (m *MockStore) GetUsersByIds(ctx context.Context, ids []string) ([]store.User, error) {
	if !m.mocked("GetUsersByIds") && m.Store != nil {
		return m.Store.GetUsersByIds(ctx, ids)
	}
	args := m.Called(ctx, ids)
	return args.Get(0).([]store.User), args.Error(1)
}

func (m *MockStore) AddDailyLogEntry(ctx context.Context, entry store.DailyLogEntry) (store.DailyLogEntry, error) {
	if !m.mocked("AddDailyLogEntry") && m.Store != nil {
		return m.Store.AddDailyLogEntry(ctx, entry)
	}
	args := m.Called(ctx, entry)
	return args.Get(0).(store.DailyLogEntry), args.Error(1)
}

func (m *MockStore) ListDailyLogEntries(ctx context.Context, options store.EntrySearchOptions) ([]store.DailyLogEntry, error) {
	if !m.mocked("ListDailyLogEntries") && m.Store != nil {
		return m.Store.ListDailyLogEntries(ctx, options)
	}
	args := m.Called(ctx, options)
	return args.Get(0).([]store.DailyLogEntry), args.Error(1)
}

func (m *MockStore) AddHealthRecordEntry(ctx context.Context, entry store.HealthRecordEntry) (store.HealthRecordEntry, error) {
	if !m.mocked("AddHealthRecordEntry") && m.Store != nil {
		return m.Store.AddHealthRecordEntry(ctx, entry)
	}
	args := m.Called(ctx, entry)
	return args.Get(0).(store.HealthRecordEntry), args.Error(1)
}

func (m *MockStore) ListHealthRecordEntries(ctx context.Context, options store.EntrySearchOptions) ([]store.HealthRecordEntry, error) {
	if !m.mocked("ListHealthRecordEntries") && m.Store != nil {
		return m.Store.ListHealthRecordEntries(ctx, options)
	}
	args := m.Called(ctx, options)
	return args.Get(0).([]store.HealthRecordEntry), args.Error(1)
}

func (m *MockStore) ClearCollection(ctx context.Context, collection string) error {
	if !m.mocked("ClearCollection") && m.Store != nil {
		return m.Store.ClearCollection(ctx, collection)
	}
	args := m.Called(ctx, collection)
	return args.Error(0)
}

func (m *MockStore) CallsForMethod(method string) []mock.Call {
	var calls []mock.Call
	for _, call := range m.Calls {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

func (m *MockStore) Reset() {
	m.Mock = mock.Mock{}
}
