package store

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// MemoryStore keeps every collection in process memory. Lists come back in
// insertion order. It backs the "memory" store backend and the test suites.
type MemoryStore struct {
	StringGenerator interface {
		GenerateUuid() string
	} `inject:""`
	MaxInSetSize int

	mu                  sync.RWMutex
	children            []Child
	staff               []Staff
	users               []User
	dailyLogEntries     []DailyLogEntry
	healthRecordEntries []HealthRecordEntry
}

func (s *MemoryStore) maxInSetSize() int {
	if s.MaxInSetSize <= 0 {
		return DefaultMaxInSetSize
	}
	return s.MaxInSetSize
}

func (s *MemoryStore) AddChild(_ context.Context, child Child) (Child, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	child.Id = s.StringGenerator.GenerateUuid()
	s.children = append(s.children, child)
	return child, nil
}

func (s *MemoryStore) ListChildren(_ context.Context) ([]Child, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Child{}, s.children...), nil
}

func (s *MemoryStore) GetChildrenByIds(_ context.Context, ids []string) ([]Child, error) {
	if err := checkInSetSize(ids, s.maxInSetSize()); err != nil {
		return []Child{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	children := []Child{}
	for _, child := range s.children {
		if contains(ids, child.Id) {
			children = append(children, child)
		}
	}
	return children, nil
}

func (s *MemoryStore) AddStaff(_ context.Context, staff Staff) (Staff, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	staff.Id = s.StringGenerator.GenerateUuid()
	s.staff = append(s.staff, staff)
	return staff, nil
}

func (s *MemoryStore) ListStaff(_ context.Context) ([]Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]Staff{}, s.staff...), nil
}

func (s *MemoryStore) GetStaffByIds(_ context.Context, ids []string) ([]Staff, error) {
	if err := checkInSetSize(ids, s.maxInSetSize()); err != nil {
		return []Staff{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	staff := []Staff{}
	for _, member := range s.staff {
		if contains(ids, member.Id) {
			staff = append(staff, member)
		}
	}
	return staff, nil
}

func (s *MemoryStore) AddUser(_ context.Context, user User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.Id = s.StringGenerator.GenerateUuid()
	s.users = append(s.users, user)
	return user, nil
}

func (s *MemoryStore) ListUsers(_ context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]User{}, s.users...), nil
}

func (s *MemoryStore) GetUsersByIds(_ context.Context, ids []string) ([]User, error) {
	if err := checkInSetSize(ids, s.maxInSetSize()); err != nil {
		return []User{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	users := []User{}
	for _, user := range s.users {
		if contains(ids, user.Id) {
			users = append(users, user)
		}
	}
	return users, nil
}

func (s *MemoryStore) AddDailyLogEntry(_ context.Context, entry DailyLogEntry) (DailyLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.Id = s.StringGenerator.GenerateUuid()
	s.dailyLogEntries = append(s.dailyLogEntries, entry)
	return entry, nil
}

func (s *MemoryStore) ListDailyLogEntries(_ context.Context, options EntrySearchOptions) ([]DailyLogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := []DailyLogEntry{}
	for _, entry := range s.dailyLogEntries {
		if !options.inRange(entry.Timestamp) {
			continue
		}
		if len(options.ChildIds) > 0 && !contains(options.ChildIds, entry.ChildId) {
			continue
		}
		if len(options.StaffIds) > 0 && !contains(options.StaffIds, entry.StaffId) {
			continue
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	return entries, nil
}

func (s *MemoryStore) AddHealthRecordEntry(_ context.Context, entry HealthRecordEntry) (HealthRecordEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.Id = s.StringGenerator.GenerateUuid()
	s.healthRecordEntries = append(s.healthRecordEntries, entry)
	return entry, nil
}

func (s *MemoryStore) ListHealthRecordEntries(_ context.Context, options EntrySearchOptions) ([]HealthRecordEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := []HealthRecordEntry{}
	for _, entry := range s.healthRecordEntries {
		if !options.inRange(entry.Timestamp) {
			continue
		}
		if len(options.ChildIds) > 0 && !contains(options.ChildIds, entry.ChildId) {
			continue
		}
		if len(options.UserIds) > 0 && !contains(options.UserIds, entry.RecordedByUserId) {
			continue
		}
		entries = append(entries, entry)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.Before(entries[j].Timestamp)
	})
	return entries, nil
}

func (s *MemoryStore) ClearCollection(_ context.Context, collection string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch collection {
	case ChildrenCollection:
		s.children = nil
	case StaffCollection:
		s.staff = nil
	case UsersCollection:
		s.users = nil
	case DailyLogEntriesCollection:
		s.dailyLogEntries = nil
	case HealthRecordEntriesCollection:
		s.healthRecordEntries = nil
	default:
		return errors.Wrap(ErrUnknownCollection, collection)
	}
	return nil
}
