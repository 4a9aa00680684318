package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

const (
	ChildrenCollection            = "children"
	StaffCollection               = "staffs"
	UsersCollection               = "users"
	DailyLogEntriesCollection     = "dailyLogEntries"
	HealthRecordEntriesCollection = "healthRecordEntries"

	// DefaultMaxInSetSize is the largest id set firestore accepts in a single "in" clause.
	DefaultMaxInSetSize = 30
)

var (
	ErrInSetTooLarge     = errors.New("too many values for a single id set lookup")
	ErrUnknownCollection = errors.New("unknown collection")
)

// Collections lists every collection, in the order the seeder clears them.
var Collections = []string{
	ChildrenCollection,
	StaffCollection,
	UsersCollection,
	DailyLogEntriesCollection,
	HealthRecordEntriesCollection,
}

// Store is the record store consumed by the services. All implementations
// return slices (never nil) and leave unknown ids out of *ByIds results.
type Store interface {
	AddChild(ctx context.Context, child Child) (Child, error)
	ListChildren(ctx context.Context) ([]Child, error)
	GetChildrenByIds(ctx context.Context, ids []string) ([]Child, error)

	AddStaff(ctx context.Context, staff Staff) (Staff, error)
	ListStaff(ctx context.Context) ([]Staff, error)
	GetStaffByIds(ctx context.Context, ids []string) ([]Staff, error)

	AddUser(ctx context.Context, user User) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	GetUsersByIds(ctx context.Context, ids []string) ([]User, error)

	AddDailyLogEntry(ctx context.Context, entry DailyLogEntry) (DailyLogEntry, error)
	ListDailyLogEntries(ctx context.Context, options EntrySearchOptions) ([]DailyLogEntry, error)

	AddHealthRecordEntry(ctx context.Context, entry HealthRecordEntry) (HealthRecordEntry, error)
	ListHealthRecordEntries(ctx context.Context, options EntrySearchOptions) ([]HealthRecordEntry, error)

	ClearCollection(ctx context.Context, collection string) error
}

// EntrySearchOptions selects log and health entries whose timestamp is in
// [From, To]. Daily log entries honour ChildIds and StaffIds, health
// records honour ChildIds and UserIds. Empty id sets do not filter.
type EntrySearchOptions struct {
	From     time.Time
	To       time.Time
	ChildIds []string
	StaffIds []string
	UserIds  []string
}

func (o EntrySearchOptions) inRange(t time.Time) bool {
	return !t.Before(o.From) && !t.After(o.To)
}

func checkInSetSize(ids []string, max int) error {
	if len(ids) > max {
		return errors.Wrapf(ErrInSetTooLarge, "%d ids, at most %d allowed", len(ids), max)
	}
	return nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
