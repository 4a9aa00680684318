package store

import (
	"context"

	"github.com/jinzhu/gorm"
	"github.com/pkg/errors"
)

var tables = map[string]string{
	ChildrenCollection:            Child{}.TableName(),
	StaffCollection:               Staff{}.TableName(),
	UsersCollection:               User{}.TableName(),
	DailyLogEntriesCollection:     DailyLogEntry{}.TableName(),
	HealthRecordEntriesCollection: HealthRecordEntry{}.TableName(),
}

type PostgresStore struct {
	Db              *gorm.DB `inject:""`
	StringGenerator interface {
		GenerateUuid() string
	} `inject:""`
	MaxInSetSize int
}

func (s *PostgresStore) newId() string {
	return s.StringGenerator.GenerateUuid()
}

func (s *PostgresStore) maxInSetSize() int {
	if s.MaxInSetSize <= 0 {
		return DefaultMaxInSetSize
	}
	return s.MaxInSetSize
}

func (s *PostgresStore) AddChild(ctx context.Context, child Child) (Child, error) {
	child.Id = s.newId()
	if err := s.Db.Create(&child).Error; err != nil {
		return Child{}, err
	}
	return child, nil
}

func (s *PostgresStore) ListChildren(ctx context.Context) ([]Child, error) {
	children := []Child{}
	if err := s.Db.Order("name").Find(&children).Error; err != nil {
		return []Child{}, err
	}
	return children, nil
}

func (s *PostgresStore) GetChildrenByIds(ctx context.Context, ids []string) ([]Child, error) {
	children := []Child{}
	if err := checkInSetSize(ids, s.maxInSetSize()); err != nil {
		return children, err
	}
	if len(ids) == 0 {
		return children, nil
	}
	if err := s.Db.Where("child_id IN (?)", ids).Find(&children).Error; err != nil {
		return []Child{}, err
	}
	return children, nil
}

func (s *PostgresStore) AddStaff(ctx context.Context, staff Staff) (Staff, error) {
	staff.Id = s.newId()
	if err := s.Db.Create(&staff).Error; err != nil {
		return Staff{}, err
	}
	return staff, nil
}

func (s *PostgresStore) ListStaff(ctx context.Context) ([]Staff, error) {
	staff := []Staff{}
	if err := s.Db.Order("name, last_name").Find(&staff).Error; err != nil {
		return []Staff{}, err
	}
	return staff, nil
}

func (s *PostgresStore) GetStaffByIds(ctx context.Context, ids []string) ([]Staff, error) {
	staff := []Staff{}
	if err := checkInSetSize(ids, s.maxInSetSize()); err != nil {
		return staff, err
	}
	if len(ids) == 0 {
		return staff, nil
	}
	if err := s.Db.Where("staff_id IN (?)", ids).Find(&staff).Error; err != nil {
		return []Staff{}, err
	}
	return staff, nil
}

func (s *PostgresStore) AddUser(ctx context.Context, user User) (User, error) {
	user.Id = s.newId()
	if err := s.Db.Create(&user).Error; err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *PostgresStore) ListUsers(ctx context.Context) ([]User, error) {
	users := []User{}
	if err := s.Db.Order("last_name").Find(&users).Error; err != nil {
		return []User{}, err
	}
	return users, nil
}

func (s *PostgresStore) GetUsersByIds(ctx context.Context, ids []string) ([]User, error) {
	users := []User{}
	if err := checkInSetSize(ids, s.maxInSetSize()); err != nil {
		return users, err
	}
	if len(ids) == 0 {
		return users, nil
	}
	if err := s.Db.Where("user_id IN (?)", ids).Find(&users).Error; err != nil {
		return []User{}, err
	}
	return users, nil
}

func (s *PostgresStore) AddDailyLogEntry(ctx context.Context, entry DailyLogEntry) (DailyLogEntry, error) {
	entry.Id = s.newId()
	if err := s.Db.Create(&entry).Error; err != nil {
		return DailyLogEntry{}, err
	}
	return entry, nil
}

func (s *PostgresStore) ListDailyLogEntries(ctx context.Context, options EntrySearchOptions) ([]DailyLogEntry, error) {
	query := s.timestampRange(options)
	if len(options.ChildIds) > 0 {
		query = query.Where("child_id IN (?)", options.ChildIds)
	}
	if len(options.StaffIds) > 0 {
		query = query.Where("staff_id IN (?)", options.StaffIds)
	}

	entries := []DailyLogEntry{}
	if err := query.Order("timestamp").Find(&entries).Error; err != nil {
		return []DailyLogEntry{}, err
	}
	return entries, nil
}

func (s *PostgresStore) AddHealthRecordEntry(ctx context.Context, entry HealthRecordEntry) (HealthRecordEntry, error) {
	entry.Id = s.newId()
	if err := s.Db.Create(&entry).Error; err != nil {
		return HealthRecordEntry{}, err
	}
	return entry, nil
}

func (s *PostgresStore) ListHealthRecordEntries(ctx context.Context, options EntrySearchOptions) ([]HealthRecordEntry, error) {
	query := s.timestampRange(options)
	if len(options.ChildIds) > 0 {
		query = query.Where("child_id IN (?)", options.ChildIds)
	}
	if len(options.UserIds) > 0 {
		query = query.Where("recorded_by_user_id IN (?)", options.UserIds)
	}

	entries := []HealthRecordEntry{}
	if err := query.Order("timestamp").Find(&entries).Error; err != nil {
		return []HealthRecordEntry{}, err
	}
	return entries, nil
}

func (s *PostgresStore) timestampRange(options EntrySearchOptions) *gorm.DB {
	return s.Db.Where("timestamp >= ? AND timestamp <= ?", options.From, options.To)
}

func (s *PostgresStore) ClearCollection(ctx context.Context, collection string) error {
	table, ok := tables[collection]
	if !ok {
		return errors.Wrap(ErrUnknownCollection, collection)
	}
	if err := s.Db.Exec("DELETE FROM " + table).Error; err != nil {
		return errors.Wrapf(err, "failed to clear %s", table)
	}
	return nil
}
