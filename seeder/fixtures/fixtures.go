package fixtures

import (
	"context"
	"math/rand"
	"time"

	"github.com/littleones/daycare-api/common/log"
	"github.com/littleones/daycare-api/common/store"

	"github.com/Pallinder/go-randomdata"
	"github.com/pkg/errors"
)

var (
	ErrNothingToReference = errors.New("children, staff and users counts must be positive")

	LogTemplates = []store.DailyLogEntry{
		{Type: "Meal", Details: "Finished the whole plate"},
		{Type: "Nap", Details: "Slept for an hour and a half"},
		{Type: "Mood", Details: "Cheerful and playful"},
		{Type: "Diaper", Details: "Changed, nothing unusual"},
		{Type: "Activity", Details: "Painting session with the group"},
	}

	HealthTemplates = []store.HealthRecordEntry{
		{Type: "Injury", Details: "Scraped knee on the playground", ActionTaken: "Cleaned and bandaged"},
		{Type: "Fever", Details: "Temperature of 38.2", ActionTaken: "Parents called"},
	}
)

type Options struct {
	Children int
	Staff    int
	Users    int
	// entries are written for every day in [-Days, Days] around Now
	Days int
	Now  time.Time
	// Random makes the generated names reproducible when non zero.
	Random int64
}

type Seeder struct {
	Store  store.Store `inject:""`
	Logger *log.Logger `inject:""`
}

// Seed clears every collection then fills it with generated records.
// Entries of day offset d reference the children, staff and users found at
// the positive modulo of d.
func (s *Seeder) Seed(ctx context.Context, options Options) error {
	if options.Children <= 0 || options.Staff <= 0 || options.Users <= 0 {
		return ErrNothingToReference
	}
	if options.Random != 0 {
		randomdata.CustomRand(rand.New(rand.NewSource(options.Random)))
	}
	if options.Now.IsZero() {
		options.Now = time.Now()
	}

	for _, collection := range store.Collections {
		if err := s.Store.ClearCollection(ctx, collection); err != nil {
			return errors.Wrapf(err, "failed to clear %s", collection)
		}
		s.Logger.Info(ctx, "collection cleared", "collection", collection)
	}

	childIds := make([]string, 0, options.Children)
	for i := 0; i < options.Children; i++ {
		child, err := s.Store.AddChild(ctx, store.Child{
			Name:       randomdata.FirstName(randomdata.RandomGender) + " " + randomdata.LastName(),
			ParentName: randomdata.FullName(randomdata.RandomGender),
			Email:      randomdata.Email(),
			Address:    randomdata.Address(),
		})
		if err != nil {
			return errors.Wrap(err, "failed to seed children")
		}
		childIds = append(childIds, child.Id)
	}
	s.Logger.Info(ctx, "children seeded", "count", len(childIds))

	staffIds := make([]string, 0, options.Staff)
	for i := 0; i < options.Staff; i++ {
		member, err := s.Store.AddStaff(ctx, store.Staff{
			FirstName: randomdata.FirstName(randomdata.RandomGender),
			LastName:  randomdata.LastName(),
			Email:     randomdata.Email(),
			Address:   randomdata.Address(),
		})
		if err != nil {
			return errors.Wrap(err, "failed to seed staff")
		}
		staffIds = append(staffIds, member.Id)
	}
	s.Logger.Info(ctx, "staff seeded", "count", len(staffIds))

	userIds := make([]string, 0, options.Users)
	for i := 0; i < options.Users; i++ {
		user, err := s.Store.AddUser(ctx, store.User{
			FirstName: randomdata.FirstName(randomdata.RandomGender),
			LastName:  randomdata.LastName(),
		})
		if err != nil {
			return errors.Wrap(err, "failed to seed users")
		}
		userIds = append(userIds, user.Id)
	}
	s.Logger.Info(ctx, "users seeded", "count", len(userIds))

	entries, records := 0, 0
	for offset := -options.Days; offset <= options.Days; offset++ {
		timestamp := options.Now.AddDate(0, 0, offset)
		childId := childIds[PositiveIndex(offset, len(childIds))]

		for _, template := range LogTemplates {
			entry := template
			entry.Timestamp = timestamp
			entry.ChildId = childId
			entry.StaffId = staffIds[PositiveIndex(offset, len(staffIds))]
			if _, err := s.Store.AddDailyLogEntry(ctx, entry); err != nil {
				return errors.Wrap(err, "failed to seed daily log entries")
			}
			entries++
		}

		for _, template := range HealthTemplates {
			record := template
			record.Timestamp = timestamp
			record.ChildId = childId
			record.RecordedByUserId = userIds[PositiveIndex(offset, len(userIds))]
			if _, err := s.Store.AddHealthRecordEntry(ctx, record); err != nil {
				return errors.Wrap(err, "failed to seed health record entries")
			}
			records++
		}
	}
	s.Logger.Info(ctx, "seeding finished", "dailyLogEntries", entries, "healthRecordEntries", records)
	return nil
}

func PositiveIndex(offset, length int) int {
	return ((offset % length) + length) % length
}
