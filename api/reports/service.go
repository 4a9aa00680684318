package reports

import (
	"context"
	"time"

	"github.com/littleones/daycare-api/api/shared"
	"github.com/littleones/daycare-api/common/log"
	"github.com/littleones/daycare-api/common/store"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidDate         = errors.New("dates must be valid dates")
	ErrInvalidPeriod       = errors.New("end_date must not be before start_date")
	ErrTooManyFilterValues = errors.New("too many filter values")
)

type Filters struct {
	ChildIds []string
	StaffIds []string
	UserIds  []string
}

type DailyReportRequest struct {
	Period  Period
	Filters Filters
}

type GeneralSummary struct {
	StaffCount    int `json:"staffCount"`
	ChildrenCount int `json:"childrenCount"`
	UsersCount    int `json:"usersCount"`
}

type EnrichedLogEntry struct {
	store.DailyLogEntry
	Child *store.Child `json:"child"`
	Staff *store.Staff `json:"staff"`
}

type EnrichedHealthRecord struct {
	store.HealthRecordEntry
	Child          *store.Child `json:"child"`
	RecordedByUser *store.User  `json:"recordedByUser"`
}

type CurrentPeriod struct {
	StartDate    time.Time              `json:"startDate"`
	EndDate      time.Time              `json:"endDate"`
	Summary      Summary                `json:"summary"`
	Log          []EnrichedLogEntry     `json:"log"`
	HealthRecord []EnrichedHealthRecord `json:"healthRecord"`
}

type PreviousPeriod struct {
	StartDate      time.Time      `json:"startDate"`
	EndDate        time.Time      `json:"endDate"`
	Summary        Summary        `json:"summary"`
	PercentageDiff PercentageDiff `json:"percentageDiff"`
}

type DailyReport struct {
	CurrentPeriod  CurrentPeriod  `json:"currentPeriod"`
	PreviousPeriod PreviousPeriod `json:"previousPeriod"`
}

type Service interface {
	GeneralSummary(ctx context.Context) (GeneralSummary, error)
	DailyReport(ctx context.Context, request DailyReportRequest) (DailyReport, error)
}

type ReportService struct {
	Store interface {
		ListChildren(ctx context.Context) ([]store.Child, error)
		ListStaff(ctx context.Context) ([]store.Staff, error)
		ListUsers(ctx context.Context) ([]store.User, error)

		GetChildrenByIds(ctx context.Context, ids []string) ([]store.Child, error)
		GetStaffByIds(ctx context.Context, ids []string) ([]store.Staff, error)
		GetUsersByIds(ctx context.Context, ids []string) ([]store.User, error)

		ListDailyLogEntries(ctx context.Context, options store.EntrySearchOptions) ([]store.DailyLogEntry, error)
		ListHealthRecordEntries(ctx context.Context, options store.EntrySearchOptions) ([]store.HealthRecordEntry, error)
	} `inject:""`
	Config *shared.AppConfig `inject:""`
	Logger *log.Logger       `inject:""`
}

func (r *ReportService) maxInSetSize() int {
	if r.Config == nil || r.Config.MaxInSetSize <= 0 {
		return store.DefaultMaxInSetSize
	}
	return r.Config.MaxInSetSize
}

func (r *ReportService) GeneralSummary(ctx context.Context) (GeneralSummary, error) {
	var summary GeneralSummary
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		staff, err := r.Store.ListStaff(gctx)
		summary.StaffCount = len(staff)
		return errors.Wrap(err, "failed to list staff")
	})
	g.Go(func() error {
		children, err := r.Store.ListChildren(gctx)
		summary.ChildrenCount = len(children)
		return errors.Wrap(err, "failed to list children")
	})
	g.Go(func() error {
		users, err := r.Store.ListUsers(gctx)
		summary.UsersCount = len(users)
		return errors.Wrap(err, "failed to list users")
	})

	if err := g.Wait(); err != nil {
		return GeneralSummary{}, err
	}
	return summary, nil
}

func (r *ReportService) DailyReport(ctx context.Context, request DailyReportRequest) (DailyReport, error) {
	if request.Period.End.Before(request.Period.Start) {
		return DailyReport{}, ErrInvalidPeriod
	}
	for name, ids := range map[string][]string{
		"child_id": request.Filters.ChildIds,
		"staff_id": request.Filters.StaffIds,
		"user_id":  request.Filters.UserIds,
	} {
		if len(ids) > r.maxInSetSize() {
			return DailyReport{}, errors.Wrapf(ErrTooManyFilterValues, "%s accepts at most %d values", name, r.maxInSetSize())
		}
	}

	current := request.Period
	previous := current.Previous()
	r.Logger.Debug(ctx, "building daily report",
		"start", current.Start, "end", current.End,
		"previousStart", previous.Start, "previousEnd", previous.End)

	var currentEntries, previousEntries periodEntries
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		currentEntries, err = r.fetchPeriod(gctx, current, request.Filters)
		return errors.Wrap(err, "failed to fetch current period")
	})
	g.Go(func() (err error) {
		previousEntries, err = r.fetchPeriod(gctx, previous, request.Filters)
		return errors.Wrap(err, "failed to fetch previous period")
	})
	if err := g.Wait(); err != nil {
		return DailyReport{}, err
	}

	currentSummary := Tally(currentEntries.logs, len(currentEntries.healthRecords))
	previousSummary := Tally(previousEntries.logs, len(previousEntries.healthRecords))

	enrichedLogs, enrichedHealthRecords, err := r.enrich(ctx, currentEntries)
	if err != nil {
		return DailyReport{}, err
	}

	return DailyReport{
		CurrentPeriod: CurrentPeriod{
			StartDate:    current.Start.UTC(),
			EndDate:      current.End.UTC(),
			Summary:      currentSummary,
			Log:          enrichedLogs,
			HealthRecord: enrichedHealthRecords,
		},
		PreviousPeriod: PreviousPeriod{
			StartDate:      previous.Start.UTC(),
			EndDate:        previous.End.UTC(),
			Summary:        previousSummary,
			PercentageDiff: Compare(currentSummary, previousSummary),
		},
	}, nil
}

type periodEntries struct {
	logs          []store.DailyLogEntry
	healthRecords []store.HealthRecordEntry
}

func (r *ReportService) fetchPeriod(ctx context.Context, period Period, filters Filters) (periodEntries, error) {
	var entries periodEntries
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		entries.logs, err = r.Store.ListDailyLogEntries(gctx, store.EntrySearchOptions{
			From:     period.Start,
			To:       period.End,
			ChildIds: filters.ChildIds,
			StaffIds: filters.StaffIds,
		})
		return errors.Wrap(err, "failed to list daily log entries")
	})
	g.Go(func() (err error) {
		entries.healthRecords, err = r.Store.ListHealthRecordEntries(gctx, store.EntrySearchOptions{
			From:     period.Start,
			To:       period.End,
			ChildIds: filters.ChildIds,
			UserIds:  filters.UserIds,
		})
		return errors.Wrap(err, "failed to list health record entries")
	})

	err := g.Wait()
	return entries, err
}

// enrich joins the entries with the children, staff and users they
// reference. A reference to a missing document is left nil.
func (r *ReportService) enrich(ctx context.Context, entries periodEntries) ([]EnrichedLogEntry, []EnrichedHealthRecord, error) {
	childIds, staffIds, userIds := newIdSet(), newIdSet(), newIdSet()
	for _, entry := range entries.logs {
		childIds.add(entry.ChildId)
		staffIds.add(entry.StaffId)
	}
	for _, entry := range entries.healthRecords {
		childIds.add(entry.ChildId)
		userIds.add(entry.RecordedByUserId)
	}

	children := map[string]*store.Child{}
	staff := map[string]*store.Staff{}
	users := map[string]*store.User{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for _, chunk := range chunkIds(childIds.ids, r.maxInSetSize()) {
			found, err := r.Store.GetChildrenByIds(gctx, chunk)
			if err != nil {
				return errors.Wrap(err, "failed to get children")
			}
			for i := range found {
				children[found[i].Id] = &found[i]
			}
		}
		return nil
	})
	g.Go(func() error {
		for _, chunk := range chunkIds(staffIds.ids, r.maxInSetSize()) {
			found, err := r.Store.GetStaffByIds(gctx, chunk)
			if err != nil {
				return errors.Wrap(err, "failed to get staff")
			}
			for i := range found {
				staff[found[i].Id] = &found[i]
			}
		}
		return nil
	})
	g.Go(func() error {
		for _, chunk := range chunkIds(userIds.ids, r.maxInSetSize()) {
			found, err := r.Store.GetUsersByIds(gctx, chunk)
			if err != nil {
				return errors.Wrap(err, "failed to get users")
			}
			for i := range found {
				users[found[i].Id] = &found[i]
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	logs := make([]EnrichedLogEntry, 0, len(entries.logs))
	for _, entry := range entries.logs {
		logs = append(logs, EnrichedLogEntry{
			DailyLogEntry: entry,
			Child:         children[entry.ChildId],
			Staff:         staff[entry.StaffId],
		})
	}

	healthRecords := make([]EnrichedHealthRecord, 0, len(entries.healthRecords))
	for _, entry := range entries.healthRecords {
		healthRecords = append(healthRecords, EnrichedHealthRecord{
			HealthRecordEntry: entry,
			Child:             children[entry.ChildId],
			RecordedByUser:    users[entry.RecordedByUserId],
		})
	}

	return logs, healthRecords, nil
}
