package reports

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/littleones/daycare-api/api/shared"

	"github.com/araddon/dateparse"
	"github.com/go-kit/kit/endpoint"
	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/pkg/errors"
)

type HandlerFactory struct {
	Service Service           `inject:""`
	Config  *shared.AppConfig `inject:""`
}

func (h *HandlerFactory) General(opts []kithttp.ServerOption) *kithttp.Server {
	return kithttp.NewServer(
		makeGeneralEndpoint(h.Service),
		ignorePayload,
		shared.EncodeResponse200,
		opts...,
	)
}

func (h *HandlerFactory) Daily(opts []kithttp.ServerOption) *kithttp.Server {
	return kithttp.NewServer(
		makeDailyEndpoint(h.Service),
		h.decodeDailyReportRequest,
		shared.EncodeResponse200,
		opts...,
	)
}

func makeGeneralEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		summary, err := svc.GeneralSummary(ctx)
		if err != nil {
			return nil, err
		}
		return summary, nil
	}
}

func makeDailyEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request interface{}) (interface{}, error) {
		req := request.(DailyReportRequest)
		report, err := svc.DailyReport(ctx, req)
		if err != nil {
			return nil, err
		}
		return report, nil
	}
}

func (h *HandlerFactory) location() (*time.Location, error) {
	if h.Config == nil || h.Config.ReportTimezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(h.Config.ReportTimezone)
}

// decodeDailyReportRequest reads start_date and end_date, defaulting to the
// whole current day, and the child_id, staff_id and user_id filters.
func (h *HandlerFactory) decodeDailyReportRequest(_ context.Context, r *http.Request) (interface{}, error) {
	loc, err := h.location()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load report timezone")
	}

	query := r.URL.Query()
	now := time.Now().In(loc)
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	start, err := parseDate(query.Get("start_date"), startOfDay, loc)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidDate, "start_date: "+err.Error())
	}
	end, err := parseDate(query.Get("end_date"), startOfDay.AddDate(0, 0, 1).Add(-time.Millisecond), loc)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidDate, "end_date: "+err.Error())
	}

	return DailyReportRequest{
		Period: Period{Start: start, End: end},
		Filters: Filters{
			ChildIds: multiValue(query, "child_id"),
			StaffIds: multiValue(query, "staff_id"),
			UserIds:  multiValue(query, "user_id"),
		},
	}, nil
}

func parseDate(value string, fallback time.Time, loc *time.Location) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	return dateparse.ParseIn(strings.TrimSpace(value), loc)
}

// multiValue accepts repeated parameters and comma separated values. Blank
// values are dropped and duplicates removed.
func multiValue(query url.Values, key string) []string {
	set := newIdSet()
	for _, raw := range query[key] {
		for _, value := range strings.Split(raw, ",") {
			set.add(strings.TrimSpace(value))
		}
	}
	return set.ids
}

func ignorePayload(_ context.Context, r *http.Request) (interface{}, error) {
	return nil, nil
}

// encode errors from business-logic
func EncodeError(_ context.Context, err error, w http.ResponseWriter) {
	switch errors.Cause(err) {
	case ErrInvalidDate, ErrInvalidPeriod, ErrTooManyFilterValues:
		shared.HttpError(w, shared.NewError(err.Error()), http.StatusBadRequest)
	default:
		shared.EncodeCommonError(err, w)
	}
}
