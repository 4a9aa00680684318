package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrServerBadRequest       = errors.New("server responded with bad request")
	ErrServerError            = errors.New("server responded server error")
	ErrServerUnexpectedStatus = errors.New("server responded with unexpected status")
)

const (
	childrenPath = "/api/children"
	staffPath    = "/api/staff"
	usersPath    = "/api/users"
	reportPath   = "/api/report/"
)

type Client interface {
	ListChildren(ctx context.Context) ([]Child, error)
	AddChild(ctx context.Context, child Child) (Child, error)
	ListStaff(ctx context.Context) ([]Staff, error)
	AddStaff(ctx context.Context, staff Staff) (Staff, error)
	ListUsers(ctx context.Context) ([]User, error)
	AddUser(ctx context.Context, user User) (User, error)
	GeneralReport(ctx context.Context) (GeneralReport, error)
	DailyReport(ctx context.Context, query DailyReportQuery) (DailyReport, error)
	// Invalidate drops every cached response.
	Invalidate()
}

// DefaultClient caches list and report responses until a create on the same
// resource succeeds. A create also drops the cached reports.
type DefaultClient struct {
	protocol, hostname string
	httpClient         *http.Client
	cache              *responseCache
}

func NewDefaultClient(protocol, hostname string) (Client, error) {
	if protocol == "" || hostname == "" {
		return nil, errors.New("protocol and hostname are mandatory")
	}
	return &DefaultClient{
		protocol:   protocol,
		hostname:   hostname,
		httpClient: http.DefaultClient,
		cache:      newResponseCache(),
	}, nil
}

func (c *DefaultClient) ListChildren(ctx context.Context) ([]Child, error) {
	children := []Child{}
	err := c.get(ctx, c.url(childrenPath, nil), &children)
	return children, errors.Wrap(err, "failed to list children")
}

func (c *DefaultClient) AddChild(ctx context.Context, child Child) (Child, error) {
	created := Child{}
	err := c.create(ctx, childrenPath, child, &created)
	return created, errors.Wrap(err, "failed to add child")
}

func (c *DefaultClient) ListStaff(ctx context.Context) ([]Staff, error) {
	staff := []Staff{}
	err := c.get(ctx, c.url(staffPath, nil), &staff)
	return staff, errors.Wrap(err, "failed to list staff")
}

func (c *DefaultClient) AddStaff(ctx context.Context, staff Staff) (Staff, error) {
	created := Staff{}
	err := c.create(ctx, staffPath, staff, &created)
	return created, errors.Wrap(err, "failed to add staff")
}

func (c *DefaultClient) ListUsers(ctx context.Context) ([]User, error) {
	users := []User{}
	err := c.get(ctx, c.url(usersPath, nil), &users)
	return users, errors.Wrap(err, "failed to list users")
}

func (c *DefaultClient) AddUser(ctx context.Context, user User) (User, error) {
	created := User{}
	err := c.create(ctx, usersPath, user, &created)
	return created, errors.Wrap(err, "failed to add user")
}

func (c *DefaultClient) GeneralReport(ctx context.Context) (GeneralReport, error) {
	report := GeneralReport{}
	err := c.get(ctx, c.url(reportPath+"general", nil), &report)
	return report, errors.Wrap(err, "failed to get general report")
}

func (c *DefaultClient) DailyReport(ctx context.Context, query DailyReportQuery) (DailyReport, error) {
	report := DailyReport{}
	requestUrl := c.url(reportPath+"daily", query.values())
	// the server resolves a missing date to the current day, which the url does not capture
	if query.StartDate.IsZero() || query.EndDate.IsZero() {
		err := c.fetch(ctx, requestUrl, &report)
		return report, errors.Wrap(err, "failed to get daily report")
	}
	err := c.get(ctx, requestUrl, &report)
	return report, errors.Wrap(err, "failed to get daily report")
}

func (c *DefaultClient) Invalidate() {
	c.cache.clear()
}

func (q DailyReportQuery) values() url.Values {
	values := url.Values{}
	if !q.StartDate.IsZero() {
		values.Set("start_date", q.StartDate.UTC().Format(time.RFC3339Nano))
	}
	if !q.EndDate.IsZero() {
		values.Set("end_date", q.EndDate.UTC().Format(time.RFC3339Nano))
	}
	// sorted so that equivalent queries share a cache entry
	for key, ids := range map[string][]string{"child_id": q.ChildIds, "staff_id": q.StaffIds, "user_id": q.UserIds} {
		if len(ids) == 0 {
			continue
		}
		sorted := append([]string{}, ids...)
		sort.Strings(sorted)
		values.Set(key, strings.Join(sorted, ","))
	}
	return values
}

func (c *DefaultClient) url(path string, query url.Values) url.URL {
	u := url.URL{Scheme: c.protocol, Host: c.hostname, Path: path}
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u
}

func (c *DefaultClient) get(ctx context.Context, requestUrl url.URL, out interface{}) error {
	key := requestUrl.RequestURI()
	if body, ok := c.cache.get(key); ok {
		return errors.Wrap(json.Unmarshal(body, out), "failed to decode cached response")
	}

	body, err := c.getBody(ctx, requestUrl)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "failed to decode json response")
	}

	c.cache.set(key, body)
	return nil
}

// fetch is get without the response cache.
func (c *DefaultClient) fetch(ctx context.Context, requestUrl url.URL, out interface{}) error {
	body, err := c.getBody(ctx, requestUrl)
	if err != nil {
		return err
	}
	return errors.Wrap(json.Unmarshal(body, out), "failed to decode json response")
}

func (c *DefaultClient) getBody(ctx context.Context, requestUrl url.URL) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, requestUrl.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build request")
	}

	body, err := c.performRequest(ctx, req)
	return body, errors.Wrap(err, "failed to perform request")
}

func (c *DefaultClient) create(ctx context.Context, path string, payload, out interface{}) error {
	requestBody, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to json encode the payload")
	}

	requestUrl := c.url(path, nil)
	req, err := http.NewRequest(http.MethodPost, requestUrl.String(), bytes.NewReader(requestBody))
	if err != nil {
		return errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.performRequest(ctx, req)
	if err != nil {
		return errors.Wrap(err, "failed to perform request")
	}
	c.cache.invalidate(path, reportPath)

	return errors.Wrap(json.Unmarshal(body, out), "failed to decode json response")
}

// performRequest returns the body of 2xx responses. A 400 carrying a field
// error map is returned as FieldErrors.
func (c *DefaultClient) performRequest(ctx context.Context, r *http.Request) ([]byte, error) {
	r = r.WithContext(ctx)
	resp, err := c.httpClient.Do(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute the http request")
	}
	defer resp.Body.Close()

	b, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return b, nil
	case resp.StatusCode == http.StatusBadRequest:
		fieldErrors := FieldErrors{}
		if json.Unmarshal(b, &fieldErrors) == nil && len(fieldErrors) > 0 {
			return nil, fieldErrors
		}
		err = ErrServerBadRequest
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		err = ErrServerBadRequest
	case resp.StatusCode >= 500:
		err = ErrServerError
	default:
		err = ErrServerUnexpectedStatus
	}

	return nil, errors.Wrapf(err, "server responded with status code %v, body: %s", resp.StatusCode, b)
}

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field, messages := range e {
		fields = append(fields, fmt.Sprintf("%s: %s", field, strings.Join(messages, ", ")))
	}
	sort.Strings(fields)
	return "invalid payload: " + strings.Join(fields, "; ")
}
