package reports_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"time"

	. "github.com/littleones/daycare-api/api/reports"
	"github.com/littleones/daycare-api/api/shared"
	"github.com/littleones/daycare-api/common/log"
	"github.com/littleones/daycare-api/common/store"
	storeMocks "github.com/littleones/daycare-api/common/store/mocks"

	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
)

type sequenceGenerator struct {
	next int
}

func (g *sequenceGenerator) GenerateUuid() string {
	g.next++
	return fmt.Sprintf("id%d", g.next)
}

func at(day, hour int) time.Time {
	return time.Date(2024, time.January, day, hour, 0, 0, 0, time.UTC)
}

func logTypes(entries []EnrichedLogEntry) []string {
	types := []string{}
	for _, entry := range entries {
		types = append(types, entry.Type)
	}
	return types
}

var _ = Describe("Transport", func() {

	var (
		ctx      = context.Background()
		router   *mux.Router
		recorder *httptest.ResponseRecorder

		concreteStore *store.MemoryStore
		mockStore     *storeMocks.MockStore

		httpEndpointToUse string
		report            DailyReport
	)

	var (
		assertHttpCode = func(code int) {
			It(fmt.Sprintf("should respond with status code %d", code), func() {
				Expect(recorder.Code).To(Equal(code))
			})
		}

		assertJsonResponse = func(response string) {
			It("should respond with json response", func() {
				Expect(recorder.Header().Get("Content-Type")).To(ContainSubstring("application/json"))
				Expect(recorder.Body.String()).To(MatchJSON(response))
			})
		}

		assertBadRequest = func() {
			assertHttpCode(http.StatusBadRequest)
			It("should describe the error", func() {
				Expect(recorder.Body.String()).To(ContainSubstring(`"error":true`))
			})
		}
	)

	BeforeEach(func() {
		config := &shared.AppConfig{MaxInSetSize: 2, ReportTimezone: "UTC"}
		concreteStore = &store.MemoryStore{
			StringGenerator: &sequenceGenerator{},
			MaxInSetSize:    2,
		}
		mockStore = &storeMocks.MockStore{Store: concreteStore}

		// id1 .. id4
		concreteStore.AddChild(ctx, store.Child{Name: "Goten", ParentName: "Chichi", Email: "chichi@namek.com", Address: "Mount Paozu"})
		concreteStore.AddChild(ctx, store.Child{Name: "Trunks", ParentName: "Bulma", Email: "bulma@capsule.com", Address: "West City"})
		concreteStore.AddStaff(ctx, store.Staff{Name: "Vegeta", Email: "vegeta@saiyan.com", Address: "West City"})
		concreteStore.AddUser(ctx, store.User{FirstName: "bulma@capsule.com", LastName: "Brief"})

		// current period, 2024-01-10 to 2024-01-12
		concreteStore.AddDailyLogEntry(ctx, store.DailyLogEntry{Type: "Meal", Details: "rice", Timestamp: at(10, 8), ChildId: "id1", StaffId: "id3"})
		concreteStore.AddDailyLogEntry(ctx, store.DailyLogEntry{Type: "Meal", Details: "soup", Timestamp: at(11, 8), ChildId: "id2", StaffId: "id3"})
		concreteStore.AddDailyLogEntry(ctx, store.DailyLogEntry{Type: "Nap", Details: "1h", Timestamp: at(11, 13), ChildId: "id1", StaffId: "id3"})
		concreteStore.AddDailyLogEntry(ctx, store.DailyLogEntry{Type: "Foo", Details: "?", Timestamp: at(11, 15), ChildId: "ghost", StaffId: "id3"})
		concreteStore.AddHealthRecordEntry(ctx, store.HealthRecordEntry{Type: "Fever", Details: "38.5", ActionTaken: "called parents", Timestamp: at(11, 9), ChildId: "id1", RecordedByUserId: "id4"})

		// previous period
		concreteStore.AddDailyLogEntry(ctx, store.DailyLogEntry{Type: "Meal", Details: "bread", Timestamp: at(9, 8), ChildId: "id1", StaffId: "id3"})
		concreteStore.AddDailyLogEntry(ctx, store.DailyLogEntry{Type: "Mood", Details: "happy", Timestamp: at(8, 8), ChildId: "id2", StaffId: "gone"})

		reportService := &ReportService{
			Store:  mockStore,
			Config: config,
			Logger: log.NewLoggerWithWriter("daycare", ioutil.Discard),
		}

		router = mux.NewRouter()
		opts := []kithttp.ServerOption{
			kithttp.ServerErrorLogger(log.NewLoggerWithWriter("daycare", ioutil.Discard)),
			kithttp.ServerErrorEncoder(EncodeError),
		}

		handlerFactory := HandlerFactory{
			Service: reportService,
			Config:  config,
		}

		router.Handle("/report/general", handlerFactory.General(opts)).Methods(http.MethodGet)
		router.Handle("/report/daily", handlerFactory.Daily(opts)).Methods(http.MethodGet)
		recorder = httptest.NewRecorder()
		report = DailyReport{}
	})

	JustBeforeEach(func() {
		req, _ := http.NewRequest(http.MethodGet, httpEndpointToUse, nil)
		router.ServeHTTP(recorder, req)
		if recorder.Code == http.StatusOK {
			json.Unmarshal(recorder.Body.Bytes(), &report)
		}
	})

	Describe("GENERAL", func() {

		BeforeEach(func() {
			httpEndpointToUse = "/report/general"
		})

		Context("When the store answers", func() {
			assertJsonResponse(`{"staffCount": 1, "childrenCount": 2, "usersCount": 1}`)
			assertHttpCode(http.StatusOK)
		})

		Context("When the store fails", func() {
			BeforeEach(func() {
				mockStore.On("ListUsers", mock.Anything).Return([]store.User{}, errors.New("unavailable"))
			})
			assertJsonResponse(`{"error": true, "error_description": "An error occurred, please try again later"}`)
			assertHttpCode(http.StatusInternalServerError)
		})
	})

	Describe("DAILY", func() {

		Context("When requesting a period", func() {
			BeforeEach(func() {
				httpEndpointToUse = "/report/daily?start_date=2024-01-10&end_date=2024-01-12"
			})

			assertHttpCode(http.StatusOK)

			It("should return both windows", func() {
				Expect(report.CurrentPeriod.StartDate).To(BeTemporally("==", at(10, 0)))
				Expect(report.CurrentPeriod.EndDate).To(BeTemporally("==", at(12, 0)))
				Expect(report.PreviousPeriod.EndDate).To(BeTemporally("==", at(10, 0).Add(-time.Millisecond)))
				Expect(report.PreviousPeriod.StartDate).To(BeTemporally("==", at(8, 0).Add(-time.Millisecond)))
			})

			It("should summarize the current period", func() {
				Expect(report.CurrentPeriod.Summary).To(Equal(Summary{Meal: 2, Nap: 1, Incident: 1}))
			})

			It("should summarize the previous period", func() {
				Expect(report.PreviousPeriod.Summary).To(Equal(Summary{Meal: 1, Mood: 1}))
			})

			It("should compare both periods", func() {
				Expect(report.PreviousPeriod.PercentageDiff).To(Equal(PercentageDiff{
					Meal:     100,
					Nap:      100,
					Mood:     -100,
					Diaper:   100,
					Incident: 100,
				}))
			})

			It("should return the current entries ordered by timestamp", func() {
				Expect(logTypes(report.CurrentPeriod.Log)).To(Equal([]string{"Meal", "Meal", "Nap", "Foo"}))
				Expect(report.CurrentPeriod.HealthRecord).To(HaveLen(1))
			})

			It("should enrich entries with their references", func() {
				first := report.CurrentPeriod.Log[0]
				Expect(first.Id).To(Equal("id5"))
				Expect(first.Child).To(Equal(&store.Child{Id: "id1", Name: "Goten", ParentName: "Chichi", Email: "chichi@namek.com", Address: "Mount Paozu"}))
				Expect(first.Staff).To(Equal(&store.Staff{Id: "id3", Name: "Vegeta", Email: "vegeta@saiyan.com", Address: "West City"}))

				health := report.CurrentPeriod.HealthRecord[0]
				Expect(health.ActionTaken).To(Equal("called parents"))
				Expect(health.Child.Name).To(Equal("Goten"))
				Expect(health.RecordedByUser).To(Equal(&store.User{Id: "id4", FirstName: "bulma@capsule.com", LastName: "Brief"}))
			})

			It("should enrich missing references to null", func() {
				ghost := report.CurrentPeriod.Log[3]
				Expect(ghost.Type).To(Equal("Foo"))
				Expect(ghost.Child).To(BeNil())
				Expect(ghost.Staff).NotTo(BeNil())
				Expect(recorder.Body.String()).To(ContainSubstring(`"child":null`))
			})
		})

		Context("When filtering on a child", func() {
			BeforeEach(func() {
				httpEndpointToUse = "/report/daily?start_date=2024-01-10&end_date=2024-01-12&child_id=id1"
			})
			assertHttpCode(http.StatusOK)
			It("should only return the child entries", func() {
				Expect(logTypes(report.CurrentPeriod.Log)).To(Equal([]string{"Meal", "Nap"}))
				Expect(report.CurrentPeriod.HealthRecord).To(HaveLen(1))
				Expect(report.PreviousPeriod.Summary).To(Equal(Summary{Meal: 1}))
			})
		})

		Context("When filtering on children with comma separated and repeated values", func() {
			BeforeEach(func() {
				httpEndpointToUse = "/report/daily?start_date=2024-01-10&end_date=2024-01-12&child_id=id1,id2&child_id=id1"
			})
			assertHttpCode(http.StatusOK)
			It("should return the entries of every child", func() {
				Expect(logTypes(report.CurrentPeriod.Log)).To(Equal([]string{"Meal", "Meal", "Nap"}))
			})
		})

		Context("When filtering on staff", func() {
			BeforeEach(func() {
				httpEndpointToUse = "/report/daily?start_date=2024-01-10&end_date=2024-01-12&staff_id=nobody"
			})
			assertHttpCode(http.StatusOK)
			It("should filter log entries only", func() {
				Expect(report.CurrentPeriod.Log).To(BeEmpty())
				Expect(report.CurrentPeriod.HealthRecord).To(HaveLen(1))
				Expect(recorder.Body.String()).To(ContainSubstring(`"log":[]`))
			})
		})

		Context("When filtering on users", func() {
			BeforeEach(func() {
				httpEndpointToUse = "/report/daily?start_date=2024-01-10&end_date=2024-01-12&user_id=nobody"
			})
			assertHttpCode(http.StatusOK)
			It("should filter health records only", func() {
				Expect(report.CurrentPeriod.Log).To(HaveLen(4))
				Expect(report.CurrentPeriod.HealthRecord).To(BeEmpty())
				Expect(report.CurrentPeriod.Summary.Incident).To(Equal(0))
			})
		})

		Context("When no dates are given", func() {
			BeforeEach(func() {
				httpEndpointToUse = "/report/daily"
			})
			assertHttpCode(http.StatusOK)
			It("should report on the current day", func() {
				now := time.Now().UTC()
				today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
				Expect(report.CurrentPeriod.StartDate).To(BeTemporally("==", today))
				Expect(report.CurrentPeriod.EndDate).To(BeTemporally("==", today.AddDate(0, 0, 1).Add(-time.Millisecond)))
				Expect(report.CurrentPeriod.Log).To(BeEmpty())
			})
		})

		Context("When a date cannot be parsed", func() {
			BeforeEach(func() {
				httpEndpointToUse = "/report/daily?start_date=yesterday-ish"
			})
			assertBadRequest()
		})

		Context("When the period ends before it starts", func() {
			BeforeEach(func() {
				httpEndpointToUse = "/report/daily?start_date=2024-01-12&end_date=2024-01-10"
			})
			assertJsonResponse(`{"error": true, "error_description": "end_date must not be before start_date"}`)
			assertHttpCode(http.StatusBadRequest)
		})

		Context("When a filter has too many values", func() {
			BeforeEach(func() {
				httpEndpointToUse = "/report/daily?start_date=2024-01-10&end_date=2024-01-12&staff_id=a,b,c"
			})
			assertBadRequest()
		})

		Context("When a store query fails", func() {
			BeforeEach(func() {
				httpEndpointToUse = "/report/daily?start_date=2024-01-10&end_date=2024-01-12"
				mockStore.On("ListHealthRecordEntries", mock.Anything, mock.Anything).Return([]store.HealthRecordEntry{}, errors.New("deadline exceeded"))
			})
			assertJsonResponse(`{"error": true, "error_description": "An error occurred, please try again later"}`)
			assertHttpCode(http.StatusInternalServerError)
		})

		Context("When an enrichment lookup fails", func() {
			BeforeEach(func() {
				httpEndpointToUse = "/report/daily?start_date=2024-01-10&end_date=2024-01-12"
				mockStore.On("GetStaffByIds", mock.Anything, mock.Anything).Return([]store.Staff{}, errors.New("deadline exceeded"))
			})
			assertHttpCode(http.StatusInternalServerError)
		})
	})
})
