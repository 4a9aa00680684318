package staff_test

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/littleones/daycare-api/api/shared/mocks"
	. "github.com/littleones/daycare-api/api/staff"
	"github.com/littleones/daycare-api/common/log"
	"github.com/littleones/daycare-api/common/store"
	storeMocks "github.com/littleones/daycare-api/common/store/mocks"
	"github.com/littleones/daycare-api/common/validation"

	kithttp "github.com/go-kit/kit/transport/http"
	"github.com/gorilla/mux"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"
)

var _ = Describe("Transport", func() {

	var (
		router   *mux.Router
		recorder *httptest.ResponseRecorder

		concreteStore       *store.MemoryStore
		mockStore           *storeMocks.MockStore
		mockStringGenerator *MockStringGenerator

		httpMethodToUse, httpEndpointToUse, httpBodyToUse string
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
	)

	BeforeEach(func() {
		mockStringGenerator = &MockStringGenerator{}
		mockStringGenerator.On("GenerateUuid").Return("staffId1").Once()
		mockStringGenerator.On("GenerateUuid").Return("staffId2").Once()

		concreteStore = &store.MemoryStore{
			StringGenerator: mockStringGenerator,
		}
		mockStore = &storeMocks.MockStore{Store: concreteStore}

		staffService := &StaffService{
			Store:     mockStore,
			Validator: validation.New(),
			Logger:    log.NewLoggerWithWriter("daycare", ioutil.Discard),
		}

		httpBodyToUse = ""
		router = mux.NewRouter()
		opts := []kithttp.ServerOption{
			kithttp.ServerErrorLogger(log.NewLoggerWithWriter("daycare", ioutil.Discard)),
			kithttp.ServerErrorEncoder(EncodeError),
		}

		handlerFactory := HandlerFactory{
			Service: staffService,
		}

		router.Handle("/staff", handlerFactory.Add(opts)).Methods(http.MethodPost)
		router.Handle("/staff", handlerFactory.List(opts)).Methods(http.MethodGet)
		recorder = httptest.NewRecorder()
	})

	JustBeforeEach(func() {
		req, _ := http.NewRequest(httpMethodToUse, httpEndpointToUse, strings.NewReader(httpBodyToUse))
		router.ServeHTTP(recorder, req)
	})

	Describe("LIST", func() {

		BeforeEach(func() {
			httpMethodToUse = http.MethodGet
			httpEndpointToUse = "/staff"
		})

		Context("When there is no staff", func() {
			assertJsonResponse(`[]`)
			assertHttpCode(http.StatusOK)
		})

		Context("When staff was seeded with first and last names", func() {
			BeforeEach(func() {
				concreteStore.AddStaff(context.Background(), store.Staff{Name: "Vegeta", Email: "vegeta@saiyan.com", Address: "West City"})
				concreteStore.AddStaff(context.Background(), store.Staff{FirstName: "Son", LastName: "Goku", Email: "goku@saiyan.com"})
			})
			assertJsonResponse(`[
				{"id": "staffId1", "name": "Vegeta", "email": "vegeta@saiyan.com", "address": "West City"},
				{"id": "staffId2", "first_name": "Son", "last_name": "Goku", "email": "goku@saiyan.com"}
			]`)
			assertHttpCode(http.StatusOK)
		})

		Context("When the store fails", func() {
			BeforeEach(func() {
				mockStore.On("ListStaff", mock.Anything).Return([]store.Staff{}, errors.New("connection refused"))
			})
			assertJsonResponse(`{"error": true, "error_description": "An error occurred, please try again later"}`)
			assertHttpCode(http.StatusInternalServerError)
		})
	})

	Describe("ADD", func() {

		BeforeEach(func() {
			httpMethodToUse = http.MethodPost
			httpEndpointToUse = "/staff"
		})

		Context("When the payload is valid", func() {
			BeforeEach(func() {
				httpBodyToUse = `{"name": "Vegeta", "email": "vegeta@saiyan.com", "address": "West City"}`
			})
			assertJsonResponse(`{"id": "staffId1", "name": "Vegeta", "email": "vegeta@saiyan.com", "address": "West City"}`)
			assertHttpCode(http.StatusCreated)
		})

		Context("When the email is malformed", func() {
			BeforeEach(func() {
				httpBodyToUse = `{"name": "Vegeta", "email": "vegeta@", "address": "West City"}`
			})
			assertJsonResponse(`{"email": ["must be a valid email address"]}`)
			assertHttpCode(http.StatusBadRequest)
		})

		Context("When the address is missing", func() {
			BeforeEach(func() {
				httpBodyToUse = `{"name": "Vegeta", "email": "vegeta@saiyan.com"}`
			})
			assertJsonResponse(`{"address": ["this field is required"]}`)
			assertHttpCode(http.StatusBadRequest)
		})

		Context("When the store fails", func() {
			BeforeEach(func() {
				httpBodyToUse = `{"name": "Vegeta", "email": "vegeta@saiyan.com", "address": "West City"}`
				mockStore.On("AddStaff", mock.Anything, mock.Anything).Return(store.Staff{}, errors.New("permission denied"))
			})
			assertJsonResponse(`{"error": true, "error_description": "An error occurred, please try again later"}`)
			assertHttpCode(http.StatusInternalServerError)
		})
	})
})
