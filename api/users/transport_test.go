package users_test

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/littleones/daycare-api/api/shared/mocks"
	. "github.com/littleones/daycare-api/api/users"
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
				Expect(recorder.Body.String()).To(MatchJSON(response))
			})
		}
	)

	BeforeEach(func() {
		mockStringGenerator = &MockStringGenerator{}
		mockStringGenerator.On("GenerateUuid").Return("userId1").Once()

		concreteStore = &store.MemoryStore{
			StringGenerator: mockStringGenerator,
		}
		mockStore = &storeMocks.MockStore{Store: concreteStore}

		userService := &UserService{
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
			Service: userService,
		}

		router.Handle("/users", handlerFactory.Add(opts)).Methods(http.MethodPost)
		router.Handle("/users", handlerFactory.List(opts)).Methods(http.MethodGet)
		recorder = httptest.NewRecorder()
	})

	JustBeforeEach(func() {
		req, _ := http.NewRequest(httpMethodToUse, httpEndpointToUse, strings.NewReader(httpBodyToUse))
		router.ServeHTTP(recorder, req)
	})

	Describe("LIST", func() {

		BeforeEach(func() {
			httpMethodToUse = http.MethodGet
			httpEndpointToUse = "/users"
		})

		Context("When there are no users", func() {
			assertJsonResponse(`[]`)
			assertHttpCode(http.StatusOK)
		})

		Context("When users exist", func() {
			BeforeEach(func() {
				concreteStore.AddUser(context.Background(), store.User{FirstName: "bulma@capsule.com", LastName: "Brief"})
			})
			assertJsonResponse(`[{"id": "userId1", "first_name": "bulma@capsule.com", "last_name": "Brief"}]`)
			assertHttpCode(http.StatusOK)
		})
	})

	Describe("ADD", func() {

		BeforeEach(func() {
			httpMethodToUse = http.MethodPost
			httpEndpointToUse = "/users"
		})

		Context("When the payload is valid", func() {
			BeforeEach(func() {
				httpBodyToUse = `{"first_name": "bulma@capsule.com", "last_name": "Brief"}`
			})
			assertJsonResponse(`{"id": "userId1", "first_name": "bulma@capsule.com", "last_name": "Brief"}`)
			assertHttpCode(http.StatusCreated)
		})

		Context("When first_name is not an email address", func() {
			BeforeEach(func() {
				httpBodyToUse = `{"first_name": "Bulma", "last_name": "Brief"}`
			})
			assertJsonResponse(`{"first_name": ["must be a valid email address"]}`)
			assertHttpCode(http.StatusBadRequest)
		})

		Context("When the body is empty", func() {
			BeforeEach(func() {
				httpBodyToUse = ``
			})
			assertJsonResponse(`{"error": true, "error_description": "request body must be a json object"}`)
			assertHttpCode(http.StatusBadRequest)
		})

		Context("When the store fails", func() {
			BeforeEach(func() {
				httpBodyToUse = `{"first_name": "bulma@capsule.com", "last_name": "Brief"}`
				mockStore.On("AddUser", mock.Anything, mock.Anything).Return(store.User{}, errors.New("unavailable"))
			})
			assertJsonResponse(`{"error": true, "error_description": "An error occurred, please try again later"}`)
			assertHttpCode(http.StatusInternalServerError)
		})
	})
})
