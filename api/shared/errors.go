package shared

import (
	"encoding/json"
	"net/http"

	"github.com/littleones/daycare-api/common/validation"

	"github.com/pkg/errors"
)

var (
	ErrInvalidPayload = errors.New("request body must be a json object")

	ServerError = NewError("An error occurred, please try again later")
)

type ApiError struct {
	Error       bool   `json:"error"`
	Description string `json:"error_description"`
}

func NewError(description string) ApiError {
	return ApiError{
		Error:       true,
		Description: description,
	}
}

func HttpError(w http.ResponseWriter, error ApiError, code int) {
	WriteJSON(w, error, code)
}

func WriteJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

// EncodeCommonError writes the responses shared by every resource: field
// errors and unreadable payloads are client errors, anything else is a
// server error whose details stay in the logs.
func EncodeCommonError(err error, w http.ResponseWriter) {
	switch cause := errors.Cause(err).(type) {
	case validation.FieldErrors:
		WriteJSON(w, cause, http.StatusBadRequest)
	default:
		if cause == ErrInvalidPayload {
			HttpError(w, NewError(cause.Error()), http.StatusBadRequest)
			return
		}
		HttpError(w, ServerError, http.StatusInternalServerError)
	}
}

// DecodeJSONObject reads a request body holding a single json object.
func DecodeJSONObject(r *http.Request) (map[string]interface{}, error) {
	var payload map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return nil, errors.Wrap(ErrInvalidPayload, err.Error())
	}
	if payload == nil {
		return nil, ErrInvalidPayload
	}
	return payload, nil
}
