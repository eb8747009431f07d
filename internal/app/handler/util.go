package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"savingsdesk/internal/app/apperr"
	"savingsdesk/internal/app/model"
)

var validate = validator.New()

// Response is the envelope of every API answer
type Response struct {
	Success    bool             `json:"success"`
	Message    string           `json:"message,omitempty"`
	Data       interface{}      `json:"data,omitempty"`
	Error      string           `json:"error,omitempty"`
	Pagination *Pagination      `json:"pagination,omitempty"`
	Errors     ValidationErrors `json:"errors,omitempty"`
}

type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// readBody into json struct, an empty body leaves v untouched
func readBody(r *http.Request, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	_ = r.Body.Close()
	if err != nil {
		return fmt.Errorf("body read: %w", err)
	}

	if len(body) == 0 {
		return nil
	}

	err = json.Unmarshal(body, v)
	if err != nil {
		return fmt.Errorf("json decode: %w", err)
	}

	return nil
}

func jsonString(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// WriteError formatted in json
func WriteError(w http.ResponseWriter, message string, statusCode int) {
	WriteResponse(w, &Response{Message: message}, statusCode)
}

// WriteResponse formatted in json
func WriteResponse(w http.ResponseWriter, v interface{}, statusCode int) {
	resBody, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_, _ = w.Write(resBody)
}

// WriteAppError maps application errors onto status codes.
// Internal failures are logged and never shown to the caller.
func WriteAppError(w http.ResponseWriter, l zerolog.Logger, err error) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		l.Debug().Err(err).Msg("Not found")
		WriteError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, apperr.ErrInvalidState), errors.Is(err, apperr.ErrInvalidInput):
		l.Debug().Err(err).Msg("Rejected")
		WriteError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, apperr.ErrConflict):
		l.Debug().Err(err).Msg("Conflict")
		WriteError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, apperr.ErrUnauthorized):
		WriteError(w, "Unauthorized", http.StatusUnauthorized)
	case errors.Is(err, apperr.ErrUnavailable):
		l.Warn().Err(err).Msg("Store unavailable")
		WriteError(w, "Service temporarily unavailable", http.StatusServiceUnavailable)
	default:
		l.Error().Err(err).Send()
		WriteError(w, "Internal server error", http.StatusInternalServerError)
	}
}

type ValidationErrors []ValidationError

type ValidationError struct {
	Msg   string `json:"msg"`
	Param string `json:"param"`
	Value string `json:"value"`
}

// validateData and send errors, returns true if no validation errors
func validateData(w http.ResponseWriter, v interface{}) bool {
	err := validate.Struct(v)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		WriteError(w, err.Error(), http.StatusBadRequest)
		return false
	}

	errs := make(ValidationErrors, 0, len(verrs))
	for _, err := range verrs {
		errs = append(errs, ValidationError{
			Msg:   err.Error(),
			Param: err.Field(),
			Value: fmt.Sprintf("%v", err.Value()),
		})
	}
	writeValidationErrors(w, errs)

	return false
}

// writeValidationErrors formatted in json
func writeValidationErrors(w http.ResponseWriter, errs ValidationErrors) {
	WriteResponse(w, &Response{Message: "Validation failed", Errors: errs}, http.StatusBadRequest)
}

// pathID parses a positive numeric path parameter
func pathID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryInt falls back to zero so defaults apply
func queryInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

type ContextKeyAdmin struct{}

func ReadContextAdmin(ctx context.Context) (*model.Admin, error) {
	v := ctx.Value(ContextKeyAdmin{})
	if admin, ok := v.(*model.Admin); ok {
		return admin, nil
	}

	return nil, apperr.ErrUnauthorized
}
