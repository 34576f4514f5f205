package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"coursemanagement/internal/pkg/logger"
	"coursemanagement/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report the JSON names clients sent, not the Go field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// writeError maps service sentinels to status codes. Anything unknown is
// logged and reported as a 500 without leaking its text.
func writeError(w http.ResponseWriter, l logger.Logger, err error) {
	var svcErr *service.Error
	msg := err.Error()
	if errors.As(err, &svcErr) {
		msg = svcErr.Msg
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		writeMessage(w, http.StatusNotFound, msg)
	case errors.Is(err, service.ErrDuplicate), errors.Is(err, service.ErrInvalid):
		writeMessage(w, http.StatusBadRequest, msg)
	case errors.Is(err, service.ErrConflict):
		writeMessage(w, http.StatusConflict, msg)
	default:
		l.Error("request failed", logger.Error(err))
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSON reads the body into dst and runs the validate tags on it.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return &service.Error{Kind: service.ErrInvalid, Msg: "Invalid request body"}
	}
	if err := validate.Struct(dst); err != nil {
		return &service.Error{Kind: service.ErrInvalid, Msg: validationMessage(err)}
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s is invalid", fe.Field())
}

func pathID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id == 0 {
		return 0, &service.Error{Kind: service.ErrInvalid, Msg: "Invalid id"}
	}
	return uint(id), nil
}
