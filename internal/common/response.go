package common

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Envelope is the uniform response body: {"success": bool, "message"?: string, ...data}
type Envelope map[string]interface{}

// SendSuccess writes a successful envelope merging data into the top level
func SendSuccess(c echo.Context, status int, message string, data Envelope) error {
	body := Envelope{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range data {
		body[k] = v
	}
	return c.JSON(status, body)
}

// SendError writes a failure envelope
func SendError(c echo.Context, status int, message string) error {
	return c.JSON(status, Envelope{"success": false, "message": message})
}

// NewHTTPErrorHandler renders every error returned by a handler or middleware
// as a failure envelope. Server-side failures are logged with their cause.
func NewHTTPErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		message := "Internal server error."

		var httpErr *echo.HTTPError
		switch {
		case errors.As(err, &httpErr):
			status = httpErr.Code
			switch status {
			case http.StatusNotFound:
				message = "API route not found."
			default:
				message = fmt.Sprint(httpErr.Message)
			}
		default:
			status = StatusOf(err)
			message = MessageOf(err)
		}

		if status >= http.StatusInternalServerError {
			c.Logger().Errorf("%s %s failed: %v", c.Request().Method, c.Request().URL.Path, err)
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = SendError(c, status, message)
		}
		if writeErr != nil {
			c.Logger().Error(writeErr)
		}
	}
}

// RequestValidator adapts go-playground/validator to echo.Validator
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator reports field names using their json tags
func NewRequestValidator() *RequestValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &RequestValidator{validate: v}
}

// Validate returns a ValidationError describing every failed field
func (rv *RequestValidator) Validate(i interface{}) error {
	err := rv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return ValidationError(err.Error())
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
	}
	return ValidationError(strings.Join(messages, "; "))
}

// BindAndValidate decodes the request body and validates it
func BindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return ValidationError("Invalid request format.")
	}
	return c.Validate(req)
}
