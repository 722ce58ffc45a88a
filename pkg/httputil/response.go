package httputil

import (
	stderrors "errors"
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	playground "github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-admin/pkg/errors"
	"github.com/jwalitptl/clinic-admin/pkg/validator"
)

// Response wraps all API responses
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// NewSuccessResponse leaves data out of the body when it is nil, including
// a typed nil pointer such as a no-op update result.
func NewSuccessResponse(data interface{}) *Response {
	if isNil(data) {
		data = nil
	}
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Ptr && rv.IsNil()
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, NewSuccessResponse(data))
}

// RespondCreated sends a 201 success response
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, NewSuccessResponse(data))
}

// RespondWithError maps err to a status code and sends an error response.
// Internal failures are logged and their details are not exposed.
func RespondWithError(c *gin.Context, err error) {
	statusCode := http.StatusInternalServerError
	message := "internal server error"

	if appErr, ok := errors.As(err); ok {
		statusCode = appErr.StatusCode()
		message = appErr.Message
	}

	if statusCode >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString("request_id")).
			Msg("request failed")
	}

	c.AbortWithStatusJSON(statusCode, NewErrorResponse(message))
}

// ParseIntParam reads a positive integer path parameter.
func ParseIntParam(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, errors.BadRequest("invalid "+name, err)
	}
	return id, nil
}

// ParseIntQuery reads an optional integer query parameter; absent means 0.
func ParseIntQuery(c *gin.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.BadRequest("invalid "+name, err)
	}
	return v, nil
}

// BindJSON decodes the body into obj and runs its binding rules. On failure
// it writes a 400 response and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		RespondWithError(c, bindError(err))
		return false
	}
	return true
}

func bindError(err error) error {
	var fieldErrs playground.ValidationErrors
	if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return errors.BadRequest(validator.Message(fieldErrs[0]), err)
	}
	return errors.BadRequest("invalid request body", err)
}
