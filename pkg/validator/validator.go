package validator

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"

	"github.com/jwalitptl/clinic-admin/pkg/errors"
)

// Validator provides validation functionality
type Validator interface {
	Validate(interface{}) error
}

type validator struct {
	v *playground.Validate
}

// New returns a validator that reads the same `binding` tags gin enforces on
// request bodies, so services can check DTOs built outside a handler.
func New() Validator {
	v := playground.New()
	v.SetTagName("binding")
	mustRegister(v)
	return &validator{v: v}
}

// Validate checks obj's `binding` tags and reports the first failure as a
// bad request.
func (v *validator) Validate(obj interface{}) error {
	err := v.v.Struct(obj)
	if err == nil {
		return nil
	}
	if fieldErrs, ok := err.(playground.ValidationErrors); ok && len(fieldErrs) > 0 {
		return errors.BadRequest(Message(fieldErrs[0]), err)
	}
	return errors.BadRequest("invalid input", err)
}

// Message renders a field error the way the API reports it.
func Message(fe playground.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email", field)
	case "isodate":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD form", field)
	case "clocktime":
		return fmt.Sprintf("%s must be a time in HH:MM form", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte", "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

var ginOnce sync.Once

// RegisterGin adds the custom rules to gin's binding validator.
func RegisterGin() {
	ginOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*playground.Validate); ok {
			mustRegister(v)
		}
	})
}

func mustRegister(v *playground.Validate) {
	// report fields by their JSON names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("isodate", func(fl playground.FieldLevel) bool {
		return IsISODate(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	if err := v.RegisterValidation("clocktime", func(fl playground.FieldLevel) bool {
		return IsClockTime(fl.Field().String())
	}); err != nil {
		panic(err)
	}
}

// IsISODate reports whether s is a real calendar date written YYYY-MM-DD.
func IsISODate(s string) bool {
	if len(s) != len("2006-01-02") {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// IsClockTime reports whether s is a 24h HH:MM time.
func IsClockTime(s string) bool {
	if len(s) != len("15:04") {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}
