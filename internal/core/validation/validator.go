// Package validation wraps go-playground/validator so that every violated field of a
// domain struct is reported in a single apperrors.ValidationError.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/SscSPs/empower_finance_app/internal/apperrors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(jsonFieldName)
		// Numeric tags (gt, gte, ...) work on decimals through their float value.
		validate.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	})
	return validate
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func decimalValue(field reflect.Value) interface{} {
	d, ok := field.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	f, _ := d.Float64()
	return f
}

// Struct validates s and returns a ValidationError listing every failing field.
// It returns an empty (non-nil) ValidationError when s is valid so callers can keep
// appending cross-field checks before calling OrNil.
func Struct(s any) *apperrors.ValidationError {
	verr := apperrors.NewValidationError()

	err := instance().Struct(s)
	if err == nil {
		return verr
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add("body", err.Error())
		return verr
	}
	for _, fe := range fieldErrs {
		verr.Add(fieldPath(fe), message(fe))
	}
	return verr
}

// fieldPath drops the top-level struct name: "Transaction.location.latitude" -> "location.latitude".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "url":
		return "must be a valid URL"
	default:
		return "failed on " + fe.Tag()
	}
}
