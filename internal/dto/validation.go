package dto

import (
	"errors"
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// RegisterCustomValidations teaches gin's binding engine to see through
// decimal.Decimal fields so that numeric rules (required, gt, gte) apply to
// the decimal's value rather than the struct itself.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator engine is not *validator.Validate")
	}
	v.RegisterCustomTypeFunc(decimalAsFloat, decimal.Decimal{})
	return nil
}

func decimalAsFloat(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}
