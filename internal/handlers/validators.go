package handlers

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/SscSPs/abbis_ledger/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators adds the ledger's custom rules to gin's validator:
// "accounttype" for the account type enum, and a type func so numeric tags
// such as gte=0 apply to decimal.Decimal fields.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		registerErr = v.RegisterValidation("accounttype", validateAccountType)
	})
	return registerErr
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}

func validateAccountType(fl validator.FieldLevel) bool {
	t, ok := fl.Field().Interface().(domain.AccountType)
	if !ok {
		return false
	}
	return t.IsValid()
}
