package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
)

// RegisterCustomValidations wires the domain enum validations into gin's
// binding validator. Call once during router setup.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("paymenttype", validatePaymentType)
}

func validatePaymentType(fl validator.FieldLevel) bool {
	switch domain.PaymentType(fl.Field().String()) {
	case domain.PaymentCash, domain.PaymentBank, domain.PaymentUPI:
		return true
	}
	return false
}
