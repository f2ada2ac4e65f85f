package entity

import (
	"fmt"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-playground/validator/v10"

	"churnscore/pkg/errcodes"
)

const (
	MinAge           = 18
	MaxAge           = 92
	MinTenure        = 0
	MaxTenure        = 10
	MinNumOfProducts = 1
	MaxNumOfProducts = 4
)

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals // skip

// Customer attributes collected by the form. Build it with NewCustomer, the
// zero value is not a valid customer.
type Customer struct {
	Geography       string  `validate:"required"`
	Gender          string  `validate:"required"`
	Age             int     `validate:"min=18,max=92"`
	Balance         float64 `validate:"-"`
	CreditScore     float64 `validate:"-"`
	EstimatedSalary float64 `validate:"-"`
	Tenure          int     `validate:"min=0,max=10"`
	NumOfProducts   int     `validate:"min=1,max=4"`
	HasCreditCard   bool
	IsActiveMember  bool
}

// NewCustomer validates the ranges of c and returns it unchanged on success.
func NewCustomer(c Customer) (Customer, error) {
	if err := validate.Struct(c); err != nil {
		return Customer{}, failure.NewInvalidArgumentErrorFromError(
			fmt.Errorf("validate.Struct: %w", err),
			failure.WithCode(errcodes.InvalidCustomer),
			failure.WithDescription(err.Error()),
		)
	}

	return c, nil
}
