package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// validate is shared across inputs; validator instances cache struct
// metadata, so a single one is reused.
var validate = validator.New()

// TransactionInput is the payload for creating or replacing a transaction.
// The server assigns the id; updates replace every field.
type TransactionInput struct {
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category"    validate:"required"`
	Date        string  `json:"date"        validate:"required,datetime=2006-01-02"`
	Type        string  `json:"type"        validate:"required,oneof=expense income"`
	Amount      float64 `json:"amount"      validate:"gte=0"`
}

// Validate checks the payload before it is sent to the server. A failure
// here means nothing was dispatched.
func (in TransactionInput) Validate() error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return fmt.Errorf("invalid %s: failed %q check", strings.ToLower(fe.Field()), fe.Tag())
	}

	return fmt.Errorf("validating transaction input: %w", err)
}
