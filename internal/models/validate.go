package models

import (
	"github.com/mswiatek/web_shop/internal/validation"
)

const phoneDigits = 10

// Validate checks the order fields that must hold before the row may be
// committed. It collects every violation instead of stopping at the first,
// and performs no I/O: persisting a validated order is the repo's job, so
// callers can tell a validation failure from a storage failure.
//
// Zip codes are checked for digits only, without a fixed length: postal code
// formats vary by country and the order carries a free-form country field.
func (o *Order) Validate() error {
	var errs validation.Errors

	if o.Email == "" {
		errs = append(errs, &validation.FieldError{Field: "email", Err: validation.ErrMissing})
	} else if err := validation.Email(o.Email); err != nil {
		errs = append(errs, &validation.FieldError{Field: "email", Err: err})
	}

	if o.PhoneNumber == "" {
		errs = append(errs, &validation.FieldError{Field: "phone_number", Err: validation.ErrMissing})
	} else if err := validation.NumericString(o.PhoneNumber, phoneDigits); err != nil {
		errs = append(errs, &validation.FieldError{Field: "phone_number", Err: err})
	}

	if o.ZipCode == "" {
		errs = append(errs, &validation.FieldError{Field: "zip_code", Err: validation.ErrMissing})
	} else if err := validation.NumericString(o.ZipCode, 0); err != nil {
		errs = append(errs, &validation.FieldError{Field: "zip_code", Err: err})
	}

	if !ValidDeliveryMethod(o.DeliveryMethod) {
		errs = append(errs, &validation.FieldError{Field: "delivery_method", Err: validation.ErrInvalidChoice})
	}
	if !ValidPaymentMethod(o.PaymentMethod) {
		errs = append(errs, &validation.FieldError{Field: "payment_method", Err: validation.ErrInvalidChoice})
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
