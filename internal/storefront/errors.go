package storefront

import "errors"

var (
	ErrAuthRequired         = errors.New("authentication required")
	ErrForbidden            = errors.New("forbidden")
	ErrConfirmationRequired = errors.New("confirmation required")
	ErrInvalidView          = errors.New("invalid view")
	ErrPaymentFailed        = errors.New("payment was not validated")
	ErrPaymentRefMismatch   = errors.New("payment reference was not issued for this checkout")
)
