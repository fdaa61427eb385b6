package errors

import "errors"

// Domain errors shared between repositories, services and handlers
var (
	ErrNotFound          = errors.New("document not found")
	ErrInvalidID         = errors.New("invalid document id")
	ErrCouponNotFound    = errors.New("coupon not found")
	ErrCouponCodeExists  = errors.New("coupon code already exists")
	ErrCouponAlreadyUsed = errors.New("coupon already used")
	ErrNoUsers           = errors.New("no users to assign the coupon to")
	ErrMissingUserEmail  = errors.New("userEmail is required unless forAll is set")
	ErrInvalidOrder      = errors.New("order must include a customer and at least one item")
)
