package service

import "errors"

// Domain outcomes the endpoint layer maps to status codes. Anything else
// surfaces as an internal failure with the raw message.
var (
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrPharmacyRequired = errors.New("please set up your pharmacy first")
)
