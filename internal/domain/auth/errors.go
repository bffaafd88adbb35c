package auth

import "errors"

var (
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrEmployeeClaimMissing  = errors.New("token is not bound to an employee")
	ErrManagerAccessRequired = errors.New("manager or owner access required")
)
