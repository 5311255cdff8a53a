package user

import "errors"

var (
	ErrEmployeeIDRequired      = errors.New("token is not linked to an employee")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
