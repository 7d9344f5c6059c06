package service

import "errors"

// Validation sentinels. The httpapi boundary maps each of these to a 400
// with a stable machine-readable code.
var (
	ErrDeviceIDRequired    = errors.New("deviceId is required")
	ErrUserNameRequired    = errors.New("userName is required")
	ErrActionRequired      = errors.New("action is required")
	ErrUnknownCommandType  = errors.New("unknown command type")
	ErrCommandIDRequired   = errors.New("id is required for this command type")
	ErrCommandNameRequired = errors.New("name is required for enroll")
)
