package errors

import (
	"fmt"
)

var (
	ErrNotFound         = fmt.Errorf("not found")
	ErrValidation       = fmt.Errorf("invalid input")
	ErrIntegrity        = fmt.Errorf("integrity violation")
	ErrConflict         = fmt.Errorf("id conflict")
	ErrPermissionDenied = fmt.Errorf("permission denied")
)
