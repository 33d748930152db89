package window

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the checked constructors.
var (
	ErrLength = errors.New("window: length must be positive")
	ErrEmpty  = errors.New("window: empty coefficients")
)

func checkLength(size int) error {
	if size > 0 {
		return nil
	}

	return fmt.Errorf("%w: %d", ErrLength, size)
}
