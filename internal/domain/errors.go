package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidCatalog marks a malformed RubricCatalog. Catalog errors are fatal
// at load time; nothing downstream should see an invalid catalog.
var ErrInvalidCatalog = errors.New("invalid rubric catalog")

// ErrProfileNotFound is returned by operations that need an existing profile.
var ErrProfileNotFound = errors.New("maturity profile not found")

// ErrUnknownDomain is returned when a domain id is not in the catalog.
var ErrUnknownDomain = errors.New("unknown maturity domain")

func configErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidCatalog, fmt.Sprintf(format, args...))
}
