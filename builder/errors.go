// SPDX-License-Identifier: MIT

package builder

import (
	"errors"
	"fmt"
)

// ErrTooFewPoints indicates a size parameter (n, dim) below its minimum.
var ErrTooFewPoints = errors.New("builder: parameter too small")

// ErrInvalidParameter indicates a non-finite or out-of-range numeric knob
// (standard deviation, range bounds, center length, histogram entries).
var ErrInvalidParameter = errors.New("builder: invalid parameter")

// builderErrorf prefixes err with the generator name, keeping %w for errors.Is.
func builderErrorf(method, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", method, fmt.Errorf(format, args...))
}
