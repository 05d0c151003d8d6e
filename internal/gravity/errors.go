package gravity

import (
	"errors"
	"fmt"
)

// Errors wrapped by ParseError.
var (
	// ErrProductType indicates a product_type other than gravity_field.
	ErrProductType = errors.New("gravity: product type is not gravity_field")

	// ErrMissingField indicates a mandatory header keyword was not found.
	ErrMissingField = errors.New("gravity: missing mandatory header field")

	// ErrBadValue indicates a header value that could not be converted or
	// is physically meaningless.
	ErrBadValue = errors.New("gravity: invalid header value")

	// ErrNoHeaderEnd indicates the input ended before end_of_head.
	ErrNoHeaderEnd = errors.New("gravity: end_of_head not found")

	// ErrNormalization indicates an unsupported norm header.
	ErrNormalization = errors.New("gravity: unsupported coefficient normalization")

	// ErrMalformedRow indicates a data row that is not "gfc n m C S ...".
	ErrMalformedRow = errors.New("gravity: malformed coefficient row")

	// ErrIndexRange indicates a row with n or m outside [0, max_degree]
	// or m > n.
	ErrIndexRange = errors.New("gravity: degree or order out of range")
)

// ParseError reports where a coefficient file failed to parse. Line is 1-based
// and zero when the failure concerns the header as a whole.
type ParseError struct {
	Line  int
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Field != "":
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Field, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
