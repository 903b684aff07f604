package domain

import "errors"

var (
	// ErrInvalidScheme is returned for relative URLs and anything but http/https.
	ErrInvalidScheme = errors.New("url must be absolute with http or https scheme")
	// ErrMissingHost is returned for URLs such as "https://".
	ErrMissingHost = errors.New("url has no host")
)

// ValidationError reports user input that cannot be saved.
// Nothing is written when it is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
