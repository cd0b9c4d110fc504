package scaling

import "errors"

var (
	// ErrNoData is returned when the sample source produced no rows.
	ErrNoData = errors.New("no usage data")

	ErrInvalidWindow = errors.New("invalid window size")
	ErrInvalidPolicy = errors.New("invalid scaling policy")
)
