package shade

import "errors"

// Construction-time errors. The evaluator itself never fails; paints are
// validated once when they are built.
var (
	// ErrNoColors is returned when a gradient has no colors.
	ErrNoColors = errors.New("shade: gradient has no colors")

	// ErrTooManyColors is returned when a gradient exceeds MaxColors.
	ErrTooManyColors = errors.New("shade: too many gradient colors")

	// ErrStopCount is returned when explicit stops do not match the color count.
	ErrStopCount = errors.New("shade: stop count does not match color count")

	// ErrStopRange is returned when a stop lies outside [0, 1].
	ErrStopRange = errors.New("shade: stop out of range")

	// ErrStopOrder is returned when stops are not non-decreasing.
	ErrStopOrder = errors.New("shade: stops not in order")

	// ErrDegenerateGeometry is returned for zero-length linear gradients and
	// non-positive radii.
	ErrDegenerateGeometry = errors.New("shade: degenerate gradient geometry")

	// ErrNilTexture is returned when an image paint has no texture.
	ErrNilTexture = errors.New("shade: nil texture")
)

// MaxColors is the number of color and stop slots in the uploaded gradient
// block. Gradients are resizable internally; the cap applies at upload.
const MaxColors = 16
