package morphospace

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a morphospace error for callers that need to branch on it.
type Kind int

const (
	// KindValidation marks malformed input: wrong axis set, non-positive
	// counts, out-of-enum mode or waveform names.
	KindValidation Kind = iota
	// KindNotFound marks an identifier missing from a named catalog.
	KindNotFound
	// KindComputation is reserved. Every operation is total over validated
	// input, so nothing returns it today.
	KindComputation
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindComputation:
		return "computation"
	default:
		return "unknown"
	}
}

var (
	ErrValidation  = errors.New("morphospace: validation failed")
	ErrNotFound    = errors.New("morphospace: not found")
	ErrComputation = errors.New("morphospace: computation failed")
)

// Error is the single error type returned by the engine.
// Valid lists the accepted identifiers or names when Kind is
// KindNotFound, or the accepted enum values for enum validation failures.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Valid   []string
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if len(e.Valid) > 0 {
		b.WriteString(" (valid: ")
		b.WriteString(strings.Join(e.Valid, ", "))
		b.WriteString(")")
	}
	return b.String()
}

// Is lets errors.Is match an *Error against the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrComputation:
		return e.Kind == KindComputation
	}
	return false
}

// Validationf builds a KindValidation error.
func Validationf(op, format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: fmt.Sprintf(format, args...)}
}

// NotFound builds a KindNotFound error naming the catalog and the ids it does hold.
func NotFound(op, catalog, id string, valid []string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Op:      op,
		Message: fmt.Sprintf("unknown %s %q", catalog, id),
		Valid:   append([]string(nil), valid...),
	}
}

// IsValidation reports whether err carries KindValidation.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsNotFound reports whether err carries KindNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// KindOf returns the Kind of the first *Error in err's chain.
// ok is false when err holds no *Error.
func KindOf(err error) (k Kind, ok bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
