package content

import "errors"

var (
	ErrInvalidKind     = errors.New("invalid page kind")
	ErrUnknownTheme    = errors.New("unknown theme")
	ErrDuplicateSlug   = errors.New("duplicate page slug")
	ErrMissingPractice = errors.New("practice record is missing")
	ErrMissingBase     = errors.New("base document not found")
)
