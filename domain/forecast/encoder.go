package forecast

import (
	"fmt"

	"agriyield/domain/core"
)

// UnseenPolicy decides what happens when inference meets a category value
// never observed during training.
type UnseenPolicy string

const (
	// UnseenFallback silently maps the value to code 0, the first-seen
	// training class. This mirrors the historical behavior.
	UnseenFallback UnseenPolicy = "fallback"
	// UnseenWarnFallback maps to code 0 and reports the event to the caller
	UnseenWarnFallback UnseenPolicy = "warn_fallback"
	// UnseenReject fails the prediction with a schema mismatch error
	UnseenReject UnseenPolicy = "reject"
)

// ParseUnseenPolicy validates a policy string from configuration
func ParseUnseenPolicy(s string) (UnseenPolicy, error) {
	switch UnseenPolicy(s) {
	case UnseenFallback, UnseenWarnFallback, UnseenReject:
		return UnseenPolicy(s), nil
	case "":
		return UnseenFallback, nil
	}
	return "", fmt.Errorf("unknown unseen-category policy %q", s)
}

// FallbackCode is the dense code substituted for unseen category values
// under the fallback policies.
const FallbackCode = 0

// CategoryEncoder maps observed category values of one column to dense
// integer codes. Codes are assigned in first-observation order during
// fitting. Owned by the artifact bundle and never mutated after training.
type CategoryEncoder struct {
	Column  string
	Classes []string       // index == code, first-observation order
	Codes   map[string]int // value -> code
}

// NewCategoryEncoder creates an empty encoder for a column
func NewCategoryEncoder(column string) *CategoryEncoder {
	return &CategoryEncoder{
		Column: column,
		Codes:  make(map[string]int),
	}
}

// Fit assigns codes to values in the order they are first observed
func (e *CategoryEncoder) Fit(values []string) {
	for _, v := range values {
		if _, ok := e.Codes[v]; ok {
			continue
		}
		e.Codes[v] = len(e.Classes)
		e.Classes = append(e.Classes, v)
	}
}

// Encode maps a value through the fitted codes. The seen result is false
// when the value was absent from training data and a fallback policy
// substituted FallbackCode.
func (e *CategoryEncoder) Encode(value string, policy UnseenPolicy) (code int, seen bool, err error) {
	if c, ok := e.Codes[value]; ok {
		return c, true, nil
	}
	if policy == UnseenReject {
		return 0, false, fmt.Errorf("%w: column %s value %q", core.ErrUnseenCategory, e.Column, value)
	}
	return FallbackCode, false, nil
}

// Cardinality returns the number of distinct training-time classes
func (e *CategoryEncoder) Cardinality() int {
	return len(e.Classes)
}
