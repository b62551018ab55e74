package eligibility

import "errors"

// ErrMissingFields is returned by Predict when one or more request fields
// are absent. The model is never consulted; the caller should ask the user
// to fill all fields and resubmit.
var ErrMissingFields = errors.New("all prediction fields must be filled")

// ErrUnknownCategory is returned by Predict when the sex or education text
// is outside the enumerated vocabulary. Unlike row preparation, which drops
// such rows silently, a request comes from an enumerated form, so free text
// here is a caller error worth surfacing.
var ErrUnknownCategory = errors.New("unrecognized category")
