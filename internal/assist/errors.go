package assist

import "errors"

var (
	// ErrCredentialsMissing means no generative service is configured.
	ErrCredentialsMissing = errors.New("assist: api credentials missing")
	// ErrGenerationFailed wraps transport or service failures.
	ErrGenerationFailed = errors.New("assist: generation failed")
	// ErrEmptyResponse means the analysis call returned no text.
	ErrEmptyResponse = errors.New("assist: empty response from AI")
	// ErrMalformedResponse means the analysis reply did not match the
	// required JSON shape.
	ErrMalformedResponse = errors.New("assist: malformed analysis response")
)
