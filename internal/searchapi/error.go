package searchapi

import "fmt"

// ProviderError wraps an upstream failure with the engine that caused it.
type ProviderError struct {
	Engine     string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s failed with status %d: %v", e.Engine, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s failed: %v", e.Engine, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func NewProviderError(engine string, status int, err error) *ProviderError {
	return &ProviderError{
		Engine:     engine,
		StatusCode: status,
		Err:        err,
	}
}
