package faults

import (
	"errors"
	"fmt"
)

// Sentinel categories for everything that can go wrong around the pipeline.
// Capability construction failures are converted into diagnostics entries at
// the boundary; per-request failures drive the degradation ladder. Callers
// match with errors.Is.
var (
	ErrConnector     = errors.New("connector error")
	ErrEmbedding     = errors.New("embedding error")
	ErrIndex         = errors.New("index unavailable")
	ErrGeneration    = errors.New("generation error")
	ErrConfiguration = errors.New("configuration error")
)

func Connector(err error) error     { return wrap(ErrConnector, err) }
func Embedding(err error) error     { return wrap(ErrEmbedding, err) }
func Index(err error) error         { return wrap(ErrIndex, err) }
func Generation(err error) error    { return wrap(ErrGeneration, err) }
func Configuration(err error) error { return wrap(ErrConfiguration, err) }

func wrap(kind error, err error) error {
	if err == nil {
		return kind
	}
	return fmt.Errorf("%w: %w", kind, err)
}
