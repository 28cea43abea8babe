// Package shared holds small types used across application services.
package shared

// Source says how a read result was produced. Read paths never surface a
// hard storage failure to presentation: they degrade to built-in fallback
// data instead, and the source lets callers and tests tell "worked",
// "degraded" and "failed" apart.
type Source string

const (
	SourceOk       Source = "ok"
	SourceFallback Source = "fallback"
	SourceFailed   Source = "failed"
)

// Result wraps a fetched value with its provenance
type Result[T any] struct {
	Data   T
	Source Source
	Err    error
}

// Ok wraps a live value
func Ok[T any](data T) Result[T] {
	return Result[T]{Data: data, Source: SourceOk}
}

// Fallback wraps substituted data and the storage error it papers over
func Fallback[T any](data T, err error) Result[T] {
	return Result[T]{Data: data, Source: SourceFallback, Err: err}
}

// Failed wraps a hard failure with no usable data
func Failed[T any](err error) Result[T] {
	return Result[T]{Source: SourceFailed, Err: err}
}

// Degraded reports whether the data is substituted fallback data
func (r Result[T]) Degraded() bool { return r.Source == SourceFallback }
