package models

// Result is the discriminated shape every API response takes.
// Callers must check Success before trusting Data.
type Result[T any] struct {
	Success bool    `json:"success"`
	Error   *string `json:"error"`
	Data    *T      `json:"data"`
}

// OK wraps data in a successful result.
func OK[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: &data}
}

// Fail builds a failed result carrying msg.
func Fail[T any](msg string) Result[T] {
	return Result[T]{Success: false, Error: &msg}
}
