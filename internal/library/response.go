package library

// Status is the outcome of a store operation. Expected conditions such as
// "user not found" are encoded here, never as Go errors, so that backends
// with real I/O failure modes fit the same contract as the in-memory
// reference.
type Status string

const (
	// StatusSuccess means the operation completed. A retrieval that found
	// nothing still succeeds with a zero result: a missing item is an
	// absence, not an error.
	StatusSuccess Status = "success"

	// StatusBadRequest means the caller violated the contract in a
	// correctable way: a mutating call for an unknown user, or a duplicate
	// id/username on user creation.
	StatusBadRequest Status = "bad_request"

	// StatusConnectionIssue means the backend could not reach its storage.
	// Never produced by the in-memory store. Callers may retry.
	StatusConnectionIssue Status = "connection_issue"

	// StatusTimeout means the backend gave up on a bounded operation
	// deadline rather than hang the caller. Never produced by the in-memory
	// store. Callers may retry.
	StatusTimeout Status = "time_out"
)

// Unit is the payload of responses that carry no result.
type Unit = struct{}

// Response is the uniform result wrapper returned by every store operation:
// a payload plus an outcome status. Result is only meaningful when Status is
// StatusSuccess.
type Response[R any] struct {
	Result R
	Status Status
}

// OK wraps a result in a successful response.
func OK[R any](result R) Response[R] {
	return Response[R]{Result: result, Status: StatusSuccess}
}

// Fail builds a response with the given non-success status and a zero result.
func Fail[R any](status Status) Response[R] {
	return Response[R]{Status: status}
}

// Succeeded reports whether the operation completed with StatusSuccess.
func (r Response[R]) Succeeded() bool {
	return r.Status == StatusSuccess
}
