package client

// Status is the lifecycle of one keyed query.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusSuccess Status = "success"
)

// QueryState is a snapshot of one query. Data is only meaningful when
// Status is StatusSuccess, and Err only when it is StatusError.
type QueryState[T any] struct {
	Status Status
	Data   T
	Err    error
}

func (s QueryState[T]) IsIdle() bool    { return s.Status == StatusIdle }
func (s QueryState[T]) IsLoading() bool { return s.Status == StatusLoading }
func (s QueryState[T]) IsError() bool   { return s.Status == StatusError }
func (s QueryState[T]) IsSuccess() bool { return s.Status == StatusSuccess }

// entry is the untyped form kept in the client's state map.
type entry struct {
	status Status
	data   any
	err    error
}

func typed[T any](e entry) QueryState[T] {
	s := QueryState[T]{Status: e.status, Err: e.err}
	if e.status == StatusSuccess {
		s.Data, _ = e.data.(T)
	}
	return s
}
