package models

import "fmt"

// ErrorKind classifies a per-record problem that must stay visible.
type ErrorKind string

// ErrorKindUnresolvedForeignKey marks a posting whose contact resolves to no User.
const ErrorKindUnresolvedForeignKey ErrorKind = "UnresolvedForeignKey"

// RecordError describes one rejected input record.
type RecordError struct {
	Row     int       `json:"row"`
	Kind    ErrorKind `json:"kind"`
	Field   string    `json:"field"`
	Value   string    `json:"value"`
	Message string    `json:"message"`
}

func (e RecordError) Error() string {
	return fmt.Sprintf("row %d: %s: %s=%q: %s", e.Row, e.Kind, e.Field, e.Value, e.Message)
}
