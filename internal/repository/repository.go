package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

import "errors"

// ErrConditionFailed is returned by guarded writes when the target row exists
// but its current state did not satisfy the write's precondition. Callers use
// it to distinguish a lost race or stale view from a missing row
// (sql.ErrNoRows).
var ErrConditionFailed = errors.New("conditional write matched no row")

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
