package repository

import "context"

// Transactor runs fn inside a single store transaction. Repository calls made
// with the ctx handed to fn join that transaction. The transaction commits when
// fn returns nil and rolls back otherwise.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
