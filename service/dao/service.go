// Package dao defines the persistence contract the engine expects from its
// storage collaborator.  The engine ships with an in-memory implementation;
// hosts supply their own for durable storage.
package dao

import (
	"context"
)

// Service is a generic data access contract for entities of type T keyed by K.
type Service[K comparable, T any] interface {
	Save(ctx context.Context, t *T) error

	Load(ctx context.Context, id K) (*T, error)

	Delete(ctx context.Context, id K) error

	List(ctx context.Context, parameters ...*Parameter) ([]*T, error)
}
