package services

import "context"

// Service is a single use case run by a command or a scheduler.
type Service[T any, S any] interface {
	Run(ctx context.Context, input T) (S, error)
}
