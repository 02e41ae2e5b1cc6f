package otp

import (
	"context"
	"time"
)

// Code is the pending sign-in code for a phone number. Only its hash is stored.
type Code struct {
	Phone     string
	CodeHash  string
	Attempts  int
	ExpiresAt time.Time
}

type Repository interface {
	// Put replaces any pending code for the phone.
	Put(ctx context.Context, c Code) error
	Get(ctx context.Context, phone string) (*Code, error)
	IncrementAttempts(ctx context.Context, phone string) error
	Delete(ctx context.Context, phone string) error
}
