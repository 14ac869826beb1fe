package endpoint

import (
	"context"

	"nakula/internal/ratelimit"
)

// Security classifies an endpoint's authentication requirement.
type Security int

const (
	// Public endpoints accept unauthenticated requests.
	Public Security = iota
	// Signed endpoints require the API key header plus an HMAC signature
	// over the query string.
	Signed
)

// String returns the string representation of the security class ("public" or "signed").
func (s Security) String() string {
	return [...]string{
		"public",
		"signed",
	}[s]
}

// Descriptor is the immutable metadata of one REST endpoint: where it lives,
// how much quota a call costs, and which scope that quota is drawn from.
// Descriptors are built by the catalog and shared read-only afterwards.
type Descriptor struct {
	Name     string `validate:"required"`
	Path     string `validate:"required,startswith=/"`
	Method   string `validate:"required,oneof=GET POST PUT DELETE"`
	Weight   int    `validate:"required,gt=0"`
	Security Security

	scope *ratelimit.Scope
}

// Acquire blocks until the endpoint's scope grants this endpoint's weight,
// or the context is cancelled.
func (d *Descriptor) Acquire(ctx context.Context) error {
	return d.scope.Acquire(ctx, d.Weight)
}

// Scope returns the quota scope the endpoint draws from. Endpoints under
// /api share one scope; each /sapi endpoint has its own.
func (d *Descriptor) Scope() *ratelimit.Scope {
	return d.scope
}
