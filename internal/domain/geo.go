package domain

import (
	"context"
	"strings"
)

// Location is an approximate geolocation for a network address. Fields may
// be empty when the upstream lookup only resolves part of the answer.
type Location struct {
	City    string
	Region  string
	Country string
}

func (l Location) String() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{l.City, l.Region, l.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// GeoResolver resolves a network address to an approximate location.
// Implementations are best-effort: a nil Location with a non-nil error means
// the lookup failed, and callers are expected to treat that as "unknown"
// rather than a failure of their own operation.
type GeoResolver interface {
	Resolve(ctx context.Context, ip string) (*Location, error)
}
