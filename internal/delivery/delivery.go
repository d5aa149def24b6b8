// Package delivery defines the contract every transport entry point fulfills.
package delivery

import "context"

// Delivery is a serving surface started by the composition root. Serve blocks
// until the server stops or fails.
type Delivery interface {
	Serve(ctx context.Context) error
}
