package entity

// ConnectionState represents the lifecycle state of a shopkeeper-dealer connection.
type ConnectionState string

const (
	// ConnectionPending indicates the shopkeeper has requested and the dealer has not responded.
	ConnectionPending ConnectionState = "PENDING"
	// ConnectionActive indicates the dealer accepted the request.
	ConnectionActive ConnectionState = "ACTIVE"
	// ConnectionRejected indicates the dealer declined the request. Terminal.
	ConnectionRejected ConnectionState = "REJECTED"
	// ConnectionRevoked indicates either party terminated an active connection. Terminal.
	ConnectionRevoked ConnectionState = "REVOKED"
)

// String returns the string representation of the ConnectionState.
func (s ConnectionState) String() string {
	return string(s)
}

// IsValid checks if the ConnectionState is a valid value.
func (s ConnectionState) IsValid() bool {
	switch s {
	case ConnectionPending, ConnectionActive, ConnectionRejected, ConnectionRevoked:
		return true
	default:
		return false
	}
}

// IsLive reports whether the state counts against the one-live-connection
// rule for a shopkeeper.
func (s ConnectionState) IsLive() bool {
	return s == ConnectionPending || s == ConnectionActive
}

// CanTransitionTo reports whether a transition from s to next is permitted.
// The transition table is exhaustive so new states cannot be silently mishandled.
func (s ConnectionState) CanTransitionTo(next ConnectionState) bool {
	switch s {
	case ConnectionPending:
		return next == ConnectionActive || next == ConnectionRejected
	case ConnectionActive:
		return next == ConnectionRevoked
	case ConnectionRejected, ConnectionRevoked:
		return false
	default:
		return false
	}
}
