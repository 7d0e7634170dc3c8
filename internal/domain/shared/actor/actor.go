// Package actor defines the principal identifier shared by every ledger
// component. An actor is a user or system principal capable of owning assets,
// holding roles, and being an operation caller.
package actor

// ID identifies an actor. The empty string is the null actor and is never a
// valid owner, recipient or licensee.
type ID string

// IsZero reports whether the id is the null actor.
func (id ID) IsZero() bool {
	return id == ""
}

func (id ID) String() string {
	return string(id)
}

// System principals used for trusted internal calls.
const (
	// Registry is the reserved actor the Asset Registry uses when it calls
	// into the access-control module at registration time.
	Registry ID = "system:registry"
)
