// Package accesscontrol tracks the data-protection overlay: named roles per
// actor, a per-asset controller pointer, a per-asset logical-deletion flag
// and a per-subject asset index. Every other ledger component consults it for
// authorization.
package accesscontrol

// Role is a named data-protection role held by an actor.
type Role string

const (
	// RoleController is the administrative role; holders may manage roles,
	// reassign controllership and act on any asset's data-protection state.
	RoleController Role = "data_controller"

	// RoleProcessor records a data-processing relationship, typically granted
	// to licensees.
	RoleProcessor Role = "data_processor"
)

func (r Role) IsValid() bool {
	return r == RoleController || r == RoleProcessor
}

func (r Role) String() string {
	return string(r)
}
