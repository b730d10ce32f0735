package rules

import "fmt"

// Role is a player's role card.
type Role string

const (
	RoleMedic      Role = "Medic"
	RoleDispatcher Role = "Dispatcher"
	RoleResearcher Role = "Researcher"
	RoleGeneralist Role = "Generalist"
)

// Roles lists every role in the box.
var Roles = []Role{RoleMedic, RoleDispatcher, RoleResearcher, RoleGeneralist}

var roleDescriptions = map[Role]string{
	RoleMedic:      "Treat removes all cubes of the chosen color. Cubes of cured diseases in your city are removed for free, including on arrival.",
	RoleDispatcher: "As an action, move any pawn to a city with another pawn, or to a city connected to where that pawn is.",
	RoleResearcher: "When sharing knowledge you may give any city card to a player in the same city.",
	RoleGeneralist: "You get 5 actions each turn instead of 4.",
}

// DefaultActions is the base action allowance for every role but the Generalist.
const DefaultActions = 4

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleDescriptions[r]
	return ok
}

// Description returns the rules text printed on the role card.
func (r Role) Description() string {
	return roleDescriptions[r]
}

// BaseActions returns the number of actions the role gets each turn.
func (r Role) BaseActions() int {
	if r == RoleGeneralist {
		return DefaultActions + 1
	}
	return DefaultActions
}

func (r Role) String() string {
	return string(r)
}

// ParseRole converts a role name to a Role. An empty name yields the Generalist.
func ParseRole(name string) (Role, error) {
	if name == "" {
		return RoleGeneralist, nil
	}
	r := Role(name)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", name)
	}
	return r, nil
}
