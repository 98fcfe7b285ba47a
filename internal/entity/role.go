package entity

type Role string

const (
	RoleNone      Role = ""
	RolePlayerA   Role = "A"
	RolePlayerB   Role = "B"
	RoleSpectator Role = "spectator"
)

// Color - the color a role plays, ColorNone for spectators.
func (that Role) Color() Color {
	switch that {
	case RolePlayerA:
		return ColorA
	case RolePlayerB:
		return ColorB
	default:
		return ColorNone
	}
}

func (that Role) IsPlayer() bool {
	return that == RolePlayerA || that == RolePlayerB
}
