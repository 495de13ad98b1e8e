package helper

import (
	"munidesk/munidesk_go_module_builder_service/config"
)

type Capability string

const (
	CapViewRecords    Capability = "view_records"
	CapWriteRecords   Capability = "write_records"
	CapApproveRecords Capability = "approve_data"
	CapManageTeam     Capability = "manage_team"
	CapCreateModule   Capability = "create_system"
	CapDeleteModule   Capability = "delete_system"
)

type CapabilitySet map[Capability]bool

func (s CapabilitySet) Has(c Capability) bool {
	return s[c]
}

// Capabilities computes the full permission set of a role once. Components
// check membership instead of comparing role strings at each call site.
// Unknown roles get the read-only set.
func Capabilities(role string) CapabilitySet {
	switch role {
	case config.RoleAdministrador:
		return CapabilitySet{
			CapViewRecords:    true,
			CapWriteRecords:   true,
			CapApproveRecords: true,
			CapManageTeam:     true,
			CapCreateModule:   true,
			CapDeleteModule:   true,
		}
	case config.RoleSupervisor:
		return CapabilitySet{
			CapViewRecords:    true,
			CapWriteRecords:   true,
			CapApproveRecords: true,
			CapManageTeam:     true,
		}
	case config.RoleFuncionario:
		return CapabilitySet{
			CapViewRecords:  true,
			CapWriteRecords: true,
		}
	default:
		return CapabilitySet{
			CapViewRecords: true,
		}
	}
}
