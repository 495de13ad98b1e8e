package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"munidesk/munidesk_go_module_builder_service/config"
)

func TestCapabilities(t *testing.T) {
	cases := []struct {
		role       string
		capability Capability
		allowed    bool
	}{
		{config.RoleAdministrador, CapDeleteModule, true},
		{config.RoleAdministrador, CapApproveRecords, true},
		{config.RoleSupervisor, CapApproveRecords, true},
		{config.RoleSupervisor, CapManageTeam, true},
		{config.RoleSupervisor, CapCreateModule, false},
		{config.RoleSupervisor, CapDeleteModule, false},
		{config.RoleFuncionario, CapWriteRecords, true},
		{config.RoleFuncionario, CapApproveRecords, false},
		{config.RoleConsulta, CapViewRecords, true},
		{config.RoleConsulta, CapWriteRecords, false},
		{"", CapViewRecords, true},
		{"unknown", CapWriteRecords, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, Capabilities(tc.role).Has(tc.capability),
			"role %q capability %q", tc.role, tc.capability)
	}
}
