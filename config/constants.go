package config

import (
	"time"
)

const (
	DatabaseTimeLayout string = time.RFC3339
	ExportDateLayout   string = "02.01.2006"

	ErrNoRows      string = "no rows in result set"
	ErrEnvNotFound string = "No .env file found"

	// BatchKey is the reserved key inside a record's data map that marks
	// membership in a bulk import. It is never a real field and must be
	// stripped before display or export.
	BatchKey string = "_batch_id"

	// Record statuses
	StatusPending  string = "pending"
	StatusApproved string = "approved"
	StatusRejected string = "rejected"

	// Roles
	RoleConsulta      string = "consulta"
	RoleFuncionario   string = "funcionario"
	RoleSupervisor    string = "supervisor"
	RoleAdministrador string = "administrador"

	// Column mapping actions
	MappingNew    string = "new"
	MappingIgnore string = "ignore"

	// Import modes
	ImportModeCreate string = "create"
	ImportModeUpdate string = "update"

	ModuleChangesChannel string = "module_changes"
)

var (
	FIELD_TYPES = map[string]bool{
		"text":     true,
		"textarea": true,
		"number":   true,
		"date":     true,
		"email":    true,
		"phone":    true,
		"cpf":      true,
		"cnpj":     true,
		"currency": true,
		"select":   true,
	}

	RECORD_STATUSES = map[string]bool{
		StatusPending:  true,
		StatusApproved: true,
		StatusRejected: true,
	}

	// StatusLabels are the labels the console prints on exported files.
	StatusLabels = map[string]string{
		StatusPending:  "Pendente",
		StatusApproved: "Aprovado",
		StatusRejected: "Negado",
	}
)
