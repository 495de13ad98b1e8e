package models

type Module struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	IsActive    bool   `json:"is_active"`
	CreatedBy   string `json:"created_by"`
	CreatedAt   string `json:"created_at"`
}

// TableDraft is one table of the module-creation wizard: its fields plus the
// seed rows parsed out of an uploaded CSV, keyed by draft field id.
type TableDraft struct {
	Name    string              `json:"name"`
	Fields  []FieldDraft        `json:"fields"`
	Rows    []map[string]string `json:"rows"`
	BatchId string              `json:"batch_id,omitempty"`
}

type FieldDraft struct {
	Id       string   `json:"id"`
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []Option `json:"options"`
}

type CreateModuleRequest struct {
	TenantId    string       `json:"tenant_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	CreatedBy   string       `json:"created_by"`
	Tables      []TableDraft `json:"tables"`
}

type CreateModuleResponse struct {
	Module  Module `json:"module"`
	Tables  int    `json:"tables"`
	Fields  int    `json:"fields"`
	Records int    `json:"records"`
}

type UpdateModuleRequest struct {
	TenantId    string `json:"tenant_id"`
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ModulePrimaryKey struct {
	TenantId string `json:"tenant_id"`
	Id       string `json:"id"`
	Slug     string `json:"slug"`
}

type GetAllModulesRequest struct {
	TenantId   string `json:"tenant_id"`
	OnlyActive bool   `json:"only_active"`
	Search     string `json:"search"`
}
