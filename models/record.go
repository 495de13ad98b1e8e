package models

type Record struct {
	Id              string         `json:"id"`
	TableId         string         `json:"table_id"`
	Data            map[string]any `json:"data"`
	Status          string         `json:"status"`
	RejectionReason string         `json:"rejection_reason,omitempty"`
	CreatedBy       string         `json:"created_by"`
	ApprovedBy      string         `json:"approved_by,omitempty"`
	CreatedAt       string         `json:"created_at"`
	UpdatedAt       string         `json:"updated_at"`

	// Joined display names, populated by the pending query.
	TableName  string `json:"table_name,omitempty"`
	ModuleName string `json:"module_name,omitempty"`
}

type CreateRecordRequest struct {
	TenantId  string         `json:"tenant_id"`
	TableId   string         `json:"table_id"`
	Data      map[string]any `json:"data"`
	CreatedBy string         `json:"created_by"`
}

type UpdateRecordRequest struct {
	TenantId string         `json:"tenant_id"`
	Id       string         `json:"id"`
	TableId  string         `json:"table_id"`
	Data     map[string]any `json:"data"`
}

type RecordPrimaryKey struct {
	TenantId string `json:"tenant_id"`
	Id       string `json:"id"`
}

type GetRecordsRequest struct {
	TenantId string `json:"tenant_id"`
	TableId  string `json:"table_id"`
	Search   string `json:"search"`
	Limit    uint64 `json:"limit"`
	Offset   uint64 `json:"offset"`
}

// PendingScope narrows the pending query; zero value means system-wide.
type PendingScope struct {
	TenantId string `json:"tenant_id"`
	TableId  string `json:"table_id"`
	ModuleId string `json:"module_id"`
}

// DecisionRequest is one approve or reject action over a set of pending
// records, single or whole batch alike.
type DecisionRequest struct {
	TenantId  string   `json:"tenant_id"`
	Ids       []string `json:"ids"`
	ActorId   string   `json:"actor_id"`
	ActorRole string   `json:"actor_role"`
	Reason    string   `json:"reason,omitempty"`
}

type UpdateStatusRequest struct {
	TenantId string   `json:"tenant_id"`
	Ids      []string `json:"ids"`
	Status   string   `json:"status"`
	ActorId  string   `json:"actor_id"`
	Reason   string   `json:"reason"`
}
