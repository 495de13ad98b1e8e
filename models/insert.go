package models

// InsertRecordsRequest is one chunk of a bulk insert. Chunking is the
// caller's job; the adapter writes the whole slice in a single statement.
type InsertRecordsRequest struct {
	TenantId  string           `json:"tenant_id"`
	TableId   string           `json:"table_id"`
	CreatedBy string           `json:"created_by"`
	Rows      []map[string]any `json:"rows"`
}
