package models

// BatchGroup is a derived grouping of pending records that share a batch
// identifier, i.e. came out of the same bulk import.
type BatchGroup struct {
	BatchId    string   `json:"batch_id"`
	Records    []Record `json:"records"`
	ModuleName string   `json:"module_name"`
	TableName  string   `json:"table_name"`
	CreatedAt  string   `json:"created_at"`
}

// PendingSet is the partition the approvals screen renders: manually entered
// records on one side, import batches on the other.
type PendingSet struct {
	Singles []Record     `json:"singles"`
	Batches []BatchGroup `json:"batches"`
}
