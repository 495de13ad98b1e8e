package models

// CSVDocument is the parsed shape of an uploaded delimited file. Rows are
// keyed by header cell, positionally matched; missing trailing cells are "".
type CSVDocument struct {
	Headers []string            `json:"headers"`
	Rows    []map[string]string `json:"rows"`
}

// ColumnConfig describes how a column mapped to "new" becomes a field.
type ColumnConfig struct {
	Type           string `json:"type"`
	ExtractOptions bool   `json:"extract_options"`
}

type ImportPreviewRequest struct {
	TenantId      string `json:"tenant_id"`
	TableId       string `json:"table_id"`
	RawText       string `json:"raw_text"`
	DefaultAction string `json:"default_action"` // new or ignore
}

// ImportPreview is what the mapping screen shows before committing an
// import: the parsed headers, the proposed column mapping and a few sample
// rows.
type ImportPreview struct {
	Headers []string            `json:"headers"`
	Mapping map[string]string   `json:"mapping"`
	Rows    []map[string]string `json:"rows"`
}

type ImportRequest struct {
	TenantId  string                  `json:"tenant_id"`
	TableId   string                  `json:"table_id"`
	RawText   string                  `json:"raw_text"`
	Mapping   map[string]string       `json:"mapping"`
	Configs   map[string]ColumnConfig `json:"configs"`
	CreatedBy string                  `json:"created_by"`
}

type ImportResult struct {
	BatchId      string `json:"batch_id"`
	Attempted    int    `json:"attempted"`
	Committed    int    `json:"committed"`
	FailedChunks int    `json:"failed_chunks"`
	NewFields    int    `json:"new_fields"`
}

type ExportRequest struct {
	TenantId   string   `json:"tenant_id"`
	TableId    string   `json:"table_id"`
	FieldNames []string `json:"field_names"`
	Format     string   `json:"format"` // csv or xlsx
}

type ExportResponse struct {
	Link string `json:"link"`
}
