package models

type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Field struct {
	Id         string   `json:"id"`
	TableId    string   `json:"table_id"`
	Name       string   `json:"name"`
	Label      string   `json:"label"`
	Type       string   `json:"field_type"`
	IsRequired bool     `json:"is_required"`
	Options    []Option `json:"options"`
	OrderIndex int32    `json:"order_index"`
}

type CreateFieldsRequest struct {
	TenantId string  `json:"tenant_id"`
	TableId  string  `json:"table_id"`
	Fields   []Field `json:"fields"`
}

// UpdateFieldRequest carries everything a label edit may change. The stored
// name is immutable after creation, so it is not part of the request.
type UpdateFieldRequest struct {
	TenantId   string   `json:"tenant_id"`
	Id         string   `json:"id"`
	Label      string   `json:"label"`
	Type       string   `json:"field_type"`
	IsRequired bool     `json:"is_required"`
	Options    []Option `json:"options"`
	OrderIndex int32    `json:"order_index"`
}

type FieldPrimaryKey struct {
	TenantId string `json:"tenant_id"`
	Id       string `json:"id"`
}
