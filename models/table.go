package models

type Table struct {
	Id          string `json:"id"`
	ModuleId    string `json:"module_id"`
	Name        string `json:"name"`
	DbTableName string `json:"db_table_name"`
	CreatedAt   string `json:"created_at"`
}

type CreateTableRequest struct {
	TenantId string `json:"tenant_id"`
	ModuleId string `json:"module_id"`
	Name     string `json:"name"`
	DbName   string `json:"db_name"`
}

type TablePrimaryKey struct {
	TenantId string `json:"tenant_id"`
	Id       string `json:"id"`
}

type RenameTableRequest struct {
	TenantId string `json:"tenant_id"`
	Id       string `json:"id"`
	Name     string `json:"name"`
}
