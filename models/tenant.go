package models

type TenantCredentials struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	Database string `json:"database"`
}

type RegisterTenantRequest struct {
	TenantId    string            `json:"tenant_id"`
	Credentials TenantCredentials `json:"credentials"`
}

type DeregisterTenantRequest struct {
	TenantId string `json:"tenant_id"`
}
