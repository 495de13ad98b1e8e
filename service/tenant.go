package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/models"
	span "munidesk/munidesk_go_module_builder_service/pkg/jaeger"
	"munidesk/munidesk_go_module_builder_service/pkg/logger"
	"munidesk/munidesk_go_module_builder_service/storage"
)

type tenantService struct {
	cfg  config.Config
	log  logger.LoggerI
	strg storage.StorageI
}

func NewTenantService(cfg config.Config, log logger.LoggerI, strg storage.StorageI) TenantServiceI {
	return &tenantService{
		cfg:  cfg,
		log:  log,
		strg: strg,
	}
}

// Register brings a tenant database online: connect, migrate, add to the pool
// registry. Idempotent for an already registered tenant.
func (s *tenantService) Register(ctx context.Context, req *models.RegisterTenantRequest) error {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_tenant.Register", req.TenantId)
	defer dbSpan.Finish()

	s.log.Info("---RegisterTenant--->>>", logger.String("tenant_id", req.TenantId))

	if strings.TrimSpace(req.TenantId) == "" {
		return errors.New("tenant id is required")
	}

	if req.Credentials.Host == "" || req.Credentials.Database == "" {
		return errors.New("tenant database credentials are required")
	}

	return s.strg.Tenant().Register(ctx, req)
}

func (s *tenantService) Deregister(ctx context.Context, req *models.DeregisterTenantRequest) error {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_tenant.Deregister", req.TenantId)
	defer dbSpan.Finish()

	s.log.Info("---DeregisterTenant--->>>", logger.String("tenant_id", req.TenantId))

	if req.TenantId == s.cfg.DefaultTenantId {
		return errors.New("the default tenant cannot be deregistered")
	}

	return s.strg.Tenant().Deregister(ctx, req)
}
