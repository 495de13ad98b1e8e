package service

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/models"
	"munidesk/munidesk_go_module_builder_service/pkg/helper"
	span "munidesk/munidesk_go_module_builder_service/pkg/jaeger"
	"munidesk/munidesk_go_module_builder_service/pkg/logger"
	"munidesk/munidesk_go_module_builder_service/storage"
)

type approvalService struct {
	cfg  config.Config
	log  logger.LoggerI
	strg storage.StorageI

	// serializes decisions; a second approve/reject while one is running
	// is refused instead of queued
	mu sync.Mutex
}

func NewApprovalService(cfg config.Config, log logger.LoggerI, strg storage.StorageI) ApprovalServiceI {
	return &approvalService{
		cfg:  cfg,
		log:  log,
		strg: strg,
	}
}

// Pending returns the review queue partitioned into singles and batch groups.
func (s *approvalService) Pending(ctx context.Context, req *models.PendingScope) (*models.PendingSet, error) {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_approval.Pending", req)
	defer dbSpan.Finish()

	records, err := s.strg.Record().QueryPending(ctx, req)
	if err != nil {
		return nil, err
	}

	set := helper.GroupPending(records)

	return &set, nil
}

// Approve moves the given records from pending to approved. Batch approval is
// the same call with the whole group's ids; all of them transition or none do.
func (s *approvalService) Approve(ctx context.Context, req *models.DecisionRequest) error {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_approval.Approve", req)
	defer dbSpan.Finish()

	s.log.Info("---ApproveRecords--->>>", logger.Int("count", len(req.Ids)))

	return s.decide(ctx, req, config.StatusApproved)
}

// Reject requires a non-empty reason before anything is touched.
func (s *approvalService) Reject(ctx context.Context, req *models.DecisionRequest) error {
	dbSpan, ctx := span.StartSpanFromContext(ctx, "service_approval.Reject", req)
	defer dbSpan.Finish()

	s.log.Info("---RejectRecords--->>>", logger.Int("count", len(req.Ids)))

	if strings.TrimSpace(req.Reason) == "" {
		return errors.New("rejection reason is required")
	}

	return s.decide(ctx, req, config.StatusRejected)
}

func (s *approvalService) decide(ctx context.Context, req *models.DecisionRequest, status string) error {
	if len(req.Ids) == 0 {
		return errors.New("no record ids given")
	}

	if !helper.Capabilities(req.ActorRole).Has(helper.CapApproveRecords) {
		return errors.Errorf("role %q cannot decide records", req.ActorRole)
	}

	if !s.mu.TryLock() {
		return errors.New("another decision is being processed")
	}
	defer s.mu.Unlock()

	err := s.strg.Record().UpdateStatus(ctx, &models.UpdateStatusRequest{
		TenantId: req.TenantId,
		Ids:      req.Ids,
		Status:   status,
		ActorId:  req.ActorId,
		Reason:   req.Reason,
	})
	if err != nil {
		s.log.Error("---DecideRecords--->>>", logger.Error(err))
		return err
	}

	return nil
}
