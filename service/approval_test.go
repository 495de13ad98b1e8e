package service

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/models"
)

func TestPendingGroupsBatches(t *testing.T) {
	strg := &fakeStorage{pending: []models.Record{
		{Id: "r1", CreatedAt: "2026-08-30T10:00:00Z", Data: map[string]any{config.BatchKey: "b1"}},
		{Id: "r2", CreatedAt: "2026-08-30T10:00:01Z", Data: map[string]any{config.BatchKey: "b1"}},
		{Id: "r3", CreatedAt: "2026-08-30T11:00:00Z", Data: map[string]any{"nome": "Ana"}},
	}}
	svc := NewApprovalService(testConfig(), testLogger(), strg)

	set, err := svc.Pending(context.Background(), &models.PendingScope{TenantId: "t1"})
	require.NoError(t, err)

	assert.Len(t, set.Singles, 1)
	require.Len(t, set.Batches, 1)
	assert.Len(t, set.Batches[0].Records, 2)
}

func TestApprove(t *testing.T) {
	strg := &fakeStorage{}
	svc := NewApprovalService(testConfig(), testLogger(), strg)

	err := svc.Approve(context.Background(), &models.DecisionRequest{
		TenantId:  "t1",
		Ids:       []string{"r1", "r2"},
		ActorId:   "u1",
		ActorRole: config.RoleSupervisor,
	})
	require.NoError(t, err)

	require.Len(t, strg.statusUpdates, 1)
	update := strg.statusUpdates[0]
	assert.Equal(t, config.StatusApproved, update.Status)
	assert.Equal(t, []string{"r1", "r2"}, update.Ids)
	assert.Equal(t, "u1", update.ActorId)
}

func TestApproveRequiresCapability(t *testing.T) {
	strg := &fakeStorage{}
	svc := NewApprovalService(testConfig(), testLogger(), strg)

	err := svc.Approve(context.Background(), &models.DecisionRequest{
		TenantId:  "t1",
		Ids:       []string{"r1"},
		ActorRole: config.RoleFuncionario,
	})
	assert.Error(t, err)
	assert.Empty(t, strg.statusUpdates)
}

func TestApproveRequiresIds(t *testing.T) {
	strg := &fakeStorage{}
	svc := NewApprovalService(testConfig(), testLogger(), strg)

	err := svc.Approve(context.Background(), &models.DecisionRequest{
		TenantId:  "t1",
		ActorRole: config.RoleSupervisor,
	})
	assert.Error(t, err)
	assert.Empty(t, strg.statusUpdates)
}

func TestRejectRequiresReason(t *testing.T) {
	strg := &fakeStorage{}
	svc := NewApprovalService(testConfig(), testLogger(), strg)

	err := svc.Reject(context.Background(), &models.DecisionRequest{
		TenantId:  "t1",
		Ids:       []string{"r1"},
		ActorRole: config.RoleSupervisor,
		Reason:    "   ",
	})
	assert.Error(t, err)
	assert.Empty(t, strg.statusUpdates)
}

func TestRejectStoresReason(t *testing.T) {
	strg := &fakeStorage{}
	svc := NewApprovalService(testConfig(), testLogger(), strg)

	err := svc.Reject(context.Background(), &models.DecisionRequest{
		TenantId:  "t1",
		Ids:       []string{"r1"},
		ActorId:   "u1",
		ActorRole: config.RoleAdministrador,
		Reason:    "dados incompletos",
	})
	require.NoError(t, err)

	require.Len(t, strg.statusUpdates, 1)
	assert.Equal(t, config.StatusRejected, strg.statusUpdates[0].Status)
	assert.Equal(t, "dados incompletos", strg.statusUpdates[0].Reason)
}

func TestDecisionErrorPropagates(t *testing.T) {
	strg := &fakeStorage{statusErr: errors.New("2 of 3 records are not pending")}
	svc := NewApprovalService(testConfig(), testLogger(), strg)

	err := svc.Approve(context.Background(), &models.DecisionRequest{
		TenantId:  "t1",
		Ids:       []string{"r1", "r2", "r3"},
		ActorRole: config.RoleSupervisor,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not pending")
}
