package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/models"
)

func TestCreateRecordStripsBatchKey(t *testing.T) {
	strg := &fakeStorage{fields: []models.Field{{Name: "nome", Label: "Nome", Type: "text"}}}
	svc := NewRecordService(testConfig(), testLogger(), strg)

	record, err := svc.Create(context.Background(), &models.CreateRecordRequest{
		TenantId: "t1",
		TableId:  "tbl1",
		Data: map[string]any{
			"nome":          "Ana",
			config.BatchKey: "stale-form-state",
		},
	})
	require.NoError(t, err)

	assert.NotContains(t, record.Data, config.BatchKey)
	require.Len(t, strg.insertedOne, 1)
	assert.NotContains(t, strg.insertedOne[0].Data, config.BatchKey)
}

func TestCreateRecordRequiredField(t *testing.T) {
	strg := &fakeStorage{fields: []models.Field{
		{Name: "nome", Label: "Nome", Type: "text", IsRequired: true},
	}}
	svc := NewRecordService(testConfig(), testLogger(), strg)

	_, err := svc.Create(context.Background(), &models.CreateRecordRequest{
		TenantId: "t1",
		TableId:  "tbl1",
		Data:     map[string]any{"nome": ""},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nome")
	assert.Empty(t, strg.insertedOne)
}

func TestCreateRecordTypedValidation(t *testing.T) {
	strg := &fakeStorage{fields: []models.Field{
		{Name: "email", Label: "E-mail", Type: "email"},
	}}
	svc := NewRecordService(testConfig(), testLogger(), strg)

	_, err := svc.Create(context.Background(), &models.CreateRecordRequest{
		TenantId: "t1",
		TableId:  "tbl1",
		Data:     map[string]any{"email": "not-an-email"},
	})
	assert.Error(t, err)

	_, err = svc.Create(context.Background(), &models.CreateRecordRequest{
		TenantId: "t1",
		TableId:  "tbl1",
		Data:     map[string]any{"email": "ana@prefeitura.gov.br"},
	})
	assert.NoError(t, err)
}

func TestUpdateRecordValidatesAndStrips(t *testing.T) {
	strg := &fakeStorage{fields: []models.Field{
		{Name: "nome", Label: "Nome", Type: "text", IsRequired: true},
	}}
	svc := NewRecordService(testConfig(), testLogger(), strg)

	_, err := svc.Update(context.Background(), &models.UpdateRecordRequest{
		TenantId: "t1",
		Id:       "r1",
		TableId:  "tbl1",
		Data:     map[string]any{"nome": ""},
	})
	assert.Error(t, err)

	record, err := svc.Update(context.Background(), &models.UpdateRecordRequest{
		TenantId: "t1",
		Id:       "r1",
		TableId:  "tbl1",
		Data:     map[string]any{"nome": "Ana", config.BatchKey: "b1"},
	})
	require.NoError(t, err)
	assert.NotContains(t, record.Data, config.BatchKey)
	assert.Equal(t, config.StatusPending, record.Status)
}
