package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/models"
)

func TestImportCreateMode(t *testing.T) {
	strg := &fakeStorage{}
	svc := NewImportService(testConfig(), testLogger(), strg)

	result, err := svc.Import(context.Background(), &models.ImportRequest{
		TenantId: "t1",
		TableId:  "tbl1",
		RawText:  "Name,Age\nAna,30\nBruno,25",
		Mapping:  map[string]string{"Name": config.MappingNew, "Age": config.MappingNew},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.NewFields)
	assert.Equal(t, 2, result.Attempted)
	assert.Equal(t, 2, result.Committed)
	assert.Equal(t, 0, result.FailedChunks)
	assert.NotEmpty(t, result.BatchId)

	require.Len(t, strg.createdFields, 1)
	created := strg.createdFields[0].Fields
	require.Len(t, created, 2)
	names := []string{created[0].Name, created[1].Name}
	assert.Contains(t, names, "name")
	assert.Contains(t, names, "age")

	require.Len(t, strg.inserts, 1)
	rows := strg.inserts[0].Rows
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, result.BatchId, row[config.BatchKey])
	}
}

func TestImportMapsToExistingFields(t *testing.T) {
	strg := &fakeStorage{fields: []models.Field{
		{Name: "nome", Label: "Nome"},
		{Name: "idade", Label: "Idade"},
	}}
	svc := NewImportService(testConfig(), testLogger(), strg)

	result, err := svc.Import(context.Background(), &models.ImportRequest{
		TenantId: "t1",
		TableId:  "tbl1",
		RawText:  "Nome,Idade\nAna,30",
		Mapping:  map[string]string{"Nome": "nome", "Idade": "idade"},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.NewFields)
	assert.Empty(t, strg.createdFields)

	require.Len(t, strg.inserts, 1)
	row := strg.inserts[0].Rows[0]
	assert.Equal(t, "Ana", row["nome"])
	assert.Equal(t, "30", row["idade"])
}

func TestImportAutoMapsWhenMappingMissing(t *testing.T) {
	strg := &fakeStorage{fields: []models.Field{{Name: "nome", Label: "Nome"}}}
	svc := NewImportService(testConfig(), testLogger(), strg)

	result, err := svc.Import(context.Background(), &models.ImportRequest{
		TenantId: "t1",
		TableId:  "tbl1",
		RawText:  "Nome,Cidade\nAna,Recife",
	})
	require.NoError(t, err)

	// Cidade has no matching field and defaults to ignore
	assert.Equal(t, 0, result.NewFields)
	row := strg.inserts[0].Rows[0]
	assert.Equal(t, "Ana", row["nome"])
	assert.NotContains(t, row, "cidade")
}

func TestImportDropsEmptyRows(t *testing.T) {
	strg := &fakeStorage{fields: []models.Field{{Name: "nome", Label: "Nome"}}}
	svc := NewImportService(testConfig(), testLogger(), strg)

	result, err := svc.Import(context.Background(), &models.ImportRequest{
		TenantId: "t1",
		TableId:  "tbl1",
		RawText:  "Nome\nAna\n''\nBruno",
		Mapping:  map[string]string{"Nome": "nome"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Attempted)
	assert.Equal(t, 2, result.Committed)
}

func TestImportNoColumnsMapped(t *testing.T) {
	strg := &fakeStorage{}
	svc := NewImportService(testConfig(), testLogger(), strg)

	_, err := svc.Import(context.Background(), &models.ImportRequest{
		TenantId: "t1",
		TableId:  "tbl1",
		RawText:  "Nome\nAna",
		Mapping:  map[string]string{"Nome": config.MappingIgnore},
	})
	assert.Error(t, err)
	assert.Empty(t, strg.inserts)
}

func TestImportUnknownMappedField(t *testing.T) {
	strg := &fakeStorage{}
	svc := NewImportService(testConfig(), testLogger(), strg)

	_, err := svc.Import(context.Background(), &models.ImportRequest{
		TenantId: "t1",
		TableId:  "tbl1",
		RawText:  "Nome\nAna",
		Mapping:  map[string]string{"Nome": "nao_existe"},
	})
	assert.Error(t, err)
}

func TestImportChunkFailureContinues(t *testing.T) {
	cfg := testConfig()
	cfg.ImportChunkSize = 1

	strg := &fakeStorage{
		fields:    []models.Field{{Name: "nome", Label: "Nome"}},
		failChunk: 2,
	}
	svc := NewImportService(cfg, testLogger(), strg)

	result, err := svc.Import(context.Background(), &models.ImportRequest{
		TenantId: "t1",
		TableId:  "tbl1",
		RawText:  "Nome\nAna\nBruno\nCarla",
		Mapping:  map[string]string{"Nome": "nome"},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.Attempted)
	assert.Equal(t, 2, result.Committed)
	assert.Equal(t, 1, result.FailedChunks)
}

func TestImportExtractsSelectOptions(t *testing.T) {
	strg := &fakeStorage{}
	svc := NewImportService(testConfig(), testLogger(), strg)

	_, err := svc.Import(context.Background(), &models.ImportRequest{
		TenantId: "t1",
		TableId:  "tbl1",
		RawText:  "Status\nAberto\nFechado\nAberto",
		Mapping:  map[string]string{"Status": config.MappingNew},
		Configs: map[string]models.ColumnConfig{
			"Status": {Type: "select", ExtractOptions: true},
		},
	})
	require.NoError(t, err)

	require.Len(t, strg.createdFields, 1)
	field := strg.createdFields[0].Fields[0]
	assert.Equal(t, "select", field.Type)
	require.Len(t, field.Options, 2)
	assert.Equal(t, "aberto", field.Options[0].Value)
}

// An import that arrives while another one is running is refused outright:
// nothing is parsed, no fields are created and no rows land.
func TestImportRefusedWhileAnotherRuns(t *testing.T) {
	strg := &fakeStorage{}
	svc := NewImportService(testConfig(), testLogger(), strg).(*importService)

	svc.mu.Lock()
	defer svc.mu.Unlock()

	_, err := svc.Import(context.Background(), &models.ImportRequest{
		TenantId: "t1",
		TableId:  "tbl1",
		RawText:  "Name\nAna",
		Mapping:  map[string]string{"Name": config.MappingNew},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "another import")

	assert.Empty(t, strg.createdFields)
	assert.Empty(t, strg.inserts)
}

func TestPreview(t *testing.T) {
	strg := &fakeStorage{fields: []models.Field{{Name: "nome", Label: "Nome"}}}
	svc := NewImportService(testConfig(), testLogger(), strg)

	preview, err := svc.Preview(context.Background(), &models.ImportPreviewRequest{
		TenantId: "t1",
		TableId:  "tbl1",
		RawText:  "Nome,Cidade\nAna,Recife\nBruno,Olinda",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Nome", "Cidade"}, preview.Headers)
	assert.Equal(t, "nome", preview.Mapping["Nome"])
	assert.Equal(t, config.MappingIgnore, preview.Mapping["Cidade"])
	assert.Len(t, preview.Rows, 2)
}
