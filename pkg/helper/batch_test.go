package helper

import (
	"testing"

	"github.com/manveru/faker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/models"
)

func pendingFixture(t *testing.T) []models.Record {
	t.Helper()

	fake, err := faker.New("en")
	require.NoError(t, err)

	batchId := "11111111-1111-1111-1111-111111111111"

	return []models.Record{
		{
			Id:        "r1",
			CreatedAt: "2026-08-30T10:00:00Z",
			Data:      map[string]any{"nome": fake.Name(), config.BatchKey: batchId},
			TableName: "Fornecedores",
		},
		{
			Id:        "r2",
			CreatedAt: "2026-08-30T10:00:01Z",
			Data:      map[string]any{"nome": fake.Name(), config.BatchKey: batchId},
			TableName: "Fornecedores",
		},
		{
			Id:        "r3",
			CreatedAt: "2026-08-30T10:00:02Z",
			Data:      map[string]any{"nome": fake.Name(), config.BatchKey: batchId},
			TableName: "Fornecedores",
		},
		{
			Id:        "r4",
			CreatedAt: "2026-08-31T09:00:00Z",
			Data:      map[string]any{"nome": fake.Name()},
			TableName: "Contratos",
		},
		{
			Id:        "r5",
			CreatedAt: "2026-08-29T09:00:00Z",
			Data:      map[string]any{"nome": fake.Name()},
			TableName: "Contratos",
		},
	}
}

func TestGroupPending(t *testing.T) {
	records := pendingFixture(t)

	set := GroupPending(records)

	require.Len(t, set.Singles, 2)
	require.Len(t, set.Batches, 1)

	// singles newest first
	assert.Equal(t, "r4", set.Singles[0].Id)
	assert.Equal(t, "r5", set.Singles[1].Id)

	group := set.Batches[0]
	assert.Len(t, group.Records, 3)
	assert.Equal(t, "Fornecedores", group.TableName)
	// group metadata comes from the earliest member
	assert.Equal(t, "2026-08-30T10:00:00Z", group.CreatedAt)
	// members newest first
	assert.Equal(t, "r3", group.Records[0].Id)
	assert.Equal(t, "r1", group.Records[2].Id)
}

func TestGroupPendingOrderIndependent(t *testing.T) {
	records := pendingFixture(t)

	reversed := make([]models.Record, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		reversed = append(reversed, records[i])
	}

	assert.Equal(t, GroupPending(records), GroupPending(reversed))
}

func TestGroupPendingEmpty(t *testing.T) {
	set := GroupPending(nil)
	assert.Empty(t, set.Singles)
	assert.Empty(t, set.Batches)
}

func TestTagAndStripBatchKey(t *testing.T) {
	data := map[string]any{"nome": "Ana"}
	TagBatch(data, "b1")
	assert.Equal(t, "b1", data[config.BatchKey])

	clean := StripBatchKey(data)
	assert.NotContains(t, clean, config.BatchKey)
	assert.Equal(t, "Ana", clean["nome"])
	// original untouched
	assert.Contains(t, data, config.BatchKey)
}

func TestBatchIdOf(t *testing.T) {
	assert.Equal(t, "b1", BatchIdOf(models.Record{Data: map[string]any{config.BatchKey: "b1"}}))
	assert.Equal(t, "", BatchIdOf(models.Record{Data: map[string]any{"nome": "Ana"}}))
	assert.Equal(t, "", BatchIdOf(models.Record{}))
}

func TestRecordIds(t *testing.T) {
	ids := RecordIds([]models.Record{{Id: "a"}, {Id: "b"}})
	assert.Equal(t, []string{"a", "b"}, ids)
}
