package helper

import (
	"sort"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/models"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

// NewBatchId mints the identifier shared by every record of one import run.
func NewBatchId() string {
	return uuid.NewString()
}

// TagBatch marks a record's data map as belonging to a bulk import.
func TagBatch(data map[string]any, batchId string) {
	data[config.BatchKey] = batchId
}

// BatchIdOf returns the batch identifier embedded in a record, or "" for a
// manually entered record.
func BatchIdOf(r models.Record) string {
	if r.Data == nil {
		return ""
	}

	return cast.ToString(r.Data[config.BatchKey])
}

// StripBatchKey returns a copy of data without the reserved batch key. Manual
// entry runs every submission through this, so stale form state can never turn
// a single into a batch member.
func StripBatchKey(data map[string]any) map[string]any {
	clean := make(map[string]any, len(data))
	for k, v := range data {
		if k == config.BatchKey {
			continue
		}
		clean[k] = v
	}

	return clean
}

// GroupPending partitions pending records into singles and batch groups. The
// result depends only on the record set, not its order: every record lands in
// exactly one bucket, groups and singles are sorted newest first with ids as
// tie breaker, and a group's metadata comes from its earliest record.
func GroupPending(records []models.Record) models.PendingSet {
	var (
		singles  []models.Record
		batchMap = map[string][]models.Record{}
	)

	for _, r := range records {
		if batchId := BatchIdOf(r); batchId != "" {
			batchMap[batchId] = append(batchMap[batchId], r)
		} else {
			singles = append(singles, r)
		}
	}

	sortRecords(singles)

	batches := make([]models.BatchGroup, 0, len(batchMap))
	for batchId, recs := range batchMap {
		sortRecords(recs)

		earliest := recs[0]
		for _, r := range recs[1:] {
			if r.CreatedAt < earliest.CreatedAt {
				earliest = r
			}
		}

		batches = append(batches, models.BatchGroup{
			BatchId:    batchId,
			Records:    recs,
			ModuleName: earliest.ModuleName,
			TableName:  earliest.TableName,
			CreatedAt:  earliest.CreatedAt,
		})
	}

	sort.Slice(batches, func(i, j int) bool {
		if batches[i].CreatedAt != batches[j].CreatedAt {
			return batches[i].CreatedAt > batches[j].CreatedAt
		}
		return batches[i].BatchId < batches[j].BatchId
	})

	return models.PendingSet{Singles: singles, Batches: batches}
}

// RecordIds is the convenience that turns a batch group into the id set the
// approve/reject primitive takes. Batch approval is not a separate code path.
func RecordIds(records []models.Record) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.Id)
	}

	return ids
}

func sortRecords(recs []models.Record) {
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].CreatedAt != recs[j].CreatedAt {
			return recs[i].CreatedAt > recs[j].CreatedAt
		}
		return recs[i].Id < recs[j].Id
	})
}
