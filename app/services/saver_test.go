package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type writeRecorder struct {
	mu     sync.Mutex
	writes []*models.InspectionLot
	tables []string
}

func (r *writeRecorder) write(_ *sql.DB, table string, lot *models.InspectionLot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = append(r.writes, lot)
	r.tables = append(r.tables, table)
	return nil
}

func (r *writeRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.writes)
}

func newTestSaver(delay time.Duration) (*LotSaver, *writeRecorder) {
	rec := &writeRecorder{}
	s := NewLotSaver(nil, delay)
	s.writeLot = rec.write
	return s, rec
}

func testLot(formID string) *models.InspectionLot {
	return &models.InspectionLot{FormID: formID, TraceabilityCode: "2508281 1"}
}

func docWithWeight(weight string) models.LotDocument {
	return models.LotDocument{Rolls: []models.RollEntry{{RollWeight: weight}}}
}

func TestScheduleCoalescesEdits(t *testing.T) {
	s, rec := newTestSaver(30 * time.Millisecond)
	lot := testLot("f1")

	s.Schedule("inline_inspection_form_master_1", lot, docWithWeight("10.00"))
	s.Schedule("inline_inspection_form_master_1", lot, docWithWeight("12.34"))

	time.Sleep(120 * time.Millisecond)

	require.Equal(t, 1, rec.count(), "two quick edits must produce one write")
	assert.Equal(t, "12.34", rec.writes[0].RollWeights["1"], "last document wins")
}

func TestScheduleSeparateForms(t *testing.T) {
	s, rec := newTestSaver(20 * time.Millisecond)

	s.Schedule("inline_inspection_form_master_1", testLot("f1"), docWithWeight("10.00"))
	s.Schedule("inline_inspection_form_master_1", testLot("f2"), docWithWeight("11.00"))

	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, 2, rec.count(), "debounce is per form")
}

func TestSaveNowCancelsPending(t *testing.T) {
	s, rec := newTestSaver(50 * time.Millisecond)
	lot := testLot("f1")

	s.Schedule("inline_inspection_form_master_1", lot, docWithWeight("10.00"))
	err := s.SaveNow("inline_inspection_form_master_1", lot, docWithWeight("12.34"))
	require.NoError(t, err)

	time.Sleep(150 * time.Millisecond)

	require.Equal(t, 1, rec.count(), "pending debounced write must be cancelled")
	assert.Equal(t, "12.34", rec.writes[0].RollWeights["1"])
}

func TestSaveNowZeroRows(t *testing.T) {
	s, rec := newTestSaver(10 * time.Millisecond)
	lot := testLot("f1")
	lot.RollWeights = models.FieldMap{"1": "10.00"}
	lot.TotalRolls = 1

	err := s.SaveNow("inline_inspection_form_master_1", lot, models.LotDocument{})
	require.NoError(t, err)

	require.Equal(t, 1, rec.count())
	assert.Empty(t, rec.writes[0].RollWeights, "zero-row save persists an empty document")
	assert.Zero(t, rec.writes[0].TotalRolls)
}

func TestCloseFlushesPending(t *testing.T) {
	s, rec := newTestSaver(10 * time.Second)
	lot := testLot("f1")

	s.Schedule("inline_inspection_form_master_1", lot, docWithWeight("10.00"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Close(ctx))

	assert.Equal(t, 1, rec.count(), "Close must flush without waiting for the timer")
}

func TestScheduleAfterCloseIsIgnored(t *testing.T) {
	s, rec := newTestSaver(5 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Close(ctx))

	s.Schedule("inline_inspection_form_master_1", testLot("f1"), docWithWeight("10.00"))
	time.Sleep(50 * time.Millisecond)

	assert.Zero(t, rec.count())
}
