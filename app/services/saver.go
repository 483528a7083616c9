package services

import (
	"context"
	"database/sql"
	"log"
	"sync"
	"time"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/database"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/inspection"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/models"
)

// DefaultSaveDelay is the trailing debounce window for plain cell edits.
const DefaultSaveDelay = 1000 * time.Millisecond

// LotSaver is the persistence bridge: it coalesces cell edits into one
// trailing-debounce save per form_id and always writes the full lot
// document, last write wins. Disposition changes and row-add actions bypass
// the debounce via SaveNow.
type LotSaver struct {
	db    *sql.DB
	delay time.Duration

	mu      sync.Mutex
	pending map[string]*pendingSave
	wg      sync.WaitGroup
	closed  bool

	// writeLot is swappable for tests.
	writeLot func(db *sql.DB, table string, lot *models.InspectionLot) error
}

type pendingSave struct {
	timer *time.Timer
	table string
	lot   *models.InspectionLot
}

func NewLotSaver(db *sql.DB, delay time.Duration) *LotSaver {
	if delay <= 0 {
		delay = DefaultSaveDelay
	}
	return &LotSaver{
		db:       db,
		delay:    delay,
		pending:  make(map[string]*pendingSave),
		writeLot: database.UpdateLotDocument,
	}
}

// Schedule arms (or re-arms) the debounce timer for one lot. The submitted
// document replaces any pending one; intermediate states are never queued.
func (s *LotSaver) Schedule(table string, lot *models.InspectionLot, doc models.LotDocument) {
	inspection.ApplyRollsToLot(lot, doc.Rolls)
	if doc.InspectedBy != "" {
		lot.InspectedBy = doc.InspectedBy
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	// A fresh timer per schedule; re-arming a fired timer would let one
	// callback run twice.
	if p, ok := s.pending[lot.FormID]; ok {
		if p.timer.Stop() {
			s.wg.Done()
		}
	}

	p := &pendingSave{table: table, lot: lot}
	formID := lot.FormID
	s.wg.Add(1)
	p.timer = time.AfterFunc(s.delay, func() {
		defer s.wg.Done()
		s.flush(formID)
	})
	s.pending[formID] = p
}

// SaveNow writes one lot document immediately, replacing any pending
// debounced save for the same form.
func (s *LotSaver) SaveNow(table string, lot *models.InspectionLot, doc models.LotDocument) error {
	inspection.ApplyRollsToLot(lot, doc.Rolls)
	if doc.InspectedBy != "" {
		lot.InspectedBy = doc.InspectedBy
	}

	s.mu.Lock()
	if p, ok := s.pending[lot.FormID]; ok {
		if p.timer.Stop() {
			s.wg.Done()
		}
		delete(s.pending, lot.FormID)
	}
	s.mu.Unlock()

	return s.writeLot(s.db, table, lot)
}

func (s *LotSaver) flush(formID string) {
	s.mu.Lock()
	p, ok := s.pending[formID]
	if ok {
		delete(s.pending, formID)
	}
	s.mu.Unlock()
	if !ok {
		return
	}

	if err := s.writeLot(s.db, p.table, p.lot); err != nil {
		log.Printf("Debounced save failed for form %s: %v", formID, err)
	}
}

// Flush forces every pending save out now. Used on shutdown.
func (s *LotSaver) Flush(ctx context.Context) error {
	s.mu.Lock()
	ids := make([]string, 0, len(s.pending))
	for id, p := range s.pending {
		if p.timer.Stop() {
			s.wg.Done()
		}
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s.flush(id)
	}
	return nil
}

// Close flushes pending saves and rejects further scheduling.
func (s *LotSaver) Close(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	if err := s.Flush(ctx); err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
