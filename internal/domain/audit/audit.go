package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrpay/internal/platform/logger"
)

const (
	ActionCreate    = "create"
	ActionUpdate    = "update"
	ActionDelete    = "delete"
	ActionCalculate = "calculate"
	ActionPay       = "pay"
)

type Event struct {
	ID         int64           `json:"id"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	Actor      string          `json:"actor"`
	RequestID  string          `json:"requestId"`
	Details    json.RawMessage `json:"details,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

type Recorder interface {
	Record(ctx context.Context, evt Event) error
	List(ctx context.Context, limit int) ([]Event, error)
}

// Details marshals v for Event.Details, dropping values that cannot be encoded.
func Details(v any) json.RawMessage {
	if v == nil {
		return nil
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return payload
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) Record(ctx context.Context, evt Event) error {
	var details []byte
	if len(evt.Details) > 0 {
		details = evt.Details
	}
	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_events (action, entity_type, entity_id, actor, request_id, details)
    VALUES ($1, $2, $3, $4, $5, $6)
  `, evt.Action, evt.EntityType, evt.EntityID, evt.Actor, evt.RequestID, details)
	if err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := s.DB.Query(ctx, `
    SELECT id, action, entity_type, entity_id, COALESCE(actor, ''), COALESCE(request_id, ''), details, created_at
    FROM audit_events
    ORDER BY created_at DESC, id DESC
    LIMIT $1
  `, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Event, 0)
	for rows.Next() {
		var evt Event
		var details []byte
		if err := rows.Scan(&evt.ID, &evt.Action, &evt.EntityType, &evt.EntityID, &evt.Actor, &evt.RequestID, &details, &evt.CreatedAt); err != nil {
			return nil, err
		}
		if len(details) > 0 {
			evt.Details = details
		}
		out = append(out, evt)
	}
	return out, rows.Err()
}

// LogRecorder writes events to the structured log and keeps nothing.
type LogRecorder struct{}

func (LogRecorder) Record(ctx context.Context, evt Event) error {
	l := logger.From(ctx)
	l.Info().
		Str("action", evt.Action).
		Str("entity_type", evt.EntityType).
		Str("entity_id", evt.EntityID).
		Str("actor", evt.Actor).
		RawJSON("details", nonEmpty(evt.Details)).
		Msg("audit")
	return nil
}

func (LogRecorder) List(ctx context.Context, limit int) ([]Event, error) {
	return []Event{}, nil
}

// Memory keeps the most recent events in process, for the demo backend.
type Memory struct {
	LogRecorder

	mu     sync.Mutex
	max    int
	nextID int64
	events []Event
}

func NewMemory(max int) *Memory {
	if max <= 0 {
		max = 500
	}
	return &Memory{max: max}
}

func (m *Memory) Record(ctx context.Context, evt Event) error {
	m.mu.Lock()
	m.nextID++
	evt.ID = m.nextID
	if evt.CreatedAt.IsZero() {
		evt.CreatedAt = time.Now().UTC()
	}
	m.events = append(m.events, evt)
	if len(m.events) > m.max {
		m.events = m.events[len(m.events)-m.max:]
	}
	m.mu.Unlock()
	return m.LogRecorder.Record(ctx, evt)
}

// List returns newest first.
func (m *Memory) List(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, 0, min(limit, len(m.events)))
	for i := len(m.events) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.events[i])
	}
	return out, nil
}

func nonEmpty(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte("null")
	}
	return raw
}
