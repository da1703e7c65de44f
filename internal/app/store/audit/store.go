// internal/app/store/audit/store.go
package audit

import (
	"context"
	"time"

	"github.com/dalemusser/academyhub/internal/app/system/indexes"
	"github.com/dalemusser/academyhub/internal/app/system/validators"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Event categories
const (
	CategoryLifecycle = "lifecycle" // status transitions and outcomes
	CategoryAdmin     = "admin"     // create/update/delete and membership changes
)

// Lifecycle event types
const (
	EventDemoTransitioned    = "demo_transitioned"
	EventDemoOutcomeRecorded = "demo_outcome_recorded"
	EventBatchStatusChanged  = "batch_status_changed"
)

// Admin event types
const (
	EventDemoBooked              = "demo_booked"
	EventDemoUpdated             = "demo_updated"
	EventDemoDeleted             = "demo_deleted"
	EventBatchCreated            = "batch_created"
	EventBatchUpdated            = "batch_updated"
	EventBatchDeleted            = "batch_deleted"
	EventStudentAddedToBatch     = "student_added_to_batch"
	EventStudentRemovedFromBatch = "student_removed_from_batch"
	EventCoachAssignedToBatch    = "coach_assigned_to_batch"
	EventStudentCreated          = "student_created"
	EventStudentUpdated          = "student_updated"
	EventStudentDeleted          = "student_deleted"
	EventCoachCreated            = "coach_created"
	EventCoachUpdated            = "coach_updated"
	EventCoachDeleted            = "coach_deleted"
)

// Event represents an audit event.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`

	// Event classification
	Category  string `bson:"category" json:"category"`
	EventType string `bson:"event_type" json:"event_type"`

	// Subject
	Entity   string             `bson:"entity" json:"entity"`
	EntityID primitive.ObjectID `bson:"entity_id" json:"entity_id"`

	// Status change, when the event is a transition
	From string `bson:"from,omitempty" json:"from,omitempty"`
	To   string `bson:"to,omitempty" json:"to,omitempty"`

	// Outcome
	Success       bool   `bson:"success" json:"success"`
	FailureReason string `bson:"failure_reason,omitempty" json:"failure_reason,omitempty"`

	Details map[string]string `bson:"details,omitempty" json:"details,omitempty"`
}

// QueryFilter defines filters for querying audit events.
type QueryFilter struct {
	Entity    string
	EntityID  *primitive.ObjectID
	Category  string
	EventType string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int64
	Offset    int64
}

// Store manages audit event records.
type Store struct {
	c *mongo.Collection
}

// Collection holds one document per Event.
const Collection = "audit_events"

// Categories lists every valid Event.Category.
var Categories = []string{CategoryLifecycle, CategoryAdmin}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(Collection)}
}

// EnsureSchema creates the collection with its JSON-Schema validator and
// then the indexes Query relies on.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if err := validators.Ensure(ctx, s.c.Database(), Collection, validators.AuditEventsSchema(Categories)); err != nil {
		return err
	}
	return s.EnsureIndexes(ctx)
}

// EnsureIndexes creates the indexes Query relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	return indexes.Ensure(ctx, s.c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_audit_ts_desc"),
		},
		{
			Keys: bson.D{
				{Key: "entity", Value: 1},
				{Key: "entity_id", Value: 1},
				{Key: "timestamp", Value: -1},
			},
			Options: options.Index().SetName("idx_audit_entity_ts"),
		},
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "event_type", Value: 1},
				{Key: "timestamp", Value: -1},
			},
			Options: options.Index().SetName("idx_audit_category_type_ts"),
		},
	})
}

// Log records an audit event.
func (s *Store) Log(ctx context.Context, event Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, event)
	return err
}

func buildQuery(filter QueryFilter) bson.M {
	query := bson.M{}
	if filter.Entity != "" {
		query["entity"] = filter.Entity
	}
	if filter.EntityID != nil {
		query["entity_id"] = *filter.EntityID
	}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.EventType != "" {
		query["event_type"] = filter.EventType
	}
	if filter.StartTime != nil || filter.EndTime != nil {
		timeQuery := bson.M{}
		if filter.StartTime != nil {
			timeQuery["$gte"] = *filter.StartTime
		}
		if filter.EndTime != nil {
			timeQuery["$lte"] = *filter.EndTime
		}
		query["timestamp"] = timeQuery
	}
	return query
}

// Query retrieves audit events matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit).
		SetSkip(filter.Offset)

	cursor, err := s.c.Find(ctx, buildQuery(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (s *Store) CountByFilter(ctx context.Context, filter QueryFilter) (int64, error) {
	return s.c.CountDocuments(ctx, buildQuery(filter))
}

// GetByEntity retrieves recent events for one record.
func (s *Store) GetByEntity(ctx context.Context, entity string, id primitive.ObjectID, limit int64) ([]Event, error) {
	return s.Query(ctx, QueryFilter{Entity: entity, EntityID: &id, Limit: limit})
}

func (s *Store) GetRecent(ctx context.Context, limit int64) ([]Event, error) {
	return s.Query(ctx, QueryFilter{Limit: limit})
}
