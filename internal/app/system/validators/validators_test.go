package validators_test

import (
	"testing"
	"time"

	"github.com/dalemusser/academyhub/internal/app/system/validators"
	"github.com/dalemusser/academyhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAuditEventsSchema(t *testing.T) {
	schema := validators.AuditEventsSchema([]string{"lifecycle", "admin"})
	js, ok := schema["$jsonSchema"].(bson.M)
	if !ok {
		t.Fatal("missing $jsonSchema")
	}
	props := js["properties"].(bson.M)
	enum := props["category"].(bson.M)["enum"].(bson.A)
	if len(enum) != 2 || enum[0] != "lifecycle" || enum[1] != "admin" {
		t.Errorf("category enum: got %v", enum)
	}
	if len(js["required"].(bson.A)) != 6 {
		t.Errorf("required: got %v", js["required"])
	}
}

func TestEnsure_RejectsInvalidDocuments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	schema := validators.AuditEventsSchema([]string{"lifecycle", "admin"})
	for i := 0; i < 2; i++ {
		if err := validators.Ensure(ctx, db, "audit_events", schema); err != nil {
			t.Fatalf("Ensure #%d: %v", i+1, err)
		}
	}

	coll := db.Collection("audit_events")
	good := bson.M{
		"timestamp":  time.Now().UTC(),
		"category":   "admin",
		"event_type": "coach_created",
		"entity":     "coach",
		"entity_id":  primitive.NewObjectID(),
		"success":    true,
	}
	if _, err := coll.InsertOne(ctx, good); err != nil {
		t.Fatalf("valid insert rejected: %v", err)
	}

	bad := bson.M{"timestamp": time.Now().UTC(), "category": "billing", "event_type": "x", "entity": "coach", "entity_id": primitive.NewObjectID(), "success": true}
	if _, err := coll.InsertOne(ctx, bad); err == nil {
		t.Error("insert with unknown category should fail validation")
	}
}
