// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Ensure creates the collection if it is missing and attaches schema as a
// JSON-Schema validator. Servers without collMod validator support (some
// DocumentDB versions) are logged and skipped.
func Ensure(ctx context.Context, db *mongo.Database, coll string, schema bson.M) error {
	if err := ensureCollection(ctx, db, coll); err != nil {
		return err
	}
	if schema == nil {
		return nil
	}
	if err := setValidator(ctx, db, coll, schema); err != nil {
		if isUnsupported(err) {
			zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
			return nil
		}
		return err
	}
	return nil
}

// AuditEventsSchema requires the fields audit history filters on.
func AuditEventsSchema(categories []string) bson.M {
	enum := make(bson.A, 0, len(categories))
	for _, c := range categories {
		enum = append(enum, c)
	}
	nonBlank := bson.M{"bsonType": "string", "minLength": 1, "pattern": ".*\\S.*"}
	return bson.M{
		"$jsonSchema": bson.M{
			"bsonType": "object",
			"required": bson.A{"timestamp", "category", "event_type", "entity", "entity_id", "success"},
			"properties": bson.M{
				"timestamp":      bson.M{"bsonType": "date"},
				"category":       bson.M{"enum": enum},
				"event_type":     nonBlank,
				"entity":         nonBlank,
				"entity_id":      bson.M{"bsonType": "objectId"},
				"from":           bson.M{"bsonType": "string"},
				"to":             bson.M{"bsonType": "string"},
				"success":        bson.M{"bsonType": "bool"},
				"failure_reason": bson.M{"bsonType": "string"},
				"details":        bson.M{"bsonType": "object"},
			},
		},
	}
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string) error {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err == nil && len(names) > 0 {
		zap.L().Info("collection exists", zap.String("collection", name))
		return nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			return nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	if err := db.RunCommand(ctx, cmd).Err(); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

func commandMatches(err error, codes []int32, phrases ...string) bool {
	var ce mongo.CommandError
	if errors.As(err, &ce) {
		for _, c := range codes {
			if ce.Code == c {
				return true
			}
		}
	}
	s := strings.ToLower(err.Error())
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

func isNamespaceExistsErr(err error) bool {
	return commandMatches(err, []int32{48}, "already exists", "namespace exists")
}

// isUnsupported covers "no such command" (59) and "not implemented" (115).
func isUnsupported(err error) bool {
	return commandMatches(err, []int32{59, 115}, "no such command", "not implemented", "not supported")
}
