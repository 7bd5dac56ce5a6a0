package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ferreteria-epa/backoffice/internal/core/domain"
)

const collectionLoginAttempts = "login_attempts"

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionLoginAttempts)}
}

// InsertAttempt persists a login attempt to the login_attempts collection.
func (r *AuditRepository) InsertAttempt(ctx context.Context, attempt *domain.LoginAttempt) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"email":       attempt.Email,
		"outcome":     string(attempt.Outcome),
		"at":          attempt.At.UTC(),
		"recorded_at": time.Now().UTC(),
	}
	if attempt.Role != "" {
		doc["role"] = string(attempt.Role)
	}

	_, err := r.col.InsertOne(ctx, doc)
	return err
}

// EnsureIndexes adds a lookup index by email and time.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}, {Key: "at", Value: -1}},
		Options: options.Index().SetName("email_at"),
	})
	return err
}
