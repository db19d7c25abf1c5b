package services

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnshRaj112/evolve-backend/internal/models"
)

// NotificationStore persists notifications, one document per recipient.
type NotificationStore interface {
	InsertNotifications(ctx context.Context, notes []models.Notification) error
	// ListNotifications returns the recipient's notifications newest first.
	ListNotifications(ctx context.Context, recipientID string, limit int64) ([]models.Notification, error)
}

// MongoNotifications stores notifications in a MongoDB collection.
type MongoNotifications struct {
	collection *mongo.Collection
}

func NewMongoNotifications(db *mongo.Database, collection string) *MongoNotifications {
	return &MongoNotifications{collection: db.Collection(collection)}
}

func (m *MongoNotifications) InsertNotifications(ctx context.Context, notes []models.Notification) error {
	if len(notes) == 0 {
		return nil
	}
	docs := make([]interface{}, len(notes))
	for i := range notes {
		if notes[i].ID.IsZero() {
			notes[i].ID = primitive.NewObjectID()
		}
		docs[i] = notes[i]
	}
	_, err := m.collection.InsertMany(ctx, docs)
	return err
}

func (m *MongoNotifications) ListNotifications(ctx context.Context, recipientID string, limit int64) ([]models.Notification, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := m.collection.Find(ctx, bson.M{"recipient_id": recipientID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notes := []models.Notification{}
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// MemoryNotifications keeps notifications in process.
type MemoryNotifications struct {
	mu    sync.RWMutex
	notes []models.Notification
}

func NewMemoryNotifications() *MemoryNotifications {
	return &MemoryNotifications{}
}

func (m *MemoryNotifications) InsertNotifications(_ context.Context, notes []models.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range notes {
		if notes[i].ID.IsZero() {
			notes[i].ID = primitive.NewObjectID()
		}
		m.notes = append(m.notes, notes[i])
	}
	return nil
}

func (m *MemoryNotifications) ListNotifications(_ context.Context, recipientID string, limit int64) ([]models.Notification, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []models.Notification{}
	for _, n := range m.notes {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}
