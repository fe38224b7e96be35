package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const assistantCollection = "assistant_messages"

type assistantMessage struct {
	UserID    string    `bson:"user_id"`
	Role      string    `bson:"role"`
	Content   string    `bson:"content"`
	Timestamp time.Time `bson:"timestamp"`
}

// MongoConversationStore keeps assistant conversations in MongoDB, one
// document per turn.
type MongoConversationStore struct {
	DB *mongo.Database
}

func NewMongoConversationStore(db *mongo.Database) *MongoConversationStore {
	return &MongoConversationStore{DB: db}
}

// EnsureIndexes configures indexes for the assistant_messages collection.
// Called on startup from main after Mongo has connected.
func (s *MongoConversationStore) EnsureIndexes(ctx context.Context) error {
	col := s.DB.Collection(assistantCollection)

	// Compound index on (user_id, timestamp) so history loads stay cheap.
	_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "user_id", Value: 1},
			{Key: "timestamp", Value: 1},
		},
		Options: options.Index().SetName("idx_user_timestamp"),
	})
	return err
}

func (s *MongoConversationStore) Append(ctx context.Context, userID uuid.UUID, role, content string) error {
	col := s.DB.Collection(assistantCollection)
	_, err := col.InsertOne(ctx, assistantMessage{
		UserID:    userID.String(),
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	})
	return err
}

// Recent returns the newest `limit` turns in chronological order.
func (s *MongoConversationStore) Recent(ctx context.Context, userID uuid.UUID, limit int) ([]ChatTurn, error) {
	if limit <= 0 {
		limit = chatHistoryLimit
	}

	col := s.DB.Collection(assistantCollection)
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := col.Find(ctx, bson.M{"user_id": userID.String()}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var turns []ChatTurn
	for cur.Next(ctx) {
		var m assistantMessage
		if err := cur.Decode(&m); err != nil {
			continue
		}
		turns = append(turns, ChatTurn{Role: m.Role, Content: m.Content})
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	// Reverse to oldest-first for the completion request.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

func (s *MongoConversationStore) Clear(ctx context.Context, userID uuid.UUID) error {
	col := s.DB.Collection(assistantCollection)
	_, err := col.DeleteMany(ctx, bson.M{"user_id": userID.String()})
	return err
}
