package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sakif/sweet-memories/internal/apperror"
	"github.com/sakif/sweet-memories/internal/model"
)

// CreateMemory inserts the memory and copies the server-assigned ObjectID
// back onto it.
func (s *Store) CreateMemory(ctx context.Context, memory *model.Memory) error {
	coll, err := s.collection(ctx, memoriesCollection)
	if err != nil {
		return err
	}

	doc := toMemoryDoc(memory)
	doc.ID = primitive.NewObjectID()

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("mongo: creating memory: %w", err)
	}

	memory.ID = doc.ID.Hex()
	return nil
}

func (s *Store) ListMemories(ctx context.Context) ([]model.Memory, error) {
	coll, err := s.collection(ctx, memoriesCollection)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(memorySort))
	if err != nil {
		return nil, fmt.Errorf("mongo: listing memories: %w", err)
	}

	var docs []memoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: decoding memories: %w", err)
	}

	memories := make([]model.Memory, 0, len(docs))
	for _, d := range docs {
		memories = append(memories, d.toModel())
	}
	return memories, nil
}

func (s *Store) GetMemory(ctx context.Context, id string) (*model.Memory, error) {
	oid, err := parseID("memory", id)
	if err != nil {
		return nil, err
	}
	coll, err := s.collection(ctx, memoriesCollection)
	if err != nil {
		return nil, err
	}

	var doc memoryDoc
	if err := coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("memory", id)
		}
		return nil, fmt.Errorf("mongo: getting memory %s: %w", id, err)
	}

	m := doc.toModel()
	return &m, nil
}

// SetFavorite applies a partial $set on favorite. MatchedCount is used
// rather than ModifiedCount: setting the value it already has is still a
// successful update.
func (s *Store) SetFavorite(ctx context.Context, id string, favorite bool) error {
	oid, err := parseID("memory", id)
	if err != nil {
		return err
	}
	coll, err := s.collection(ctx, memoriesCollection)
	if err != nil {
		return err
	}

	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"favorite": favorite}},
	)
	if err != nil {
		return fmt.Errorf("mongo: updating memory %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("memory", id)
	}
	return nil
}

func (s *Store) DeleteMemory(ctx context.Context, id string) error {
	oid, err := parseID("memory", id)
	if err != nil {
		return err
	}
	coll, err := s.collection(ctx, memoriesCollection)
	if err != nil {
		return err
	}

	res, err := coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("mongo: deleting memory %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return apperror.NotFound("memory", id)
	}
	return nil
}
