package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sakif/sweet-memories/internal/model"
)

func (s *Store) CreateEntry(ctx context.Context, entry *model.GuestbookEntry) error {
	coll, err := s.collection(ctx, guestbookCollection)
	if err != nil {
		return err
	}

	doc := toGuestbookDoc(entry)
	doc.ID = primitive.NewObjectID()

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("mongo: creating guestbook entry: %w", err)
	}

	entry.ID = doc.ID.Hex()
	return nil
}

func (s *Store) ListEntries(ctx context.Context) ([]model.GuestbookEntry, error) {
	coll, err := s.collection(ctx, guestbookCollection)
	if err != nil {
		return nil, err
	}

	cur, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(guestbookSort))
	if err != nil {
		return nil, fmt.Errorf("mongo: listing guestbook entries: %w", err)
	}

	var docs []guestbookDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: decoding guestbook entries: %w", err)
	}

	entries := make([]model.GuestbookEntry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, d.toModel())
	}
	return entries, nil
}
