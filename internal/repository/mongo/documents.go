package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sakif/sweet-memories/internal/model"
)

// memoryDoc is the stored shape of a model.Memory. _id is a real ObjectID
// and image/cloudinaryId are written as BSON null when absent.
type memoryDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Date         string             `bson:"date"`
	Description  string             `bson:"description"`
	Tag          string             `bson:"tag"`
	Image        *string            `bson:"image"`
	CloudinaryID *string            `bson:"cloudinaryId"`
	Favorite     bool               `bson:"favorite"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

type guestbookDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Message   string             `bson:"message"`
	CreatedAt time.Time          `bson:"createdAt"`
}

// memorySort orders by date, then createdAt, both descending.
var memorySort = bson.D{{Key: "date", Value: -1}, {Key: "createdAt", Value: -1}}

var guestbookSort = bson.D{{Key: "createdAt", Value: -1}}

func toMemoryDoc(m *model.Memory) memoryDoc {
	return memoryDoc{
		Title:        m.Title,
		Date:         m.Date,
		Description:  m.Description,
		Tag:          m.Tag,
		Image:        m.Image,
		CloudinaryID: m.CloudinaryID,
		Favorite:     m.Favorite,
		CreatedAt:    m.CreatedAt,
	}
}

func (d memoryDoc) toModel() model.Memory {
	return model.Memory{
		ID:           d.ID.Hex(),
		Title:        d.Title,
		Date:         d.Date,
		Description:  d.Description,
		Tag:          d.Tag,
		Image:        d.Image,
		CloudinaryID: d.CloudinaryID,
		Favorite:     d.Favorite,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}

func toGuestbookDoc(e *model.GuestbookEntry) guestbookDoc {
	return guestbookDoc{
		Name:      e.Name,
		Message:   e.Message,
		CreatedAt: e.CreatedAt,
	}
}

func (d guestbookDoc) toModel() model.GuestbookEntry {
	return model.GuestbookEntry{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Message:   d.Message,
		CreatedAt: d.CreatedAt.UTC(),
	}
}
