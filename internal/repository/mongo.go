package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Shivanand-hulikatti/event-calendar/internal/model"
	"github.com/Shivanand-hulikatti/event-calendar/internal/validate"
)

const eventsCollection = "events"

// eventDocument is the BSON shape of an event.
type eventDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Start       time.Time          `bson:"start"`
	End         time.Time          `bson:"end"`
	AllDay      bool               `bson:"allDay"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d eventDocument) toModel() model.Event {
	return model.Event{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Start:       d.Start.UTC(),
		End:         d.End.UTC(),
		AllDay:      d.AllDay,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// BSON dates carry millisecond precision.
func toDocument(e model.Event) eventDocument {
	return eventDocument{
		Title:       e.Title,
		Description: e.Description,
		Start:       e.Start.UTC().Truncate(time.Millisecond),
		End:         e.End.UTC().Truncate(time.Millisecond),
		AllDay:      e.AllDay,
		CreatedAt:   e.CreatedAt.UTC().Truncate(time.Millisecond),
		UpdatedAt:   e.UpdatedAt.UTC().Truncate(time.Millisecond),
	}
}

// MongoEventRepository stores events as documents in one collection.
type MongoEventRepository struct {
	coll *mongo.Collection
}

// NewMongoEventRepository binds to the events collection of db and ensures
// the (start, end) range index exists.
func NewMongoEventRepository(ctx context.Context, db *mongo.Database) (*MongoEventRepository, error) {
	coll := db.Collection(eventsCollection)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "start", Value: 1}, {Key: "end", Value: 1}},
		Options: options.Index().SetName("start_1_end_1"),
	})
	if err != nil {
		return nil, fmt.Errorf("create events index: %w", err)
	}
	return &MongoEventRepository{coll: coll}, nil
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidID
	}
	return oid, nil
}

// List returns all events ordered by start ascending.
func (r *MongoEventRepository) List(ctx context.Context) ([]model.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}, {Key: "createdAt", Value: 1}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	var docs []eventDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	events := make([]model.Event, 0, len(docs))
	for _, d := range docs {
		events = append(events, d.toModel())
	}
	return events, nil
}

// GetByID returns a single event or ErrNotFound.
func (r *MongoEventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc eventDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	e := doc.toModel()
	return &e, nil
}

// Create inserts a new document with a fresh ObjectID.
func (r *MongoEventRepository) Create(ctx context.Context, e model.Event) (*model.Event, error) {
	if err := validate.Event(e); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	e.CreatedAt, e.UpdatedAt = now, now

	doc := toDocument(e)
	doc.ID = primitive.NewObjectID()
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	out := doc.toModel()
	return &out, nil
}

// Update replaces the stored document, keeping its creation time.
func (r *MongoEventRepository) Update(ctx context.Context, e model.Event) (*model.Event, error) {
	oid, err := objectID(e.ID)
	if err != nil {
		return nil, err
	}
	if err := validate.Event(e); err != nil {
		return nil, err
	}
	doc := toDocument(e)
	set := bson.M{
		"title":       doc.Title,
		"description": doc.Description,
		"start":       doc.Start,
		"end":         doc.End,
		"allDay":      doc.AllDay,
		"updatedAt":   time.Now().UTC().Truncate(time.Millisecond),
	}

	var updated eventDocument
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	out := updated.toModel()
	return &out, nil
}

// Delete removes a document and returns what was stored.
func (r *MongoEventRepository) Delete(ctx context.Context, id string) (*model.Event, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc eventDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("delete event: %w", err)
	}
	e := doc.toModel()
	return &e, nil
}
