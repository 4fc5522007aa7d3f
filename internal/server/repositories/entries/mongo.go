package entries

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/diary/internal/common"
	"github.com/dmitrijs2005/diary/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type entryDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Title  string             `bson:"title"`
	Writer string             `bson:"writer"`
	Date   string             `bson:"date"`
	Text   string             `bson:"text"`
	Image  string             `bson:"image"`
}

func (d *entryDocument) toModel() *models.Entry {
	return &models.Entry{
		ID:     d.ID.Hex(),
		Title:  d.Title,
		Writer: d.Writer,
		Date:   d.Date,
		Text:   d.Text,
		Image:  d.Image,
	}
}

// MongoRepository keeps entries in one collection. ObjectIDs grow with
// insertion time, so sorting by _id gives insertion order.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

func (r *MongoRepository) List(ctx context.Context, limit int) ([]*models.Entry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer cur.Close(ctx)

	result := make([]*models.Entry, 0)
	for cur.Next(ctx) {
		var doc entryDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, doc.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *MongoRepository) Create(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	doc := entryDocument{
		Title:  entry.Title,
		Writer: entry.Writer,
		Date:   entry.Date,
		Text:   entry.Text,
		Image:  entry.Image,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		entry.ID = oid.Hex()
	}
	return entry, nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, patch *models.EntryPatch) (*models.Entry, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, common.ErrorNotFound
	}
	filter := bson.M{"_id": oid}

	var doc entryDocument
	if patch.IsEmpty() {
		err = r.coll.FindOne(ctx, filter).Decode(&doc)
	} else {
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err = r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": patchToSet(patch)}, opts).Decode(&doc)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc.toModel(), nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return common.ErrorNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func patchToSet(p *models.EntryPatch) bson.M {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Writer != nil {
		set["writer"] = *p.Writer
	}
	if p.Date != nil {
		set["date"] = *p.Date
	}
	if p.Text != nil {
		set["text"] = *p.Text
	}
	if p.Image != nil {
		set["image"] = *p.Image
	}
	return set
}
