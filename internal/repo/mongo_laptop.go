package repo

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Skotchmaster/laptop_store/internal/models"
)

func (m *MongoRepo) laptops() *mongo.Collection {
	return m.DB.Collection(laptopsCollection)
}

func (m *MongoRepo) CreateLaptop(ctx context.Context, l *models.Laptop) error {
	doc := newLaptopDoc(*l)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = now()
	if _, err := m.laptops().InsertOne(ctx, doc); err != nil {
		return err
	}
	l.ID, l.CreatedAt = doc.ID.Hex(), doc.CreatedAt
	return nil
}

func (m *MongoRepo) findLaptops(ctx context.Context, filter bson.M) ([]models.Laptop, error) {
	cur, err := m.laptops().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []laptopDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	items := make([]models.Laptop, 0, len(docs))
	for _, d := range docs {
		items = append(items, d.model())
	}
	return items, nil
}

func (m *MongoRepo) ListLaptops(ctx context.Context) ([]models.Laptop, error) {
	return m.findLaptops(ctx, bson.M{})
}

func (m *MongoRepo) GetLaptop(ctx context.Context, id string) (*models.Laptop, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc laptopDoc
	if err := m.laptops().FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mongoNotFound(err)
	}
	l := doc.model()
	return &l, nil
}

func contentSet(l models.Laptop) bson.M {
	return bson.M{
		"brand":           l.Brand,
		"processor_brand": l.ProcessorBrand,
		"processor_name":  l.ProcessorName,
		"ram_gb":          l.RAMGB,
		"ram_type":        l.RAMType,
		"ssd":             l.SSD,
		"hdd":             l.HDD,
		"os":              l.OS,
		"price":           l.Price,
		"rating":          l.Rating,
		"image_url":       l.ImageURL,
	}
}

func (m *MongoRepo) UpdateLaptop(ctx context.Context, id string, upd models.Laptop) (*models.Laptop, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	res, err := m.laptops().UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": contentSet(upd)})
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	if res.ModifiedCount == 0 {
		return nil, ErrNotModified
	}
	return m.GetLaptop(ctx, id)
}

func (m *MongoRepo) SetLaptopImage(ctx context.Context, id, url string) (*models.Laptop, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc laptopDoc
	err = m.laptops().FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"image_url": url}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, mongoNotFound(err)
	}
	l := doc.model()
	return &l, nil
}

func (m *MongoRepo) DeleteLaptop(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := m.laptops().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertLaptops runs an ordered InsertMany, so on failure every record before
// the first rejected one is stored.
func (m *MongoRepo) InsertLaptops(ctx context.Context, items []models.Laptop) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	created := now()
	docs := make([]any, 0, len(items))
	for i := range items {
		d := newLaptopDoc(items[i])
		d.ID = primitive.NewObjectID()
		d.CreatedAt = created
		items[i].ID, items[i].CreatedAt = d.ID.Hex(), created
		docs = append(docs, d)
	}

	if _, err := m.laptops().InsertMany(ctx, docs, options.InsertMany().SetOrdered(true)); err != nil {
		inserted := 0
		var bwe mongo.BulkWriteException
		if errors.As(err, &bwe) && len(bwe.WriteErrors) > 0 {
			inserted = bwe.WriteErrors[0].Index
		}
		return inserted, &ImportError{Inserted: inserted, Err: err}
	}
	return len(items), nil
}

func (m *MongoRepo) SearchLaptops(ctx context.Context, f models.LaptopFilter) ([]models.Laptop, error) {
	filter := bson.M{}
	if f.Brand != "" {
		filter["brand"] = bson.M{"$regex": regexp.QuoteMeta(f.Brand), "$options": "i"}
	}
	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		filter["price"] = price
	}
	return m.findLaptops(ctx, filter)
}
