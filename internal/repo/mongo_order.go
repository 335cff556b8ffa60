package repo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Skotchmaster/laptop_store/internal/models"
)

func (m *MongoRepo) CreateOrder(ctx context.Context, o *models.Order) error {
	doc := orderDoc{
		ID:        primitive.NewObjectID(),
		LaptopID:  o.LaptopID,
		Quantity:  o.Quantity,
		Username:  o.Username,
		CreatedAt: now(),
	}
	if _, err := m.DB.Collection(ordersCollection).InsertOne(ctx, doc); err != nil {
		return err
	}
	o.ID, o.CreatedAt = doc.ID.Hex(), doc.CreatedAt
	return nil
}

func (m *MongoRepo) ListOrders(ctx context.Context, username string) ([]models.Order, error) {
	cur, err := m.DB.Collection(ordersCollection).Find(ctx,
		bson.M{"username": username},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []orderDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	orders := make([]models.Order, 0, len(docs))
	for _, d := range docs {
		orders = append(orders, d.model())
	}
	return orders, nil
}

func (m *MongoRepo) DeleteOrder(ctx context.Context, id, username string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := m.DB.Collection(ordersCollection).DeleteOne(ctx, bson.M{"_id": oid, "username": username})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
