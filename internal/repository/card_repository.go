package repository

import (
	"context"
	"time"

	"teamboard-be/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CardRepository persists cards and is the ranking store for card ordering:
// siblings share a columnId and (columnId, rank) is unique.
type CardRepository struct {
	collection *mongo.Collection
}

func NewCardRepository(db *mongo.Database) *CardRepository {
	r := &CardRepository{
		collection: db.Collection("cards"),
	}

	// Ensure indexes
	ctx := context.Background()
	idxView := r.collection.Indexes()
	_, _ = idxView.CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "columnId", Value: 1}, {Key: "rank", Value: 1}},
		Options: options.Index().SetName("uniq_column_rank").SetUnique(true),
	})
	_, _ = idxView.CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "boardId", Value: 1}},
		Options: options.Index().SetName("idx_board"),
	})
	_, _ = idxView.CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "dueDate", Value: 1}},
		Options: options.Index().SetName("idx_due_date"),
	})

	return r
}

func (r *CardRepository) Create(ctx context.Context, card *models.Card) error {
	if card.ID == "" {
		card.ID = primitive.NewObjectID().Hex()
	}
	card.CreatedAt = time.Now()
	card.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, card)
	return err
}

func (r *CardRepository) FindByID(ctx context.Context, cardID string) (*models.Card, error) {
	var card models.Card
	if err := r.collection.FindOne(ctx, bson.M{"_id": cardID}).Decode(&card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *CardRepository) ListByBoard(ctx context.Context, boardID string) ([]models.Card, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "columnId", Value: 1}, {Key: "rank", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"boardId": boardID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cards []models.Card
	if err = cursor.All(ctx, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *CardRepository) ListByBoardIDs(ctx context.Context, boardIDs []string) ([]models.Card, error) {
	if len(boardIDs) == 0 {
		return nil, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"boardId": bson.M{"$in": boardIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cards []models.Card
	if err = cursor.All(ctx, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *CardRepository) CountByColumn(ctx context.Context, columnID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"columnId": columnID})
}

func (r *CardRepository) Update(ctx context.Context, cardID string, updates bson.M) (*models.Card, error) {
	set := bson.M{"updatedAt": time.Now()}
	unset := bson.M{}
	for k, v := range updates {
		if v == nil {
			unset[k] = ""
			continue
		}
		set[k] = v
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	after := options.After
	opts := options.FindOneAndUpdateOptions{ReturnDocument: &after}

	var updated models.Card
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": cardID}, update, &opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *CardRepository) Delete(ctx context.Context, cardID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": cardID})
	return err
}

func (r *CardRepository) DeleteByColumn(ctx context.Context, columnID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"columnId": columnID})
	return err
}

func (r *CardRepository) DeleteByBoard(ctx context.Context, boardID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"boardId": boardID})
	return err
}

// ListDueBefore returns cards whose due date has passed, for the reminder
// worker.
func (r *CardRepository) ListDueBefore(ctx context.Context, t time.Time) ([]models.Card, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"dueDate": bson.M{"$lte": t}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var cards []models.Card
	if err = cursor.All(ctx, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

// ranking.Store implementation

func (r *CardRepository) SiblingIDs(ctx context.Context, columnID string) ([]string, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "rank", Value: 1}}).
		SetProjection(bson.M{"_id": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"columnId": columnID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID string `bson:"_id"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}

func (r *CardRepository) SetRank(ctx context.Context, cardID string, rank int) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": cardID}, bson.M{
		"$set": bson.M{"rank": rank, "updatedAt": time.Now()},
	})
	return err
}

func (r *CardRepository) Relocate(ctx context.Context, cardID, columnID string, rank int) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": cardID}, bson.M{
		"$set": bson.M{"columnId": columnID, "rank": rank, "updatedAt": time.Now()},
	})
	return err
}
