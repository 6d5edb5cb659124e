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

// ColumnRepository persists board columns. It doubles as the ranking store
// for column ordering: siblings share a boardId and (boardId, rank) is
// unique, which is why renumbering goes through two-phase reassignment.
type ColumnRepository struct {
	collection *mongo.Collection
}

func NewColumnRepository(db *mongo.Database) *ColumnRepository {
	r := &ColumnRepository{
		collection: db.Collection("columns"),
	}

	// Ensure indexes
	ctx := context.Background()
	idxView := r.collection.Indexes()
	_, _ = idxView.CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "boardId", Value: 1}, {Key: "rank", Value: 1}},
		Options: options.Index().SetName("uniq_board_rank").SetUnique(true),
	})
	_, _ = idxView.CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "boardId", Value: 1}, {Key: "name", Value: 1}},
		Options: options.Index().SetName("uniq_board_name").SetUnique(true),
	})

	return r
}

func (r *ColumnRepository) Create(ctx context.Context, column *models.Column) error {
	if column.ID == "" {
		column.ID = primitive.NewObjectID().Hex()
	}
	if column.Status == "" {
		column.Status = models.ColumnStatusCustom
	}
	column.CreatedAt = time.Now()
	column.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, column)
	return err
}

func (r *ColumnRepository) FindByID(ctx context.Context, columnID string) (*models.Column, error) {
	var column models.Column
	if err := r.collection.FindOne(ctx, bson.M{"_id": columnID}).Decode(&column); err != nil {
		return nil, err
	}
	return &column, nil
}

func (r *ColumnRepository) ListByBoard(ctx context.Context, boardID string) ([]models.Column, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "rank", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"boardId": boardID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var columns []models.Column
	if err = cursor.All(ctx, &columns); err != nil {
		return nil, err
	}
	return columns, nil
}

func (r *ColumnRepository) CountByBoard(ctx context.Context, boardID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"boardId": boardID})
}

func (r *ColumnRepository) Update(ctx context.Context, columnID string, updates bson.M) (*models.Column, error) {
	updates["updatedAt"] = time.Now()
	update := bson.M{"$set": updates}
	after := options.After
	opts := options.FindOneAndUpdateOptions{ReturnDocument: &after}

	var updated models.Column
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": columnID}, update, &opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *ColumnRepository) Delete(ctx context.Context, columnID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": columnID})
	return err
}

func (r *ColumnRepository) DeleteByBoard(ctx context.Context, boardID string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"boardId": boardID})
	return err
}

// ranking.Store implementation

func (r *ColumnRepository) SiblingIDs(ctx context.Context, boardID string) ([]string, error) {
	findOptions := options.Find().
		SetSort(bson.D{{Key: "rank", Value: 1}}).
		SetProjection(bson.M{"_id": 1})

	cursor, err := r.collection.Find(ctx, bson.M{"boardId": boardID}, findOptions)
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

func (r *ColumnRepository) SetRank(ctx context.Context, columnID string, rank int) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": columnID}, bson.M{
		"$set": bson.M{"rank": rank, "updatedAt": time.Now()},
	})
	return err
}

// Relocate exists to satisfy the ranking store interface; columns never
// change boards, so it only rewrites the rank.
func (r *ColumnRepository) Relocate(ctx context.Context, columnID, boardID string, rank int) error {
	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": columnID}, bson.M{
		"$set": bson.M{"boardId": boardID, "rank": rank, "updatedAt": time.Now()},
	})
	return err
}
