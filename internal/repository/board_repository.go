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

type BoardRepository struct {
	collection *mongo.Collection
}

func NewBoardRepository(db *mongo.Database) *BoardRepository {
	r := &BoardRepository{
		collection: db.Collection("boards"),
	}

	ctx := context.Background()
	_, _ = r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "teamId", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("idx_team_created"),
	})

	return r
}

func (r *BoardRepository) Create(ctx context.Context, board *models.Board) error {
	if board.ID == "" {
		board.ID = primitive.NewObjectID().Hex()
	}
	board.CreatedAt = time.Now()
	board.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, board)
	return err
}

func (r *BoardRepository) FindByID(ctx context.Context, boardID string) (*models.Board, error) {
	var board models.Board
	if err := r.collection.FindOne(ctx, bson.M{"_id": boardID}).Decode(&board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (r *BoardRepository) ListByTeam(ctx context.Context, teamID string) ([]models.Board, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"teamId": teamID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var boards []models.Board
	if err = cursor.All(ctx, &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

func (r *BoardRepository) ListByTeamIDs(ctx context.Context, teamID string) ([]string, error) {
	boards, err := r.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(boards))
	for i, b := range boards {
		ids[i] = b.ID
	}
	return ids, nil
}

func (r *BoardRepository) UpdateName(ctx context.Context, boardID, name string) (*models.Board, error) {
	update := bson.M{"$set": bson.M{"name": name, "updatedAt": time.Now()}}
	after := options.After
	opts := options.FindOneAndUpdateOptions{ReturnDocument: &after}

	var updated models.Board
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": boardID}, update, &opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *BoardRepository) Delete(ctx context.Context, boardID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": boardID})
	return err
}
