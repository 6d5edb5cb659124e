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

type ProjectRepository struct {
	collection *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	r := &ProjectRepository{
		collection: db.Collection("projects"),
	}

	ctx := context.Background()
	_, _ = r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "teamId", Value: 1}, {Key: "code", Value: 1}},
		Options: options.Index().SetName("uniq_team_code").SetUnique(true),
	})

	return r
}

func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	if project.ID == "" {
		project.ID = primitive.NewObjectID().Hex()
	}
	project.CreatedAt = time.Now()
	project.UpdatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, project)
	return err
}

func (r *ProjectRepository) FindByID(ctx context.Context, projectID string) (*models.Project, error) {
	var project models.Project
	if err := r.collection.FindOne(ctx, bson.M{"_id": projectID}).Decode(&project); err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepository) ListByTeam(ctx context.Context, teamID string) ([]models.Project, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"teamId": teamID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err = cursor.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, projectID string, updates bson.M) (*models.Project, error) {
	updates["updatedAt"] = time.Now()
	update := bson.M{"$set": updates}
	after := options.After
	opts := options.FindOneAndUpdateOptions{ReturnDocument: &after}

	var updated models.Project
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": projectID}, update, &opts).Decode(&updated)
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, projectID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": projectID})
	return err
}
