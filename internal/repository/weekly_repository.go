package repository

import (
	"context"
	"time"

	"teamboard-be/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type WeeklyRepository struct {
	collection *mongo.Collection
}

func NewWeeklyRepository(db *mongo.Database) *WeeklyRepository {
	r := &WeeklyRepository{
		collection: db.Collection("weekly_reports"),
	}

	ctx := context.Background()
	_, _ = r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "teamId", Value: 1},
			{Key: "userId", Value: 1},
			{Key: "weekStart", Value: 1},
		},
		Options: options.Index().SetName("uniq_team_user_week").SetUnique(true),
	})

	return r
}

// Upsert creates or replaces the report for (teamId, userId, weekStart).
func (r *WeeklyRepository) Upsert(ctx context.Context, report *models.WeeklyReport) (*models.WeeklyReport, error) {
	now := time.Now()
	filter := bson.M{
		"teamId":    report.TeamID,
		"userId":    report.UserID,
		"weekStart": report.WeekStart,
	}
	update := bson.M{
		"$set": bson.M{
			"thisWeek":  report.ThisWeek,
			"nextWeek":  report.NextWeek,
			"issue":     report.Issue,
			"solution":  report.Solution,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"teamId":    report.TeamID,
			"userId":    report.UserID,
			"weekStart": report.WeekStart,
			"createdAt": now,
		},
	}

	after := options.After
	opts := options.FindOneAndUpdateOptions{ReturnDocument: &after}
	opts.SetUpsert(true)

	var saved models.WeeklyReport
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, &opts).Decode(&saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// Find returns mongo.ErrNoDocuments when no report exists for the week.
func (r *WeeklyRepository) Find(ctx context.Context, teamID, userID string, weekStart time.Time) (*models.WeeklyReport, error) {
	filter := bson.M{"teamId": teamID, "userId": userID, "weekStart": weekStart}

	var report models.WeeklyReport
	if err := r.collection.FindOne(ctx, filter).Decode(&report); err != nil {
		return nil, err
	}
	return &report, nil
}

// ListWeekStarts returns the week-start dates with a report in
// [from, toExclusive), newest first.
func (r *WeeklyRepository) ListWeekStarts(ctx context.Context, teamID, userID string, from, toExclusive time.Time) ([]time.Time, error) {
	filter := bson.M{
		"teamId":    teamID,
		"userId":    userID,
		"weekStart": bson.M{"$gte": from, "$lt": toExclusive},
	}
	findOptions := options.Find().
		SetSort(bson.D{{Key: "weekStart", Value: -1}}).
		SetProjection(bson.M{"weekStart": 1})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		WeekStart time.Time `bson:"weekStart"`
	}
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	weeks := make([]time.Time, len(docs))
	for i, d := range docs {
		weeks[i] = d.WeekStart
	}
	return weeks, nil
}
