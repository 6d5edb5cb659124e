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

type TeamRepository struct {
	teams   *mongo.Collection
	members *mongo.Collection
}

func NewTeamRepository(db *mongo.Database) *TeamRepository {
	r := &TeamRepository{
		teams:   db.Collection("teams"),
		members: db.Collection("team_members"),
	}

	// Ensure indexes
	ctx := context.Background()
	_, _ = r.teams.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "joinCode", Value: 1}},
		Options: options.Index().SetName("uniq_join_code").SetUnique(true),
	})
	_, _ = r.members.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "teamId", Value: 1}, {Key: "userId", Value: 1}},
		Options: options.Index().SetName("uniq_team_user").SetUnique(true),
	})

	return r
}

func (r *TeamRepository) Create(ctx context.Context, team *models.Team) error {
	if team.ID == "" {
		team.ID = primitive.NewObjectID().Hex()
	}
	team.CreatedAt = time.Now()
	team.UpdatedAt = time.Now()

	_, err := r.teams.InsertOne(ctx, team)
	return err
}

func (r *TeamRepository) FindByID(ctx context.Context, teamID string) (*models.Team, error) {
	var team models.Team
	if err := r.teams.FindOne(ctx, bson.M{"_id": teamID}).Decode(&team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepository) FindByJoinCode(ctx context.Context, joinCode string) (*models.Team, error) {
	var team models.Team
	if err := r.teams.FindOne(ctx, bson.M{"joinCode": joinCode}).Decode(&team); err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]models.Team, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.teams.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var teams []models.Team
	if err = cursor.All(ctx, &teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	if _, err := r.members.DeleteMany(ctx, bson.M{"teamId": teamID}); err != nil {
		return err
	}
	_, err := r.teams.DeleteOne(ctx, bson.M{"_id": teamID})
	return err
}

func (r *TeamRepository) AddMember(ctx context.Context, member *models.TeamMember) error {
	if member.ID == "" {
		member.ID = primitive.NewObjectID().Hex()
	}
	if member.Role == "" {
		member.Role = models.TeamRoleMember
	}
	member.JoinedAt = time.Now()

	_, err := r.members.InsertOne(ctx, member)
	return err
}

func (r *TeamRepository) RemoveMember(ctx context.Context, teamID, userID string) error {
	_, err := r.members.DeleteOne(ctx, bson.M{"teamId": teamID, "userId": userID})
	return err
}

// FindMember returns mongo.ErrNoDocuments when the user is not in the team.
func (r *TeamRepository) FindMember(ctx context.Context, teamID, userID string) (*models.TeamMember, error) {
	var member models.TeamMember
	err := r.members.FindOne(ctx, bson.M{"teamId": teamID, "userId": userID}).Decode(&member)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *TeamRepository) ListMembers(ctx context.Context, teamID string) ([]models.TeamMember, error) {
	cursor, err := r.members.Find(ctx, bson.M{"teamId": teamID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []models.TeamMember
	if err = cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *TeamRepository) ListMembershipsByUser(ctx context.Context, userID string) ([]models.TeamMember, error) {
	cursor, err := r.members.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []models.TeamMember
	if err = cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	return members, nil
}
