package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func NewMongoDB(uri, dbName string) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Set client options
	clientOptions := options.Client().ApplyURI(uri)

	// Connect to MongoDB
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping the database
	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, err
	}

	log.Println("Successfully connected to MongoDB!")

	return &MongoDB{
		Client:   client,
		Database: client.Database(dbName),
	}, nil
}

func (m *MongoDB) Disconnect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return m.Client.Disconnect(ctx)
}

// WithTransaction runs fn inside a session transaction. Repository calls made
// with the context fn receives join the transaction; any error aborts it and
// no partial writes remain visible. Requires a replica set deployment.
func (m *MongoDB) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := m.Client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	return err
}

// Collection helpers
func (m *MongoDB) Users() *mongo.Collection {
	return m.Database.Collection("users")
}

func (m *MongoDB) Teams() *mongo.Collection {
	return m.Database.Collection("teams")
}

func (m *MongoDB) TeamMembers() *mongo.Collection {
	return m.Database.Collection("team_members")
}

func (m *MongoDB) Boards() *mongo.Collection {
	return m.Database.Collection("boards")
}

func (m *MongoDB) Columns() *mongo.Collection {
	return m.Database.Collection("columns")
}

func (m *MongoDB) Cards() *mongo.Collection {
	return m.Database.Collection("cards")
}

func (m *MongoDB) Projects() *mongo.Collection {
	return m.Database.Collection("projects")
}

func (m *MongoDB) WeeklyReports() *mongo.Collection {
	return m.Database.Collection("weekly_reports")
}
