// Package mongorepo implements the repositories on MongoDB, one collection
// per record type.
package mongorepo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/dom/meucoracao/internal/domain"
	"github.com/dom/meucoracao/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const DefaultDatabase = "meucoracao"

const (
	usersCollection        = "users"
	appointmentsCollection = "appointments"
	allergiesCollection    = "allergies"
	medicationsCollection  = "medications"
	reportsCollection      = "reports"
)

// NewConnection connects to uri, pings the server and returns the database
// named in the URI path, or DefaultDatabase when the path is empty.
func NewConnection(ctx context.Context, uri string) (*mongo.Database, error) {
	name, err := databaseName(uri)
	if err != nil {
		return nil, err
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(name)
	if err := EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return db, nil
}

// EnsureIndexes creates the unique email index that closes the
// check-then-insert race on registration, plus owner lookups.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create users email index: %w", err)
	}

	for _, name := range []string{appointmentsCollection, allergiesCollection, medicationsCollection, reportsCollection} {
		_, err := db.Collection(name).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("owner_created"),
		})
		if err != nil {
			return fmt.Errorf("create %s owner index: %w", name, err)
		}
	}
	return nil
}

func NewRepositories(db *mongo.Database) *repository.Repositories {
	return &repository.Repositories{
		User:         NewUserRepository(db.Collection(usersCollection)),
		Appointments: NewResourceRepository[domain.Appointment](db.Collection(appointmentsCollection)),
		Allergies:    NewResourceRepository[domain.Allergy](db.Collection(allergiesCollection)),
		Medications:  NewResourceRepository[domain.Medication](db.Collection(medicationsCollection)),
		Reports:      NewResourceRepository[domain.Report](db.Collection(reportsCollection)),
	}
}

func Close(ctx context.Context, db *mongo.Database) error {
	return db.Client().Disconnect(ctx)
}

func databaseName(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse mongo uri: %w", err)
	}
	name := strings.Trim(u.Path, "/")
	if name == "" {
		return DefaultDatabase, nil
	}
	return name, nil
}

func translate(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrNotFound
	}
	return err
}
