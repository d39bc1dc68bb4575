package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studytrack/studytrack-backend/internal/database"
	"github.com/studytrack/studytrack-backend/internal/models"
)

// ErrUserNotFound is returned by DeleteSubject when no document exists for
// the requested name. Deletion never auto-creates, unlike the replace paths.
var ErrUserNotFound = errors.New("user not found")

// UserCollection is the slice of mongo.Collection the repository uses.
// *mongo.Collection satisfies it; tests substitute an in-memory fake.
type UserCollection interface {
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) *mongo.SingleResult
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
}

// UserRepository owns every read and write against the users collection.
// Collections are replaced wholesale, never patched element by element.
type UserRepository struct {
	col UserCollection
}

// New returns a repository bound to the connected database.
func New() *UserRepository {
	return NewWithCollection(database.DB.Collection(database.UsersCollection))
}

// NewWithCollection returns a repository over an explicit collection.
func NewWithCollection(col UserCollection) *UserRepository {
	return &UserRepository{col: col}
}

// ListUserNames returns the names of all stored users, in stored order.
func (r *UserRepository) ListUserNames(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"name": 1})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	names := []string{}
	for cur.Next(ctx) {
		var doc struct {
			Name string `bson:"name"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user name: %w", err)
		}
		names = append(names, doc.Name)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return names, nil
}

// GetOrCreateUser returns the aggregate for name, creating an empty one on
// first access. Two requests can race on that first access; the unique index
// on name rejects the loser, whose document then already exists, so a
// duplicate-key failure is answered with one retry of the lookup.
func (r *UserRepository) GetOrCreateUser(ctx context.Context, name string) (*models.User, error) {
	user, err := r.findByName(ctx, name)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("find user %q: %w", name, err)
	}

	fresh := models.NewUser(name)
	if _, err := r.col.InsertOne(ctx, fresh); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			user, ferr := r.findByName(ctx, name)
			if ferr != nil {
				return nil, fmt.Errorf("refetch user %q after concurrent create: %w", name, ferr)
			}
			return user, nil
		}
		return nil, fmt.Errorf("create user %q: %w", name, err)
	}
	return fresh, nil
}

// EnsureUser inserts the given aggregate unless a user with its name already
// exists. Returns true when a document was created. Losing an insert race to
// a concurrent creator counts as "already exists", not as a failure.
func (r *UserRepository) EnsureUser(ctx context.Context, user *models.User) (bool, error) {
	_, err := r.findByName(ctx, user.Name)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return false, fmt.Errorf("find user %q: %w", user.Name, err)
	}

	if _, err := r.col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, fmt.Errorf("create user %q: %w", user.Name, err)
	}
	return true, nil
}

// GetSubjects returns the subjects for name, or an empty slice when the user
// does not exist. This path performs no creation.
func (r *UserRepository) GetSubjects(ctx context.Context, name string) ([]models.Subject, error) {
	user, err := r.findByName(ctx, name)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []models.Subject{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", name, err)
	}
	if user.Subjects == nil {
		return []models.Subject{}, nil
	}
	return user.Subjects, nil
}

// ReplaceSubjects overwrites the entire subjects array for name with the
// given slice, creating the user when absent. Subjects missing from the new
// slice are discarded; there is no merge.
func (r *UserRepository) ReplaceSubjects(ctx context.Context, name string, subjects []models.Subject) ([]models.Subject, error) {
	if subjects == nil {
		subjects = []models.Subject{}
	}

	update := bson.M{
		"$set":         bson.M{"subjects": subjects},
		"$setOnInsert": bson.M{"dailylogs": []bson.M{}},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var user models.User
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"name": name}, update, opts).Decode(&user); err != nil {
		return nil, fmt.Errorf("replace subjects for %q: %w", name, err)
	}
	if user.Subjects == nil {
		return []models.Subject{}, nil
	}
	return user.Subjects, nil
}

// DeleteSubject removes every subject whose id matches the supplied path
// value and persists the filtered array. Returns ErrUserNotFound when no
// document exists for name; nothing is written in that case.
func (r *UserRepository) DeleteSubject(ctx context.Context, name, id string) ([]models.Subject, error) {
	user, err := r.findByName(ctx, name)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", name, err)
	}

	// Ids are not guaranteed unique within a user, so every match goes,
	// not just the first.
	remaining := make([]models.Subject, 0, len(user.Subjects))
	for _, s := range user.Subjects {
		if !models.SubjectIDMatches(s.ID, id) {
			remaining = append(remaining, s)
		}
	}

	update := bson.M{"$set": bson.M{"subjects": remaining}}
	if _, err := r.col.UpdateOne(ctx, bson.M{"name": name}, update); err != nil {
		return nil, fmt.Errorf("delete subject %q for %q: %w", id, name, err)
	}
	return remaining, nil
}

// GetDailyLogs returns the daily logs for name, or an empty slice when the
// user does not exist. This path performs no creation.
func (r *UserRepository) GetDailyLogs(ctx context.Context, name string) ([]bson.M, error) {
	user, err := r.findByName(ctx, name)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []bson.M{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", name, err)
	}
	if user.DailyLogs == nil {
		return []bson.M{}, nil
	}
	return user.DailyLogs, nil
}

// ReplaceDailyLogs overwrites the entire dailylogs array for name with the
// given slice, creating the user when absent. Same full-overwrite contract
// as ReplaceSubjects.
func (r *UserRepository) ReplaceDailyLogs(ctx context.Context, name string, logs []bson.M) ([]bson.M, error) {
	if logs == nil {
		logs = []bson.M{}
	}

	update := bson.M{
		"$set":         bson.M{"dailylogs": logs},
		"$setOnInsert": bson.M{"subjects": []models.Subject{}},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var user models.User
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"name": name}, update, opts).Decode(&user); err != nil {
		return nil, fmt.Errorf("replace daily logs for %q: %w", name, err)
	}
	if user.DailyLogs == nil {
		return []bson.M{}, nil
	}
	return user.DailyLogs, nil
}

func (r *UserRepository) findByName(ctx context.Context, name string) (*models.User, error) {
	var user models.User
	if err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}
