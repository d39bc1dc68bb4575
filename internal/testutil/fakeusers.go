// Package testutil provides an in-memory stand-in for the users collection,
// built on the mongo driver's test constructors so repository code decodes
// results exactly as it would against a live server.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/studytrack/studytrack-backend/internal/models"
)

// FakeUserCollection implements the repository's collection interface over a
// map keyed by user name, preserving insertion order. Documents round-trip
// through BSON on every write so id types normalize the way the driver
// normalizes them (JSON floats become doubles, small ints become int32).
type FakeUserCollection struct {
	mu    sync.Mutex
	order []string
	docs  map[string]*models.User

	writes int

	// ForceDuplicateOnInsert makes the next InsertOne behave as if a
	// concurrent request won the creation race: the document is stored
	// (as the winner's write) but the call reports a duplicate key.
	ForceDuplicateOnInsert bool
}

func NewFakeUserCollection() *FakeUserCollection {
	return &FakeUserCollection{docs: map[string]*models.User{}}
}

// Writes reports how many state-changing calls the collection has served.
func (f *FakeUserCollection) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

// Users returns the stored aggregates in insertion order.
func (f *FakeUserCollection) Users() []*models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.User, 0, len(f.order))
	for _, name := range f.order {
		out = append(out, cloneUser(f.docs[name]))
	}
	return out
}

func (f *FakeUserCollection) FindOne(_ context.Context, filter interface{}, _ ...*options.FindOneOptions) *mongo.SingleResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	name, ok := filterName(filter)
	if !ok {
		return mongo.NewSingleResultFromDocument(bson.D{}, fmt.Errorf("unsupported filter %v", filter), nil)
	}
	user, found := f.docs[name]
	if !found {
		return mongo.NewSingleResultFromDocument(bson.D{}, mongo.ErrNoDocuments, nil)
	}
	return mongo.NewSingleResultFromDocument(user, nil, nil)
}

func (f *FakeUserCollection) Find(_ context.Context, _ interface{}, _ ...*options.FindOptions) (*mongo.Cursor, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	docs := make([]interface{}, 0, len(f.order))
	for _, name := range f.order {
		docs = append(docs, f.docs[name])
	}
	return mongo.NewCursorFromDocuments(docs, nil, nil)
}

func (f *FakeUserCollection) InsertOne(_ context.Context, document interface{}, _ ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	user, ok := document.(*models.User)
	if !ok {
		return nil, fmt.Errorf("unexpected document type %T", document)
	}
	if _, exists := f.docs[user.Name]; exists {
		return nil, duplicateKeyError()
	}

	f.put(user)
	f.writes++

	if f.ForceDuplicateOnInsert {
		f.ForceDuplicateOnInsert = false
		return nil, duplicateKeyError()
	}
	return &mongo.InsertOneResult{}, nil
}

func (f *FakeUserCollection) FindOneAndUpdate(_ context.Context, filter, update interface{}, _ ...*options.FindOneAndUpdateOptions) *mongo.SingleResult {
	f.mu.Lock()
	defer f.mu.Unlock()

	name, ok := filterName(filter)
	if !ok {
		return mongo.NewSingleResultFromDocument(bson.D{}, fmt.Errorf("unsupported filter %v", filter), nil)
	}
	u, ok := update.(bson.M)
	if !ok {
		return mongo.NewSingleResultFromDocument(bson.D{}, fmt.Errorf("unsupported update %v", update), nil)
	}

	user, found := f.docs[name]
	if !found {
		// The repository only ever calls this with upsert+After.
		user = models.NewUser(name)
		if soi, ok := u["$setOnInsert"].(bson.M); ok {
			applyFields(user, soi)
		}
	}
	if set, ok := u["$set"].(bson.M); ok {
		applyFields(user, set)
	}

	f.put(user)
	f.writes++
	return mongo.NewSingleResultFromDocument(f.docs[name], nil, nil)
}

func (f *FakeUserCollection) UpdateOne(_ context.Context, filter, update interface{}, _ ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	name, ok := filterName(filter)
	if !ok {
		return nil, fmt.Errorf("unsupported filter %v", filter)
	}
	user, found := f.docs[name]
	if !found {
		return &mongo.UpdateResult{}, nil
	}

	if set, ok := update.(bson.M)["$set"].(bson.M); ok {
		applyFields(user, set)
	}
	f.put(user)
	f.writes++
	return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
}

// put stores a BSON-normalized copy, appending to the order on first sight.
// Callers hold f.mu.
func (f *FakeUserCollection) put(user *models.User) {
	if _, exists := f.docs[user.Name]; !exists {
		f.order = append(f.order, user.Name)
	}
	f.docs[user.Name] = cloneUser(user)
}

func applyFields(user *models.User, fields bson.M) {
	for k, v := range fields {
		switch k {
		case "subjects":
			user.Subjects = v.([]models.Subject)
		case "dailylogs":
			user.DailyLogs = v.([]bson.M)
		}
	}
}

func filterName(filter interface{}) (string, bool) {
	m, ok := filter.(bson.M)
	if !ok {
		return "", false
	}
	name, ok := m["name"].(string)
	return name, ok
}

func cloneUser(u *models.User) *models.User {
	raw, err := bson.Marshal(u)
	if err != nil {
		panic(fmt.Sprintf("marshal user: %v", err))
	}
	var out models.User
	if err := bson.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("unmarshal user: %v", err))
	}
	return &out
}

func duplicateKeyError() error {
	return mongo.WriteException{WriteErrors: mongo.WriteErrors{{
		Code:    11000,
		Message: "E11000 duplicate key error collection: studytrack.users index: idx_name_unique",
	}}}
}
