package models

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
)

// User is the per-user aggregate: one document in the "users" collection,
// keyed by the unique Name field. Subjects and daily logs are always read
// and written as whole arrays.
type User struct {
	Name      string    `bson:"name" json:"name"`
	Subjects  []Subject `bson:"subjects" json:"subjects"`
	DailyLogs []bson.M  `bson:"dailylogs" json:"dailylogs"`
}

// Subject is one element of a user's subjects array. The id is supplied by
// the client and may be numeric or a string; both representations are
// preserved as stored. Entries are opaque to the backend.
type Subject struct {
	ID          interface{} `bson:"id" json:"id"`
	Name        string      `bson:"name" json:"name"`
	Description string      `bson:"description,omitempty" json:"description,omitempty"`
	Entries     []bson.M    `bson:"entries" json:"entries"`
	CreatedAt   string      `bson:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// NewUser returns an empty aggregate for name, ready to insert.
func NewUser(name string) *User {
	return &User{
		Name:      name,
		Subjects:  []Subject{},
		DailyLogs: []bson.M{},
	}
}

// SubjectIDMatches reports whether a stored subject id matches an id taken
// from a URL path. Path segments are always strings, but ids are persisted
// either as strings or as numbers depending on how the client built the
// subject, so a match is either native string equality or numeric equality
// after parsing the supplied value. BSON round-trips JSON numbers through
// int32, int64 or float64 depending on the write path; all widths compare
// by value.
func SubjectIDMatches(stored interface{}, supplied string) bool {
	switch v := stored.(type) {
	case string:
		return v == supplied
	case int32:
		n, err := strconv.ParseFloat(supplied, 64)
		return err == nil && float64(v) == n
	case int64:
		n, err := strconv.ParseFloat(supplied, 64)
		return err == nil && float64(v) == n
	case int:
		n, err := strconv.ParseFloat(supplied, 64)
		return err == nil && float64(v) == n
	case float64:
		n, err := strconv.ParseFloat(supplied, 64)
		return err == nil && v == n
	case float32:
		n, err := strconv.ParseFloat(supplied, 64)
		return err == nil && float64(v) == n
	}
	return false
}
