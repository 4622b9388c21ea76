// Package ids holds the single identifier format shared by every entity.
package ids

import "go.mongodb.org/mongo-driver/bson/primitive"

// New returns a fresh 24-hex identifier
func New() string {
	return primitive.NewObjectID().Hex()
}

// Valid reports whether id is a well-formed identifier
func Valid(id string) bool {
	return primitive.IsValidObjectID(id)
}
