package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User represents a registered account. Usernames are stored lowercase.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"password" json:"-"` // Never expose this to the client
}
