package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Category groups tasks by a display name. Tasks reference the name, not the
// ID, so deleting a category leaves referencing tasks untouched.
type Category struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CategoryName string             `bson:"category_name" json:"categoryName"`
}
