package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Task is a single to-do item.
//
// CategoryName is a denormalized copy of the owning category's display name.
// DueDate is free text as entered by the user. IsUrgent is always the literal
// "on" or "off". CreatedBy holds the username of whoever last wrote the
// document, not the original author.
type Task struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CategoryName    string             `bson:"category_name" json:"categoryName"`
	TaskName        string             `bson:"task_name" json:"taskName"`
	TaskDescription string             `bson:"task_description" json:"taskDescription"`
	DueDate         string             `bson:"due_date" json:"dueDate"`
	IsUrgent        string             `bson:"is_urgent" json:"isUrgent"`
	CreatedBy       string             `bson:"created_by" json:"createdBy"`
}
