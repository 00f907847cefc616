package user

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a single document in the users collection. Avatar holds a
// fully-qualified URL to an uploaded image, or "" when none was supplied;
// the value is always derived server-side, never taken from the client.
type User struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	FirstName string             `json:"firstName" bson:"firstName"`
	LastName  string             `json:"lastName" bson:"lastName"`
	Email     string             `json:"email" bson:"email"`
	Password  string             `json:"password" bson:"password"`
	Avatar    string             `json:"avatar" bson:"avatar"`
}
