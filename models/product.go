package models

import "go.mongodb.org/mongo-driver/v2/bson"

// Document is a stored record. Collections accept arbitrary fields, so only
// the fields the API validates are named below.
type Document = bson.M

const (
	ProductsCollection = "products"
	OrdersCollection   = "orders"
	ReviewsCollection  = "reviews"
	UsersCollection    = "users"
)

const (
	FieldID       = "_id"
	FieldName     = "name"
	FieldSlug     = "slug"
	FieldCategory = "category"
	FieldPrice    = "price"
)
