package models

// Users are keyed by email rather than by _id.
const FieldEmail = "email"
