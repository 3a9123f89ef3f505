package dto

// Bodies for collections with free-form documents are bound straight into
// models.Document; only the shapes below are typed.

type PaymentIntentDTO struct {
	Price *float64 `json:"price" binding:"required"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// MarkPaidDTO is the body of PATCH /orders/:id.
type MarkPaidDTO struct {
	TransactionID string `json:"transactionId" binding:"required"`
}

type EmailURI struct {
	Email string `uri:"email" binding:"required,email"`
}

type EmailQuery struct {
	Email string `form:"email" binding:"required,email"`
}

type CategoryQuery struct {
	Category string `form:"category" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}
