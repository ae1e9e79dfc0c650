package dto

// Error is the body of every failed request. Detail is a message, or a map of
// field name to messages for validation failures.
type Error struct {
	Code   int `json:"code" example:"400"`
	Detail any `json:"detail" swaggertype:"string" example:"error message"`
}
