package dto

// Envelope is the {code, detail} body every item and auth endpoint answers with.
type Envelope struct {
	Code   int `json:"code" example:"200"`
	Detail any `json:"detail"`
}

type ItemResponse struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Widget"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	IsActive     bool   `json:"is_active" example:"true"`
	Username     string `json:"username" example:"alice"`
	Email        string `json:"email" example:"alice@acme.example.com"`
	FirstName    string `json:"first_name" example:"Alice"`
	LastName     string `json:"last_name" example:"Liddell"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

type UserResponse struct {
	ID        int64  `json:"id" example:"1"`
	Username  string `json:"username" example:"alice"`
	Email     string `json:"email" example:"alice@acme.example.com"`
	FirstName string `json:"first_name" example:"Alice"`
	LastName  string `json:"last_name" example:"Liddell"`
	IsActive  bool   `json:"is_active" example:"true"`
}

type ExportResponse struct {
	ExportID string `json:"export_id" example:"550e8400-e29b-41d4-a716-446655440000"`
}
