package dto

import (
	"github.com/kingrain94/tenant-items-api/internal/domain"
	"github.com/kingrain94/tenant-items-api/internal/service"
)

func FromItem(item *domain.Item) ItemResponse {
	return ItemResponse{ID: item.ID, Name: item.Name}
}

func FromItems(items []domain.Item) []ItemResponse {
	resp := make([]ItemResponse, len(items))
	for i := range items {
		resp[i] = FromItem(&items[i])
	}
	return resp
}

// CompactItem is the write-response form of an item: fields holding their
// zero value are left out.
func CompactItem(item *domain.Item) map[string]any {
	out := make(map[string]any, 2)
	if item.ID != 0 {
		out["id"] = item.ID
	}
	if item.Name != "" {
		out["name"] = item.Name
	}
	return out
}

func FromLogin(result *service.LoginResult) LoginResponse {
	return LoginResponse{
		AccessToken:  result.Tokens.AccessToken,
		RefreshToken: result.Tokens.RefreshToken,
		IsActive:     result.User.IsActive,
		Username:     result.User.Username,
		Email:        result.User.Email,
		FirstName:    result.User.FirstName,
		LastName:     result.User.LastName,
	}
}

func FromUsers(users []domain.User) []UserResponse {
	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = UserResponse{
			ID:        u.ID,
			Username:  u.Username,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			IsActive:  u.IsActive,
		}
	}
	return resp
}
