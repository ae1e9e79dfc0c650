package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
)

var ErrInvalidItemID = errors.New("item_id must be an integer")

// ItemID accepts both 7 and "7", as form-style clients send ids as strings.
type ItemID struct {
	Value int64
	Set   bool
}

func (id *ItemID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ItemID{}
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrInvalidItemID
		}
		data = []byte(s)
	}

	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return ErrInvalidItemID
	}
	*id = ItemID{Value: v, Set: true}
	return nil
}

// ParseItemID parses the item_id query parameter.
func ParseItemID(raw string) (ItemID, error) {
	if raw == "" {
		return ItemID{}, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return ItemID{}, ErrInvalidItemID
	}
	return ItemID{Value: v, Set: true}, nil
}

type CreateItemRequest struct {
	Name *string `json:"name" example:"Widget"`
}

type UpdateItemRequest struct {
	ItemID ItemID  `json:"item_id" swaggertype:"integer" example:"1"`
	Name   *string `json:"name" example:"Gizmo"`
}

type LoginRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"s3cret"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" example:"eyJhbGciOi..."`
}
