package domain

import "time"

// Setting is one key/value entry of site configuration.
type Setting struct {
	ID          string    `json:"id" bson:"_id"`
	Key         string    `json:"key" bson:"key"`
	Value       string    `json:"value" bson:"value"`
	Description *string   `json:"description" bson:"description,omitempty"`
	IsPublic    bool      `json:"isPublic" bson:"is_public"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
	UpdatedBy   *string   `json:"updatedBy" bson:"updated_by,omitempty"`
}

func SettingNotFound(key string) *Error {
	return NewError(ErrNotFound, "setting '"+key+"' not found")
}
