package model

import "time"

const DefaultRole = "user"

type User struct {
	ID           string    `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username" validate:"required,min=3,max=50"`
	PasswordHash string    `json:"-" bson:"password"`
	Phone        string    `json:"wa" bson:"wa" validate:"required,e164"`
	FieldName    string    `json:"namaLapangan" bson:"field_name" validate:"omitempty,max=100"`
	Role         string    `json:"role" bson:"role" validate:"required,alphanum,max=20"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
}

type RegisterRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	Phone     string `json:"wa"`
	FieldName string `json:"namaLapangan"`
	Role      string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *User     `json:"data"`
}
