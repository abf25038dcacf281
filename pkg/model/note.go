package model

import "time"

const MaxNoteContentLength = 5000

// Note is the free-text information a field owner publishes. There is at most
// one per owner.
type Note struct {
	ID        string    `json:"id" bson:"_id"`
	OwnerID   string    `json:"idUser" bson:"owner_id" validate:"required,max=100"`
	Content   string    `json:"content" bson:"content" validate:"required,max=5000"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

type SetNoteRequest struct {
	Content string `json:"content"`
	OwnerID string `json:"idLapanganChange"`
}
