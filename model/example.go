package model

import (
	"time"

	"github.com/google/uuid"
)

// Example is the stored form of an annotated training example.
type Example struct {
	ID        int64     `json:"id"`
	RID       uuid.UUID `json:"rid"`
	Text      string    `json:"text"`
	Data      Data      `json:"data,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExampleFromMessage wraps a message for storage.
func ExampleFromMessage(message *Message) *Example {
	return &Example{
		Text: message.Text,
		Data: message.Data,
	}
}

// ToMessage converts the stored example back into an in-memory message with
// its own containers.
func (e *Example) ToMessage() *Message {
	data := make(Data, len(e.Data))
	for key, value := range e.Data {
		data[key] = value
	}
	return NewMessage(e.Text, data)
}
