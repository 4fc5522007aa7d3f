// Package models holds the payloads the CLI exchanges with the diary server.
package models

import (
	"fmt"
	"time"
)

// Entry is a diary entry as returned by the server.
type Entry struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Writer string `json:"writer"`
	Date   string `json:"date"`
	Text   string `json:"text"`
	Image  string `json:"image"`
}

func (e Entry) String() string {
	return fmt.Sprintf("%s  %s  %q by %s", e.ID, e.Date, e.Title, e.Writer)
}

// EntryInput is the body of create and update requests. Nil fields are
// omitted, which the server treats as "leave unchanged" on update.
type EntryInput struct {
	Title  *string `json:"title,omitempty"`
	Writer *string `json:"writer,omitempty"`
	Date   *string `json:"date,omitempty"`
	Text   *string `json:"text,omitempty"`
	Image  *string `json:"image,omitempty"`
}

// IsEmpty reports whether no field is set.
func (in EntryInput) IsEmpty() bool {
	return in.Title == nil && in.Writer == nil && in.Date == nil && in.Text == nil && in.Image == nil
}

// User is the profile returned by /users/me.
type User struct {
	ID        string    `json:"id"`
	UserName  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Token is the response of the token endpoint.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ImageUpload is a presigned upload target for an entry image.
type ImageUpload struct {
	Key       string `json:"key"`
	UploadURL string `json:"upload_url"`
}
