package file

import "time"

type File struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Key         string    `json:"-"`
	ContentType string    `json:"contentType"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
