package domain

import "time"

// Project is a single client job tracked through the fabrication checklist.
// It is storage-agnostic and shared across the repository and HTTP layers.
type Project struct {
	ID         string    `json:"project_id"`
	ClientName string    `json:"client_name"`
	Status     string    `json:"status"`
	Steps      []Step    `json:"steps"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Step is one checklist item. Steps have no identity outside their project;
// they are rebuilt from the template on every read and write.
type Step struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Note  string `json:"note"`
	Date  string `json:"date"`
	Done  bool   `json:"done"`
}
