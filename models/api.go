package models

// APIResponse is the envelope used by every endpoint
type APIResponse struct {
	Error   bool         `json:"error"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Details []FieldError `json:"details,omitempty"` // validation failures only
}

// FieldError describes one violated field constraint
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Pagination is returned alongside every paged list
type Pagination struct {
	CurrentPage  int `json:"currentPage"`
	TotalPages   int `json:"totalPages"`
	TotalItems   int `json:"totalItems"`
	ItemsPerPage int `json:"itemsPerPage"`
}

// ListQuery carries the common list parameters
type ListQuery struct {
	Page      int
	Limit     int
	Search    string
	SortBy    string
	SortOrder string
}
