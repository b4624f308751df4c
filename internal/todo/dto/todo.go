package dto

// CreateTodoInput carries the only field a creation request may set.
type CreateTodoInput struct {
	Text string `json:"text"`
}

// UpdateTodoInput is the restricted patch surface. Pointer fields make an
// absent field distinguishable from an explicit zero value, which the
// completedAt-clearing rule depends on. Any other field submitted in the
// request body simply does not exist here and is never applied.
type UpdateTodoInput struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
}
