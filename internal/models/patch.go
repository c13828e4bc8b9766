package models

// TaskPatch lists the mutable task fields. Nil fields are left untouched.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	IsDone      *bool   `json:"isDone,omitempty"`
}

// Ptr returns a pointer to v, handy for building patches.
func Ptr[T any](v T) *T { return &v }

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.IsDone == nil
}

// Apply returns t with the patch merged in.
func (p TaskPatch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.IsDone != nil {
		t.IsDone = *p.IsDone
	}
	return t
}
