package category

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Category is a node of the category forest as returned by the backend.
type Category struct {
	ID          string     `json:"_id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Type        string     `json:"type"`
	Description string     `json:"description,omitempty"`
	CreatedBy   *Author    `json:"createdBy,omitempty"`
	Children    []Category `json:"children,omitempty"` // nil and empty are equivalent
	CreatedAt   string     `json:"createdAt,omitempty"`
	UpdatedAt   string     `json:"updatedAt,omitempty"`
}

// Author is the informational reference to the user who created a category.
//
// The backend sends either a populated object ({"name", "email"}) or a bare
// reference id string when the author was not populated. Both decode into
// Author; the string form only sets ID.
type Author struct {
	ID    string `json:"_id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// UnmarshalJSON accepts an author object, a reference id string, or null.
func (a *Author) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		return json.Unmarshal(data, &a.ID)
	}
	type plain Author
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = Author(p)
	return nil
}

// CreatorName returns the creator's display name, or "" when unknown.
func (c Category) CreatorName() string {
	if c.CreatedBy == nil {
		return ""
	}
	return c.CreatedBy.Name
}

// CreatorEmail returns the creator's email, or "" when unknown.
func (c Category) CreatorEmail() string {
	if c.CreatedBy == nil {
		return ""
	}
	return c.CreatedBy.Email
}

// Created parses CreatedAt. ok is false when the field is absent or malformed.
func (c Category) Created() (t time.Time, ok bool) { return parseTimestamp(c.CreatedAt) }

// Updated parses UpdatedAt. ok is false when the field is absent or malformed.
func (c Category) Updated() (t time.Time, ok bool) { return parseTimestamp(c.UpdatedAt) }

func parseTimestamp(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Initials returns up to two upper-cased leading letters of the name's words,
// or "NA" when the name yields none.
func (c Category) Initials() string {
	var b strings.Builder
	for _, w := range strings.Split(c.Name, " ") {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 || r == utf8.RuneError {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
		if utf8.RuneCountInString(b.String()) == 2 {
			break
		}
	}
	if b.Len() == 0 {
		return "NA"
	}
	return b.String()
}

// FlatCategory is a Category annotated with its position in the forest.
// It is a projection built fresh by [Flatten]; it is never persisted.
type FlatCategory struct {
	Category

	// Level is the depth in the forest (roots are 0).
	Level int `json:"level"`
	// ParentName is the immediate parent's Name, or nil for roots.
	ParentName *string `json:"parentName,omitempty"`
}

// IsRoot reports whether the row is a top-level category.
func (f FlatCategory) IsRoot() bool { return f.ParentName == nil }

// Pagination mirrors the backend's pagination block.
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
	Limit int `json:"limit"`
}

// HasNext reports whether a page follows the current one.
func (p Pagination) HasNext() bool { return p.Page < p.Pages }

// HasPrev reports whether a page precedes the current one.
func (p Pagination) HasPrev() bool { return p.Page > 1 }
