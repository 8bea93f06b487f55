package core

import (
	"errors"
	"strings"
	"time"
)

// DefaultCategory is used when the user leaves the category untouched.
// The category set is server-provided and open ended: any string the
// backend returns is accepted as-is.
const DefaultCategory = "General"

const (
	maxTitleLength       = 100
	maxDescriptionLength = 500
)

var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidDate        = errors.New("invalid date")
	ErrEmptyCategory      = errors.New("empty category")
	ErrTitleTooLong       = errors.New("title too long (max 100 characters)")
	ErrDescriptionTooLong = errors.New("description too long (max 500 characters)")
)

// Expense is a single expense record as stored by the backend. The ID is
// opaque; title and description are optional free text.
type Expense struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Amount      Amount `json:"amount"`
	Category    string `json:"category"`
	Date        Date   `json:"date"`
	Description string `json:"description,omitempty"`
}

func (e Expense) Validate() error {
	if err := e.Date.Validate(); err != nil {
		return err
	}
	if e.Amount.IsNegative() || e.Amount.IsZero() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if len(e.Title) > maxTitleLength {
		return ErrTitleTooLong
	}
	if len(e.Description) > maxDescriptionLength {
		return ErrDescriptionTooLong
	}
	return nil
}

// Date is a calendar date with no time component. It marshals as
// "2006-01-02" on the wire.
type Date struct {
	time.Time
}

const dateLayout = "2006-01-02"

func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the calendar date containing now.
func Today(now time.Time) Date {
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

// UnmarshalJSON accepts both bare dates and full timestamps; the backend is
// inconsistent about which it sends, so the time component is dropped.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	if idx := strings.IndexByte(s, 'T'); idx > 0 {
		s = s[:idx]
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return ErrInvalidDate
	}
	d.Time = t
	return nil
}

// User is the authenticated account profile returned by the backend.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// FriendStatus tracks the lifecycle of a friend request.
type FriendStatus string

const (
	FriendPending  FriendStatus = "pending"
	FriendAccepted FriendStatus = "accepted"
	FriendRejected FriendStatus = "rejected"
)

// FriendStats are derived per-friend spend figures computed by the backend.
type FriendStats struct {
	MonthlySpend Amount `json:"monthlySpend"`
	TotalSpend   Amount `json:"totalSpend"`
}

type Friend struct {
	User
	Stats FriendStats `json:"stats"`
}

type FriendRequest struct {
	ID     string       `json:"id"`
	From   User         `json:"from"`
	Status FriendStatus `json:"status"`
}
