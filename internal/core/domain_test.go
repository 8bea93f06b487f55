package core

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestExpenseValidate(t *testing.T) {
	valid := Expense{
		Title:    "Groceries",
		Amount:   AmountFromFloat(25.50),
		Category: "Food",
		Date:     NewDate(2026, 8, 15),
	}

	tests := []struct {
		name    string
		mutate  func(*Expense)
		wantErr error
	}{
		{"valid", func(e *Expense) {}, nil},
		{"zero amount", func(e *Expense) { e.Amount = Amount{} }, ErrInvalidAmount},
		{"zero date", func(e *Expense) { e.Date = Date{} }, ErrInvalidDate},
		{"empty category", func(e *Expense) { e.Category = "  " }, ErrEmptyCategory},
		{"title too long", func(e *Expense) { e.Title = strings.Repeat("x", 101) }, ErrTitleTooLong},
		{"description too long", func(e *Expense) { e.Description = strings.Repeat("x", 501) }, ErrDescriptionTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			if err := e.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDateJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare date", `"2026-08-15"`, "2026-08-15"},
		{"full timestamp", `"2026-08-15T10:30:00.000Z"`, "2026-08-15"},
		{"null", `null`, "0001-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			if err := json.Unmarshal([]byte(tt.in), &d); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.in, err)
			}
			if d.String() != tt.want {
				t.Errorf("date = %s, want %s", d, tt.want)
			}
		})
	}

	t.Run("garbage rejected", func(t *testing.T) {
		var d Date
		if err := json.Unmarshal([]byte(`"not-a-date"`), &d); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("Unmarshal garbage = %v, want ErrInvalidDate", err)
		}
	})

	t.Run("roundtrip", func(t *testing.T) {
		d := NewDate(2026, 8, 15)
		b, err := json.Marshal(d)
		if err != nil {
			t.Fatal(err)
		}
		if string(b) != `"2026-08-15"` {
			t.Errorf("Marshal = %s, want \"2026-08-15\"", b)
		}
	})
}

func TestAmountUnmarshalLenient(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"quoted number", `"12.50"`, "12.50"},
		{"bare number", `12.5`, "12.50"},
		{"garbage coerced to zero", `"oops"`, "0.00"},
		{"negative coerced to zero", `"-3.00"`, "0.00"},
		{"null coerced to zero", `null`, "0.00"},
		{"empty string coerced to zero", `""`, "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			if err := json.Unmarshal([]byte(tt.in), &a); err != nil {
				t.Fatalf("Unmarshal(%s) error = %v", tt.in, err)
			}
			if a.String() != tt.want {
				t.Errorf("amount = %s, want %s", a, tt.want)
			}
		})
	}
}

func TestAmountMarshalTwoDecimals(t *testing.T) {
	b, err := json.Marshal(AmountFromFloat(7.5))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "7.50" {
		t.Errorf("Marshal = %s, want 7.50", b)
	}
}
