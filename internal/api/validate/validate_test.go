package validate

import (
	"strings"
	"testing"

	"github.com/oliveapp/olive-server/internal/model"
)

func TestLanguageCode(t *testing.T) {
	if err := LanguageCode("pt"); err != nil {
		t.Fatalf("pt should validate: %v", err)
	}
	if err := LanguageCode("PT"); err != nil {
		t.Fatalf("case-insensitive match expected: %v", err)
	}
	if err := LanguageCode(""); err == nil {
		t.Fatal("empty language must fail")
	}
	if err := LanguageCode("xx"); err == nil {
		t.Fatal("unsupported language must fail")
	}
}

func TestListName(t *testing.T) {
	if err := ListName("Groceries"); err != nil {
		t.Fatalf("valid name rejected: %v", err)
	}
	if err := ListName(""); err == nil {
		t.Fatal("empty name must fail")
	}
	if err := ListName(strings.Repeat("x", 61)); err == nil {
		t.Fatal("over-long name must fail")
	}
}

func TestCreateNote(t *testing.T) {
	if err := CreateNote("buy olives", nil, "", "", nil); err != nil {
		t.Fatalf("minimal note rejected: %v", err)
	}
	if err := CreateNote("", nil, "", "", nil); err == nil {
		t.Fatal("empty input must fail")
	}
	if err := CreateNote(strings.Repeat("x", 4001), nil, "", "", nil); err == nil {
		t.Fatal("over-long input must fail")
	}
	if err := CreateNote("x", nil, "urgent", "", nil); err == nil {
		t.Fatal("unknown priority must fail")
	}
	if err := CreateNote("x", nil, model.PriorityHigh, "them", nil); err == nil {
		t.Fatal("unknown owner must fail")
	}
	if err := CreateNote("x", nil, "", "", &model.Recurrence{Frequency: "hourly", Interval: 1}); err == nil {
		t.Fatal("unknown recurrence frequency must fail")
	}
	if err := CreateNote("x", nil, "", "", &model.Recurrence{Frequency: "weekly", Interval: 0}); err == nil {
		t.Fatal("zero interval must fail")
	}
	if err := CreateNote("x", nil, model.PriorityLow, model.OwnerSelf, &model.Recurrence{Frequency: "weekly", Interval: 2}); err != nil {
		t.Fatalf("full note rejected: %v", err)
	}
}

func TestViewWindow(t *testing.T) {
	if err := ViewWindow(7); err != nil {
		t.Fatalf("7 days rejected: %v", err)
	}
	if err := ViewWindow(0); err == nil {
		t.Fatal("0 days must fail")
	}
	if err := ViewWindow(60); err == nil {
		t.Fatal("60 days must fail")
	}
}
