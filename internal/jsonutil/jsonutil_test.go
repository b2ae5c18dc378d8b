package jsonutil

import (
	"encoding/json"
	"testing"
)

func TestCleanFences(t *testing.T) {
	t.Run("FencedJSON", func(t *testing.T) {
		got := CleanFences("```json\n{\"a\": 1}\n```")
		if got != `{"a": 1}` {
			t.Errorf("Expected fences stripped, got %q", got)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		clean := `{"title": "Pasta"}`
		if CleanFences(clean) != clean {
			t.Errorf("Expected clean input unchanged, got %q", CleanFences(clean))
		}
		if CleanFences(CleanFences("```json\n"+clean+"\n```")) != clean {
			t.Error("Expected double cleaning to equal single cleaning")
		}
	})
}

func TestUnmarshal(t *testing.T) {
	t.Run("FencedAndUnfencedAgree", func(t *testing.T) {
		body := `{"title": "Soup", "tips": ["salt"]}`

		var fenced, plain struct {
			Title string     `json:"title"`
			Tips  StringList `json:"tips"`
		}
		if err := Unmarshal("```json\n"+body+"\n```", &fenced); err != nil {
			t.Fatalf("Failed to decode fenced payload: %v", err)
		}
		if err := Unmarshal(body, &plain); err != nil {
			t.Fatalf("Failed to decode plain payload: %v", err)
		}
		if fenced.Title != plain.Title || len(fenced.Tips) != len(plain.Tips) {
			t.Errorf("Expected identical results, got %+v vs %+v", fenced, plain)
		}
	})

	t.Run("InvalidJSON", func(t *testing.T) {
		var dst map[string]any
		err := Unmarshal("sorry, I cannot do that", &dst)
		if err == nil {
			t.Fatal("Expected an error for non-JSON input, got nil")
		}
	})
}

func TestFlexString(t *testing.T) {
	var dst struct {
		Time FlexString `json:"time"`
		Cost FlexString `json:"cost"`
	}
	if err := json.Unmarshal([]byte(`{"time": 30, "cost": "$4.50"}`), &dst); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if dst.Time != "30" {
		t.Errorf("Expected numeric field preserved as \"30\", got %q", dst.Time)
	}
	if dst.Cost != "$4.50" {
		t.Errorf("Expected string field untouched, got %q", dst.Cost)
	}
}

func TestStringList(t *testing.T) {
	t.Run("WrongType", func(t *testing.T) {
		var dst struct {
			Tips StringList `json:"tips"`
		}
		if err := json.Unmarshal([]byte(`{"tips": "just one tip"}`), &dst); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if len(dst.Tips) != 0 {
			t.Errorf("Expected wrong-typed collection coerced to empty, got %v", dst.Tips)
		}
	})

	t.Run("MixedElements", func(t *testing.T) {
		var dst struct {
			Items StringList `json:"items"`
		}
		if err := json.Unmarshal([]byte(`{"items": ["rice", 2, {"x":1}]}`), &dst); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if len(dst.Items) != 2 || dst.Items[0] != "rice" || dst.Items[1] != "2" {
			t.Errorf("Expected scalar elements kept, got %v", dst.Items)
		}
	})
}
