package help

import "testing"

func TestContent(t *testing.T) {
	want := map[string]int{"signup": 5, "signin": 4, "subscribe": 5}
	if len(Tutorials) != len(want) {
		t.Fatalf("Expected %d tutorials, got %d", len(want), len(Tutorials))
	}
	for id, steps := range want {
		tut, ok := Find(id)
		if !ok {
			t.Errorf("Tutorial %s missing", id)
			continue
		}
		if len(tut.Steps) != steps {
			t.Errorf("Tutorial %s: expected %d steps, got %d", id, steps, len(tut.Steps))
		}
	}
	if len(FAQs) != 8 {
		t.Errorf("Expected 8 FAQs, got %d", len(FAQs))
	}
}

func TestToggle(t *testing.T) {
	tests := []struct {
		open, id, want string
	}{
		{"", "signup", "signup"},
		{"signup", "signup", ""},
		{"signup", "signin", "signin"},
		{"", "unknown", ""},
	}
	for _, tt := range tests {
		if got := Toggle(tt.open, tt.id); got != tt.want {
			t.Errorf("Toggle(%q, %q) = %q, want %q", tt.open, tt.id, got, tt.want)
		}
	}
}
