package executor

import "testing"

func TestInterpolate(t *testing.T) {
	st := NewState(map[string]string{"username": "a@b.com", "both": "row"})
	st.Vars["city"] = "Dallas"
	st.Vars["both"] = "var"

	tests := []struct {
		in   string
		want string
	}{
		{"<username>", "a@b.com"},
		{"hello <city>!", "hello Dallas!"},
		{"<both>", "var"}, // variables shadow the datatable row
		{"<unknown>", "<unknown>"},
		{"no tokens", "no tokens"},
		{"<city> and <username>", "Dallas and a@b.com"},
		{"<not a token>", "<not a token>"},
	}
	for _, tt := range tests {
		if got := st.Interpolate(tt.in); got != tt.want {
			t.Errorf("Interpolate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestKeyFor(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Enter", ""},
		{"enter", ""},
		{"Tab", ""},
		{"Escape", ""},
		{"ArrowDown", ""},
		{"a", "a"},
	}
	for _, tt := range tests {
		got, err := keyFor(tt.name)
		if err != nil {
			t.Errorf("keyFor(%q) unexpected error: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("keyFor(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}

	if _, err := keyFor("NotAKey"); err == nil {
		t.Error("expected an error for an unknown key name")
	}
}
