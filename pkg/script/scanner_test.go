package script

import (
	"reflect"
	"testing"
)

func TestScanLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []Token
	}{
		{
			name: "plain words",
			line: "click and refresh",
			want: []Token{{Text: "click"}, {Text: "and"}, {Text: "refresh"}},
		},
		{
			name: "quoted argument keeps spaces",
			line: `locate "First Name"`,
			want: []Token{{Text: "locate"}, {Text: "First Name", Quoted: true}},
		},
		{
			name: "empty quoted string",
			line: `type ""`,
			want: []Token{{Text: "type"}, {Text: "", Quoted: true}},
		},
		{
			name: "keyword inside quotes is not a keyword",
			line: `locate "this and that"`,
			want: []Token{{Text: "locate"}, {Text: "this and that", Quoted: true}},
		},
		{
			name: "extra whitespace",
			line: "  click \t and   refresh  ",
			want: []Token{{Text: "click"}, {Text: "and"}, {Text: "refresh"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scanLine(tt.line)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("scanLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestScanLine_UnterminatedQuote(t *testing.T) {
	if _, err := scanLine(`locate "Email`); err == nil {
		t.Fatal("expected an error")
	}
}

func TestIsIdent(t *testing.T) {
	valid := []string{"user", "first_name", "_tmp", "row2"}
	for _, v := range valid {
		if !isIdent(v) {
			t.Errorf("isIdent(%q) = false, want true", v)
		}
	}
	invalid := []string{"", "2fast", "first-name", "a b", `"x"`}
	for _, v := range invalid {
		if isIdent(v) {
			t.Errorf("isIdent(%q) = true, want false", v)
		}
	}
}
