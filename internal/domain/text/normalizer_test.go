package text

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercases", "Cat", "cat"},
		{"strips punctuation", "Cat!", "cat"},
		{"russian with period", " Кошка. ", "кошка"},
		{"collapses whitespace", "a   b\t\nc", "a b c"},
		{"keeps digits and underscore", "word_2 go", "word_2 go"},
		{"only punctuation", "?!...", ""},
		{"empty", "", ""},
		{"mixed scripts", "Собака! dog?", "собака dog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.input); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{" Кошка. ", "Cat!", "a   b", "машина"}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}
