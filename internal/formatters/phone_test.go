package formatters

import "testing"

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"mobile", "11987654321", "(11) 98765-4321"},
		{"landline", "1122334455", "(11) 2233-4455"},
		{"mobile with punctuation", "+(11) 98765 4321", "(11) 98765-4321"},
		{"too short unchanged", "98765-4321", "98765-4321"},
		{"country code unchanged", "+55 11 98765-4321", "+55 11 98765-4321"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPhone(tt.input); got != tt.want {
				t.Errorf("FormatPhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
