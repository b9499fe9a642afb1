package formatters

import "testing"

func TestFormatCPF(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"digits", "52998224725", "529.982.247-25"},
		{"already formatted", "529.982.247-25", "529.982.247-25"},
		{"short input keeps digits", "123.45", "12345"},
		{"empty", "", ""},
		{"extra digits kept", "529982247251", "529.982.247-251"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatCPF(tt.input); got != tt.want {
				t.Errorf("FormatCPF(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
