package domain

import "testing"

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in   string
		want *float64
	}{
		{"250.000,00", fptr(250000)},
		{"1.234,56", fptr(1234.56)},
		{"300000", fptr(300000)},
		{"  45.000,00  ", fptr(45000)},
		{"0,99", fptr(0.99)},
		{"", nil},
		{"   ", nil},
		{"abc", nil},
		{"12a,bc", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseMoney(tt.in)
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("ParseMoney(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("ParseMoney(%q) = %v, want %v", tt.in, *got, *tt.want)
			}
		})
	}
}

func fptr(v float64) *float64 { return &v }
