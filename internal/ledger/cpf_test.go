package ledger

import "testing"

func TestValidCPF(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want bool
	}{
		{"known valid", "52998224725", true},
		{"known valid 2", "15350946056", true},
		{"classic test number", "12345678909", true},
		{"formatted", "529.982.247-25", true},
		{"last digit altered", "52998224724", false},
		{"first check digit altered", "52998224735", false},
		{"repeated digits", "11111111111", false},
		{"repeated zeros", "00000000000", false},
		{"too short", "5299822472", false},
		{"too long", "529982247251", false},
		{"letters", "5299822472a", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ValidCPF(tc.in); got != tc.want {
				t.Fatalf("ValidCPF(%q)=%v want %v", tc.in, got, tc.want)
			}
		})
	}
}
