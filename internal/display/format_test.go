package display

import "testing"

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{2 * 1024 * 1024, "2.0 MiB"},
		{5 * 1024 * 1024 * 1024, "5.0 GiB"},
	}
	for _, tc := range cases {
		if got := FormatBytes(tc.in); got != tc.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatReduction(t *testing.T) {
	cases := []struct {
		in, out int64
		want    string
	}{
		{1000, 500, "50.0% smaller"},
		{1000, 1000, "0.0% smaller"},
		{1000, 1500, "50.0% larger"},
		{0, 100, "n/a"},
	}
	for _, tc := range cases {
		if got := FormatReduction(tc.in, tc.out); got != tc.want {
			t.Errorf("FormatReduction(%d, %d) = %q, want %q", tc.in, tc.out, got, tc.want)
		}
	}
}
