package cs

import "testing"

func TestConventionalString(t *testing.T) {
	type test struct {
		v        uint64
		unitInfo UnitInfo
		exp      string
	}

	ui := func(r uint64) UnitInfo {
		return UnitInfo{
			Conventional: Denomination{
				ConversionFactor: r,
			},
		}
	}

	tests := []test{
		{ // integer with no decimal part still displays zeros.
			v:        1e12,
			unitInfo: XMRUnitInfo,
			exp:      "1.000000000000",
		},
		{ // trailing zeroes are displayed.
			v:        10,
			unitInfo: ui(1e3),
			exp:      "0.010",
		},
		{ // piconero
			v:        123,
			unitInfo: ui(1e12),
			exp:      "0.000000000123",
		},
		{ // no thousands delimiters
			v:        1000000,
			unitInfo: ui(1e3),
			exp:      "1000.000",
		},
	}

	for _, tt := range tests {
		s := tt.unitInfo.ConventionalString(tt.v)
		if s != tt.exp {
			t.Fatalf("unexpected output for value %d, expected %q, got %q", tt.v, tt.exp, s)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		exp     Amount
		wantErr bool
	}{
		{in: "1", exp: 1e12},
		{in: "0.000000000001", exp: 1},
		{in: "2.5", exp: 25e11},
		{in: ".25", exp: 25e10},
		{in: "1.0000000000010", exp: 1e12 + 1},
		{in: "0.0000000000001", wantErr: true}, // sub-atomic
		{in: "abc", wantErr: true},
	}
	for _, tt := range tests {
		v, err := ParseAmount(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseAmount(%q): unexpected error state: %v", tt.in, err)
		}
		if err == nil && v != tt.exp {
			t.Fatalf("ParseAmount(%q) = %d, want %d", tt.in, v, tt.exp)
		}
	}
}
