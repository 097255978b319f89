package gf2

import "testing"

func TestAddIsXor(t *testing.T) {
	cases := []struct{ a, b, want Bit }{
		{0, 0, 0}, {0, 1, 1}, {1, 0, 1}, {1, 1, 0},
	}
	for _, tc := range cases {
		if got := tc.a.Add(tc.b); got != tc.want {
			t.Errorf("%v.Add(%v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestMulIsAnd(t *testing.T) {
	cases := []struct{ a, b, want Bit }{
		{0, 0, 0}, {0, 1, 0}, {1, 0, 0}, {1, 1, 1},
	}
	for _, tc := range cases {
		if got := tc.a.Mul(tc.b); got != tc.want {
			t.Errorf("%v.Mul(%v) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestFromInt(t *testing.T) {
	if FromInt(0) != Zero {
		t.Error("FromInt(0) != Zero")
	}
	if FromInt(1) != One || FromInt(-3) != One || FromInt(42) != One {
		t.Error("FromInt(nonzero) != One")
	}
}

func TestFromBool(t *testing.T) {
	if FromBool(false) != Zero || FromBool(true) != One {
		t.Error("FromBool mismatch")
	}
}

func TestBits(t *testing.T) {
	got, err := Bits([]int{0, 1, 1, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Bit{0, 1, 1, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Bits()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	if _, err := Bits([]int{0, 2}); err == nil {
		t.Error("expected error for non-bit value 2")
	}
}
