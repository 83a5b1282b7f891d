package realtime

import "testing"

func TestNewNormalises(t *testing.T) {
	cases := []struct {
		sec, nsec         int
		wantSec, wantNsec int
	}{
		{0, 0, 0, 0},
		{1, 500_000_000, 1, 500_000_000},
		{0, 1_500_000_000, 1, 500_000_000},
		{2, -500_000_000, 1, 500_000_000},
		{-2, 500_000_000, -1, -500_000_000},
		{0, -1_500_000_000, -1, -500_000_000},
		{0, 2_000_000_001, 2, 1},
	}
	for _, tc := range cases {
		got := New(tc.sec, tc.nsec)
		if got.Sec != tc.wantSec || got.Nsec != tc.wantNsec {
			t.Errorf("New(%d, %d): got (%d, %d), want (%d, %d)",
				tc.sec, tc.nsec, got.Sec, got.Nsec, tc.wantSec, tc.wantNsec)
		}
	}
}

func TestFromSeconds(t *testing.T) {
	r := FromSeconds(1.5)
	if r.Sec != 1 || r.Nsec != 500_000_000 {
		t.Errorf("FromSeconds(1.5): got %+v", r)
	}
	r = FromSeconds(-0.25)
	if r.Sec != 0 || r.Nsec != -250_000_000 {
		t.Errorf("FromSeconds(-0.25): got %+v", r)
	}
}

func TestFromFrame(t *testing.T) {
	r := FromFrame(22050, 44100)
	if r.Sec != 0 || r.Nsec != 500_000_000 {
		t.Errorf("FromFrame(22050, 44100): got %+v, want 0.5s", r)
	}
	r = FromFrame(44100, 44100)
	if r.Sec != 1 || r.Nsec != 0 {
		t.Errorf("FromFrame(44100, 44100): got %+v, want 1s", r)
	}
	r = FromFrame(0, 44100)
	if r.Sec != 0 || r.Nsec != 0 {
		t.Errorf("FromFrame(0, 44100): got %+v, want zero", r)
	}
}

func TestFrameRoundTrip(t *testing.T) {
	for _, frame := range []int64{0, 1, 511, 512, 22050, 44100, 96000} {
		r := FromFrame(frame, 44100)
		if got := r.Frame(44100); got != frame {
			t.Errorf("frame %d: round-tripped to %d (%+v)", frame, got, r)
		}
	}
}

func TestArithmetic(t *testing.T) {
	a := New(1, 750_000_000)
	b := New(0, 500_000_000)

	sum := a.Add(b)
	if sum != New(2, 250_000_000) {
		t.Errorf("Add: got %+v", sum)
	}

	diff := a.Sub(b)
	if diff != New(1, 250_000_000) {
		t.Errorf("Sub: got %+v", diff)
	}

	neg := b.Sub(a)
	if neg != New(-1, -250_000_000) {
		t.Errorf("Sub negative: got %+v", neg)
	}
}

func TestCmp(t *testing.T) {
	if New(1, 0).Cmp(New(1, 1)) != -1 {
		t.Error("1.0 should compare below 1.000000001")
	}
	if New(2, 0).Cmp(New(1, 999_999_999)) != 1 {
		t.Error("2.0 should compare above 1.999999999")
	}
	if New(0, 5).Cmp(New(0, 5)) != 0 {
		t.Error("equal values should compare equal")
	}
}

func TestString(t *testing.T) {
	cases := []struct {
		r    RealTime
		want string
	}{
		{New(0, 0), "0"},
		{New(1, 500_000_000), "1.5"},
		{New(0, 1), "0.000000001"},
		{New(-1, -250_000_000), "-1.25"},
		{New(2, 0), "2"},
	}
	for _, tc := range cases {
		if got := tc.r.String(); got != tc.want {
			t.Errorf("String(%+v): got %q, want %q", tc.r, got, tc.want)
		}
	}
}
