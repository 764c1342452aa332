package game

import (
	"math"
	"testing"
)

func TestVec2Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"unit x", Vec2{X: 3, Y: 0}, Vec2{X: 1, Y: 0}},
		{"zero vector stays zero", Vec2{}, Vec2{}},
		{"below epsilon collapses to zero", Vec2{X: 1e-5, Y: 0}, Vec2{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			if math.Abs(got.X-tt.want.X) > 1e-9 || math.Abs(got.Y-tt.want.Y) > 1e-9 {
				t.Errorf("Normalize(%+v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestVec2ClampLength(t *testing.T) {
	v := Vec2{X: 30, Y: 40} // length 50
	clamped := v.ClampLength(10)
	if math.Abs(clamped.Length()-10) > 1e-9 {
		t.Errorf("ClampLength(10) length = %v, want 10", clamped.Length())
	}

	unclamped := v.ClampLength(100)
	if unclamped != v {
		t.Errorf("ClampLength(100) = %+v, want unchanged %+v", unclamped, v)
	}
}

func TestFromAngle(t *testing.T) {
	v := FromAngle(0, 5)
	if math.Abs(v.X-5) > 1e-9 || math.Abs(v.Y) > 1e-9 {
		t.Errorf("FromAngle(0, 5) = %+v, want {5, 0}", v)
	}
}
