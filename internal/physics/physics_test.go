package physics

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-3, 0, 10, 0},
		{404, 0, 400, 400},
		{0, 0, 0, 0},
		{5, 10, 0, 10}, // degenerate range
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestWithinIsInclusive(t *testing.T) {
	if !Within(20, 20, 10) || !Within(30, 20, 10) {
		t.Error("Expected range edges to be inside")
	}
	if Within(19.9, 20, 10) || Within(30.1, 20, 10) {
		t.Error("Expected values past the edges to be outside")
	}
}

func TestPointInRect(t *testing.T) {
	if !PointInRect(25, 250, 20, 200, 10, 100) {
		t.Error("Expected point inside paddle rect")
	}
	if PointInRect(25, 199, 20, 200, 10, 100) {
		t.Error("Expected point above paddle rect to be outside")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		v, lo, span, want float64
	}{
		{200, 200, 100, 0},
		{250, 200, 100, 0.5},
		{300, 200, 100, 1},
		{350, 200, 100, 1},
		{7, 7, 0, 0.5},
	}
	for _, tt := range tests {
		if got := Normalize(tt.v, tt.lo, tt.span); got != tt.want {
			t.Errorf("Normalize(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.span, got, tt.want)
		}
	}
}

func TestWithSign(t *testing.T) {
	if got := WithSign(-4, true); got != 4 {
		t.Errorf("Expected 4, got %v", got)
	}
	if got := WithSign(4, false); got != -4 {
		t.Errorf("Expected -4, got %v", got)
	}
	if got := WithSign(-4, false); got != -4 {
		t.Errorf("Expected -4, got %v", got)
	}
}

func TestPointInCircle(t *testing.T) {
	if !PointInCircle(3, 4, 0, 0, 5) {
		t.Error("Expected point on circle edge to be inside")
	}
	if PointInCircle(4, 4, 0, 0, 5) {
		t.Error("Expected point outside circle")
	}
	if got := Distance(0, 0, 3, 4); got != 5 {
		t.Errorf("Expected distance 5, got %v", got)
	}
}
