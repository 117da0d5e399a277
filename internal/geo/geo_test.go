package geo

import (
	"errors"
	"math"
	"testing"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Point
		want      float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         Point{Lon: 77.59, Lat: 12.97},
			b:         Point{Lon: 77.59, Lat: 12.97},
			want:      0,
			tolerance: 0.001,
		},
		{
			name: "one degree of latitude at the equator",
			a:    Point{Lon: 0, Lat: 0},
			b:    Point{Lon: 0, Lat: 1},
			// one degree of arc on the mean sphere
			want:      111195,
			tolerance: 50,
		},
		{
			name:      "short hop stays under a kilometer",
			a:         Point{Lon: 0, Lat: 0},
			b:         Point{Lon: 0, Lat: 0.005},
			want:      556,
			tolerance: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if math.Abs(got-tt.want) > tt.tolerance {
				t.Fatalf("Distance() = %.2f m, want %.2f ± %.2f", got, tt.want, tt.tolerance)
			}
		})
	}
}

func TestDistanceSymmetric(t *testing.T) {
	a := Point{Lon: 77.59, Lat: 12.97}
	b := Point{Lon: 77.61, Lat: 12.99}
	if d1, d2 := Distance(a, b), Distance(b, a); d1 != d2 {
		t.Fatalf("Distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestCentroid(t *testing.T) {
	t.Run("single point is its own centroid", func(t *testing.T) {
		p := Point{Lon: 77.59, Lat: 12.97}
		got, err := Centroid([]Point{p})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != p {
			t.Fatalf("Centroid([p]) = %v, want %v", got, p)
		}
	})

	t.Run("mean of two points is the midpoint", func(t *testing.T) {
		got, err := Centroid([]Point{
			{Lon: 0, Lat: 0},
			{Lon: 0, Lat: 0.001},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Lon != 0 || math.Abs(got.Lat-0.0005) > 1e-12 {
			t.Fatalf("Centroid = %v, want {0 0.0005}", got)
		}
	})

	t.Run("empty input fails", func(t *testing.T) {
		_, err := Centroid(nil)
		if !errors.Is(err, ErrNoPoints) {
			t.Fatalf("Centroid(nil) err = %v, want ErrNoPoints", err)
		}
	})
}
