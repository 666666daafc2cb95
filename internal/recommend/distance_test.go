package recommend

import (
	"math"
	"math/rand"
	"testing"

	"ridehail/internal/domain/entities"
)

func TestHaversine(t *testing.T) {
	tests := []struct {
		name      string
		lat1      float64
		lon1      float64
		lat2      float64
		lon2      float64
		expected  float64
		tolerance float64
	}{
		{
			name:      "Same location",
			lat1:      25.0340,
			lon1:      121.5650,
			lat2:      25.0340,
			lon2:      121.5650,
			expected:  0,
			tolerance: 1e-9,
		},
		{
			name:      "Taipei 101 area to Yangmingshan",
			lat1:      25.0340,
			lon1:      121.5650,
			lat2:      25.1559,
			lon2:      121.5468,
			expected:  13.678,
			tolerance: 0.01,
		},
		{
			name:      "SF to Oakland",
			lat1:      37.7749,
			lon1:      -122.4194,
			lat2:      37.8044,
			lon2:      -122.2712,
			expected:  13.43,
			tolerance: 0.05,
		},
		{
			name:      "NYC to LA",
			lat1:      40.7128,
			lon1:      -74.0060,
			lat2:      34.0522,
			lon2:      -118.2437,
			expected:  3935.7,
			tolerance: 1,
		},
		{
			name:      "Antipodal points",
			lat1:      0,
			lon1:      0,
			lat2:      0,
			lon2:      180,
			expected:  math.Pi * EarthRadiusKm,
			tolerance: 1e-6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Haversine(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			if math.Abs(result-tt.expected) > tt.tolerance {
				t.Errorf("Haversine() = %v, expected %v (+/- %v)", result, tt.expected, tt.tolerance)
			}
		})
	}
}

func randomLocation(r *rand.Rand) entities.Location {
	return entities.NewLocation(r.Float64()*180-90, r.Float64()*360-180)
}

func TestDistanceSymmetricAndNonNegative(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		a, b := randomLocation(r), randomLocation(r)
		ab, ba := Distance(a, b), Distance(b, a)
		if ab < 0 {
			t.Fatalf("negative distance %v for %v -> %v", ab, a, b)
		}
		if math.Abs(ab-ba) > 1e-9 {
			t.Fatalf("asymmetric distance: %v vs %v for %v, %v", ab, ba, a, b)
		}
		if Distance(a, a) != 0 {
			t.Fatalf("distance from %v to itself = %v", a, Distance(a, a))
		}
	}
}

func TestDistanceTriangleInequality(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 500; i++ {
		a, b, c := randomLocation(r), randomLocation(r), randomLocation(r)
		if Distance(a, c) > Distance(a, b)+Distance(b, c)+1e-6 {
			t.Fatalf("triangle inequality violated for %v, %v, %v", a, b, c)
		}
	}
}

func BenchmarkHaversine(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Haversine(25.0340, 121.5650, 25.1559, 121.5468)
	}
}
