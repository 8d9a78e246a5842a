package geo

import (
	"math"
	"testing"
)

func TestDistanceKMZeroForSamePoint(t *testing.T) {
	p := Point{Lat: -6.2, Lng: 106.816666}
	if d := DistanceKM(p, p); d != 0 {
		t.Fatalf("expected zero distance, got %f", d)
	}
}

func TestDistanceKMSymmetric(t *testing.T) {
	jakarta := Point{Lat: -6.2, Lng: 106.816666}
	bandung := Point{Lat: -6.914744, Lng: 107.609810}

	ab := DistanceKM(jakarta, bandung)
	ba := DistanceKM(bandung, jakarta)
	if math.Abs(ab-ba) > 1e-9 {
		t.Fatalf("distance not symmetric: %f vs %f", ab, ba)
	}
}

func TestDistanceKMKnownPair(t *testing.T) {
	// Jakarta to Bandung is roughly 115-120 km great-circle.
	jakarta := Point{Lat: -6.2, Lng: 106.816666}
	bandung := Point{Lat: -6.914744, Lng: 107.609810}

	d := DistanceKM(jakarta, bandung)
	if d < 110 || d > 125 {
		t.Fatalf("unexpected distance %f", d)
	}
}

func TestDistanceKMShortRange(t *testing.T) {
	// Two points ~1.11km apart along a meridian (0.01 degrees latitude).
	a := Point{Lat: -6.20, Lng: 106.80}
	b := Point{Lat: -6.21, Lng: 106.80}

	d := DistanceKM(a, b)
	if d < 1.0 || d > 1.2 {
		t.Fatalf("unexpected short distance %f", d)
	}
}
