package intelligence

import (
	"math"
	"testing"

	"go-wastegrid/types"
)

func TestOptimizeRouteEmpty(t *testing.T) {
	if route := OptimizeRoute("T-1", nil); route != nil {
		t.Errorf("got %+v, want nil for no hotspots", route)
	}
}

func TestOptimizeRouteSingleHotspot(t *testing.T) {
	route := OptimizeRoute("T-1", []types.Hotspot{{Latitude: 9.92, Longitude: 78.11}})
	if route == nil {
		t.Fatal("got nil route")
	}
	if len(route.Route) != 1 {
		t.Errorf("route length = %d, want 1", len(route.Route))
	}
	if route.TotalDistanceKm != 0 {
		t.Errorf("distance = %v, want 0", route.TotalDistanceKm)
	}
	if route.EstimatedMinutes != 0 {
		t.Errorf("minutes = %v, want 0", route.EstimatedMinutes)
	}
}

func TestOptimizeRouteIsPermutation(t *testing.T) {
	hotspots := []types.Hotspot{
		{Latitude: 9.9252, Longitude: 78.1198, Label: "a"},
		{Latitude: 9.9350, Longitude: 78.1000, Label: "b"},
		{Latitude: 9.9100, Longitude: 78.1300, Label: "c"},
		{Latitude: 9.9400, Longitude: 78.1500, Label: "d"},
	}

	route := OptimizeRoute("T-2", hotspots)
	if route == nil {
		t.Fatal("got nil route")
	}
	if len(route.Route) != len(hotspots) {
		t.Fatalf("route visits %d hotspots, want %d", len(route.Route), len(hotspots))
	}

	visited := make(map[string]int)
	for _, h := range route.Route {
		visited[h.Label]++
	}
	for _, h := range hotspots {
		if visited[h.Label] != 1 {
			t.Errorf("hotspot %q visited %d times, want exactly once", h.Label, visited[h.Label])
		}
	}
	if route.Route[0].Label != "a" {
		t.Errorf("route starts at %q, want the first submitted hotspot", route.Route[0].Label)
	}
}

func TestOptimizeRouteEconomics(t *testing.T) {
	hotspots := []types.Hotspot{
		{Latitude: 9.9252, Longitude: 78.1198},
		{Latitude: 9.9352, Longitude: 78.1198},
	}

	route := OptimizeRoute("T-3", hotspots)
	if route == nil {
		t.Fatal("got nil route")
	}

	d := route.TotalDistanceKm
	baseFuel := d / 4
	if !closeTo(route.FuelRequiredL, baseFuel*0.75) {
		t.Errorf("fuel = %v, want %v", route.FuelRequiredL, baseFuel*0.75)
	}
	if !closeTo(route.FuelSavingsL, baseFuel*0.25) {
		t.Errorf("savings = %v, want %v", route.FuelSavingsL, baseFuel*0.25)
	}
	if !closeTo(route.CostSavings, route.FuelSavingsL*100) {
		t.Errorf("cost savings = %v, want %v", route.CostSavings, route.FuelSavingsL*100)
	}
	if !closeTo(route.CO2ReducedKg, route.FuelSavingsL*2.3) {
		t.Errorf("co2 = %v, want %v", route.CO2ReducedKg, route.FuelSavingsL*2.3)
	}
	if !closeTo(route.EstimatedMinutes, d/30*60) {
		t.Errorf("minutes = %v, want %v at 30 km/h", route.EstimatedMinutes, d/30*60)
	}
}

func TestHaversineKm(t *testing.T) {
	if d := HaversineKm(9.92, 78.11, 9.92, 78.11); d != 0 {
		t.Errorf("distance to self = %v, want 0", d)
	}

	ab := HaversineKm(9.9252, 78.1198, 13.0827, 80.2707)
	ba := HaversineKm(13.0827, 80.2707, 9.9252, 78.1198)
	if !closeTo(ab, ba) {
		t.Errorf("asymmetric: %v vs %v", ab, ba)
	}

	// One degree of latitude along a meridian is ~111.2 km.
	if d := HaversineKm(0, 0, 1, 0); math.Abs(d-111.2) > 1 {
		t.Errorf("1 degree latitude = %v km, want ~111.2", d)
	}
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
