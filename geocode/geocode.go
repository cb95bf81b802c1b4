package geocode

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/apex/log"
	"googlemaps.github.io/maps"
)

// mapsClient is a singleton maps client instance.
var (
	mapsClient *maps.Client
	clientOnce sync.Once
)

// InitMapsClient initializes and returns a singleton Google Maps client.
func InitMapsClient() (*maps.Client, error) {
	var err error
	clientOnce.Do(func() {
		apiKey := os.Getenv("MAPS_API_KEY")
		if apiKey == "" {
			err = fmt.Errorf("MAPS_API_KEY environment variable not set")
			return
		}
		mapsClient, err = maps.NewClient(maps.WithAPIKey(apiKey))
		if err != nil {
			log.Errorf("Failed to create maps client: %v", err)
		}
	})
	return mapsClient, err
}

// ResolveAddress forward-geocodes an address and returns longitude, latitude.
// Used at report intake when a citizen supplies an address without
// coordinates.
func ResolveAddress(ctx context.Context, address string) (float64, float64, error) {
	client, err := InitMapsClient()
	if err != nil {
		return 0, 0, err
	}

	results, err := client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return 0, 0, fmt.Errorf("geocoding %q: %w", address, err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("no geocoding results for %q", address)
	}

	loc := results[0].Geometry.Location
	return loc.Lng, loc.Lat, nil
}

// ReverseGeocode returns a formatted address for coordinates, best effort.
func ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	client, err := InitMapsClient()
	if err != nil {
		return "", err
	}

	results, err := client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lng},
	})
	if err != nil {
		return "", fmt.Errorf("reverse geocoding %.5f,%.5f: %w", lat, lng, err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("no reverse geocoding results for %.5f,%.5f", lat, lng)
	}

	return results[0].FormattedAddress, nil
}
