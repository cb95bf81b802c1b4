package handlers

import (
	"context"
	"errors"
	"testing"

	"go-wastegrid/types"
)

func TestFillIntakeAddress(t *testing.T) {
	orig := reverseGeocode
	defer func() { reverseGeocode = orig }()
	reverseGeocode = func(ctx context.Context, lat, lng float64) (string, error) {
		return "12 Anna Nagar Main Road", nil
	}

	loc := types.ReportLocation{Coordinates: [2]float64{78.1198, 9.9252}, WardNumber: 5}
	fillIntakeAddress(context.Background(), &loc)

	if loc.Address != "12 Anna Nagar Main Road" {
		t.Errorf("address = %q, want the resolved address", loc.Address)
	}
}

func TestFillIntakeAddressKeepsSubmittedAddress(t *testing.T) {
	orig := reverseGeocode
	defer func() { reverseGeocode = orig }()
	var called bool
	reverseGeocode = func(ctx context.Context, lat, lng float64) (string, error) {
		called = true
		return "should not be used", nil
	}

	loc := types.ReportLocation{Coordinates: [2]float64{78.1198, 9.9252}, Address: "submitted address"}
	fillIntakeAddress(context.Background(), &loc)

	if loc.Address != "submitted address" {
		t.Errorf("address = %q, want the citizen's own address kept", loc.Address)
	}
	if called {
		t.Error("geocoder called for a submission that already carries an address")
	}
}

func TestFillIntakeAddressGeocoderFailure(t *testing.T) {
	orig := reverseGeocode
	defer func() { reverseGeocode = orig }()
	reverseGeocode = func(ctx context.Context, lat, lng float64) (string, error) {
		return "", errors.New("no client configured")
	}

	loc := types.ReportLocation{Coordinates: [2]float64{78.1198, 9.9252}}
	fillIntakeAddress(context.Background(), &loc)

	if loc.Address != "" {
		t.Errorf("address = %q, want empty when the geocoder is down", loc.Address)
	}
}
