package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/apex/log"
	"google.golang.org/api/iterator"

	"go-wastegrid/types"
)

// GetAllTrucks retrieves the fleet.
func GetAllTrucks(ctx context.Context, client *firestore.Client) ([]types.Truck, error) {
	var trucks []types.Truck

	iter := client.Collection(TrucksCollection).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating trucks: %w", err)
		}

		var truck types.Truck
		if err := doc.DataTo(&truck); err != nil {
			log.Warnf("Skipping truck %s: %v", doc.Ref.ID, err)
			continue
		}
		truck.ID = doc.Ref.ID
		trucks = append(trucks, truck)
	}

	return trucks, nil
}

// TruckAssigner claims trucks with a transactional compare-and-set: read
// status, require available, mark assigned. Two concurrent passes can never
// claim the same truck because the second transaction sees the first write
// and retries onto the next candidate.
type TruckAssigner struct {
	Client *firestore.Client
	Ctx    context.Context
}

func (a *TruckAssigner) Assign(wardNumber int) (*types.Truck, bool) {
	docs, err := a.Client.Collection(TrucksCollection).
		Where("status", "==", string(types.TruckAvailable)).
		Documents(a.Ctx).
		GetAll()
	if err != nil {
		log.Errorf("Listing available trucks: %v", err)
		return nil, false
	}

	for _, doc := range docs {
		claimed, err := claimTruck(a.Ctx, a.Client, doc.Ref.ID, wardNumber)
		if err != nil {
			log.Warnf("Claiming truck %s: %v", doc.Ref.ID, err)
			continue
		}
		if claimed != nil {
			return claimed, true
		}
	}
	return nil, false
}

// claimTruck returns the truck when the claim won, nil when the truck was no
// longer available.
func claimTruck(ctx context.Context, client *firestore.Client, truckID string, wardNumber int) (*types.Truck, error) {
	docRef := client.Collection(TrucksCollection).Doc(truckID)
	var claimed *types.Truck

	err := client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			return fmt.Errorf("reading truck %s: %w", truckID, err)
		}

		var truck types.Truck
		if err := doc.DataTo(&truck); err != nil {
			return fmt.Errorf("decoding truck %s: %w", truckID, err)
		}

		if truck.Status != types.TruckAvailable {
			claimed = nil
			return nil
		}

		truck.Status = types.TruckAssigned
		truck.AssignedWard = wardNumber
		truck.ID = truckID
		claimed = &truck
		return tx.Set(docRef, truck)
	})
	if err != nil {
		return nil, err
	}
	return claimed, nil
}

// ReleaseTruck returns a truck to the available pool.
func ReleaseTruck(ctx context.Context, client *firestore.Client, truckID string) error {
	docRef := client.Collection(TrucksCollection).Doc(truckID)

	return client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			return fmt.Errorf("reading truck %s: %w", truckID, err)
		}

		var truck types.Truck
		if err := doc.DataTo(&truck); err != nil {
			return fmt.Errorf("decoding truck %s: %w", truckID, err)
		}

		truck.Status = types.TruckAvailable
		truck.AssignedWard = 0
		return tx.Set(docRef, truck)
	})
}
