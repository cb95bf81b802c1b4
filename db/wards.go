package db

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/apex/log"
	"google.golang.org/api/iterator"

	"go-wastegrid/types"
)

// GetAllWards retrieves every ward document.
func GetAllWards(ctx context.Context, client *firestore.Client) ([]types.Ward, error) {
	var wards []types.Ward

	iter := client.Collection(WardsCollection).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating wards: %w", err)
		}

		var ward types.Ward
		if err := doc.DataTo(&ward); err != nil {
			log.Warnf("Skipping ward %s: %v", doc.Ref.ID, err)
			continue
		}
		ward.ID = doc.Ref.ID
		wards = append(wards, ward)
	}

	return wards, nil
}

// GetWardByNumber finds the ward document for a ward number.
func GetWardByNumber(ctx context.Context, client *firestore.Client, wardNumber int) (types.Ward, error) {
	var ward types.Ward

	docs, err := client.Collection(WardsCollection).
		Where("wardNumber", "==", wardNumber).
		Limit(1).
		Documents(ctx).
		GetAll()
	if err != nil {
		return ward, fmt.Errorf("querying ward %d: %w", wardNumber, err)
	}
	if len(docs) == 0 {
		return ward, fmt.Errorf("ward %d: %w", wardNumber, ErrNotFound)
	}

	if err := docs[0].DataTo(&ward); err != nil {
		return ward, fmt.Errorf("decoding ward %d: %w", wardNumber, err)
	}
	ward.ID = docs[0].Ref.ID
	return ward, nil
}

// mutateWard applies fn to the current ward document inside a transaction.
// Firestore retries the transaction when the document changed underneath,
// which is the conditional-write guard against lost updates on the
// read-modify-write cycle every recomputation uses.
func mutateWard(ctx context.Context, client *firestore.Client, wardID string, fn func(*types.Ward)) error {
	docRef := client.Collection(WardsCollection).Doc(wardID)

	return client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			return fmt.Errorf("reading ward %s: %w", wardID, err)
		}

		var ward types.Ward
		if err := doc.DataTo(&ward); err != nil {
			return fmt.Errorf("decoding ward %s: %w", wardID, err)
		}

		fn(&ward)
		ward.LastUpdated = time.Now().UTC()

		return tx.Set(docRef, ward)
	})
}

// UpdateWardCleanliness appends a new cleanliness score to the ward's capped
// history and sets the current value.
func UpdateWardCleanliness(ctx context.Context, client *firestore.Client, wardID string, entry types.CleanlinessEntry) error {
	return mutateWard(ctx, client, wardID, func(w *types.Ward) {
		w.Cleanliness.Append(entry)
	})
}

// UpdateWardOverflowRisk overwrites the ward's overflow-risk cache.
func UpdateWardOverflowRisk(ctx context.Context, client *firestore.Client, wardID string, risk types.OverflowRisk) error {
	return mutateWard(ctx, client, wardID, func(w *types.Ward) {
		w.OverflowRisk = risk
	})
}

// UpdateWardActiveReports recomputes the cached active-report counters from
// the given open reports.
func UpdateWardActiveReports(ctx context.Context, client *firestore.Client, wardID string, reports []types.WasteReport) error {
	var active types.ActiveReports
	for _, r := range reports {
		if r.Status.Current.Terminal() {
			continue
		}
		active.Total++
		switch r.Status.Current {
		case types.StatusReported:
			active.ByStatus.Reported++
		case types.StatusVerified:
			active.ByStatus.Verified++
		case types.StatusAssigned:
			active.ByStatus.Assigned++
		case types.StatusInProgress:
			active.ByStatus.InProgress++
		}
		switch {
		case r.Classification.SeverityScore <= 2:
			active.BySeverity.Low++
		case r.Classification.SeverityScore == 3:
			active.BySeverity.Medium++
		case r.Classification.SeverityScore == 4:
			active.BySeverity.High++
		default:
			active.BySeverity.Critical++
		}
	}

	return mutateWard(ctx, client, wardID, func(w *types.Ward) {
		w.ActiveReports = active
	})
}
