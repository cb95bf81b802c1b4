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

// SavePolicyRecommendations writes a batch of generated recommendations with
// a BulkWriter. Individual write failures are logged; the first error is
// returned after the flush so one bad document does not drop the rest.
func SavePolicyRecommendations(ctx context.Context, client *firestore.Client, recs []types.PolicyRecommendation) error {
	if len(recs) == 0 {
		return nil
	}

	bw := client.BulkWriter(ctx)
	var firstErr error

	for _, rec := range recs {
		docRef := client.Collection(PoliciesCollection).Doc(rec.ID)
		if _, err := bw.Set(docRef, rec); err != nil {
			log.Warnf("Queueing policy %s: %v", rec.ID, err)
			if firstErr == nil {
				firstErr = fmt.Errorf("queueing policy %s: %w", rec.ID, err)
			}
		}
	}
	bw.End()

	return firstErr
}

// GetPoliciesByWard returns recommendations for a ward, newest first.
func GetPoliciesByWard(ctx context.Context, client *firestore.Client, wardNumber int) ([]types.PolicyRecommendation, error) {
	var recs []types.PolicyRecommendation

	iter := client.Collection(PoliciesCollection).
		Where("wardNumber", "==", wardNumber).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating policies for ward %d: %w", wardNumber, err)
		}

		var rec types.PolicyRecommendation
		if err := doc.DataTo(&rec); err != nil {
			log.Warnf("Skipping policy %s: %v", doc.Ref.ID, err)
			continue
		}
		rec.ID = doc.Ref.ID
		recs = append(recs, rec)
	}

	return recs, nil
}

// UpdatePolicyStatus advances a recommendation's status inside a transaction,
// so concurrent reviewers cannot clobber each other's history entries.
func UpdatePolicyStatus(ctx context.Context, client *firestore.Client, policyID string, status types.PolicyStatus, actor, notes string) error {
	docRef := client.Collection(PoliciesCollection).Doc(policyID)

	return client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			return fmt.Errorf("reading policy %s: %w", policyID, err)
		}

		var rec types.PolicyRecommendation
		if err := doc.DataTo(&rec); err != nil {
			return fmt.Errorf("decoding policy %s: %w", policyID, err)
		}

		rec.AdvanceStatus(status, time.Now(), actor, notes)
		return tx.Set(docRef, rec)
	})
}

// UpdatePolicyProgress sets the implementation progress, clamped to 0-100.
func UpdatePolicyProgress(ctx context.Context, client *firestore.Client, policyID string, progress int) error {
	if progress < 0 {
		progress = 0
	}
	if progress > 100 {
		progress = 100
	}

	docRef := client.Collection(PoliciesCollection).Doc(policyID)
	_, err := docRef.Update(ctx, []firestore.Update{
		{Path: "progress", Value: progress},
	})
	if err != nil {
		return fmt.Errorf("updating progress for policy %s: %w", policyID, err)
	}
	return nil
}
