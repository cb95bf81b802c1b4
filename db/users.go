package db

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/apex/log"
	"google.golang.org/api/iterator"

	"go-wastegrid/types"
)

// GetUsersByRole retrieves all users with the given role.
func GetUsersByRole(ctx context.Context, client *firestore.Client, role types.Role) ([]types.User, error) {
	var users []types.User

	iter := client.Collection(UsersCollection).
		Where("role", "==", string(role)).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating %s users: %w", role, err)
		}

		var user types.User
		if err := doc.DataTo(&user); err != nil {
			log.Warnf("Skipping user %s: %v", doc.Ref.ID, err)
			continue
		}
		user.ID = doc.Ref.ID
		users = append(users, user)
	}

	return users, nil
}

// mutateUser runs a read-modify-write on one user document inside a
// transaction, same discipline as ward updates.
func mutateUser(ctx context.Context, client *firestore.Client, userID string, fn func(*types.User)) error {
	docRef := client.Collection(UsersCollection).Doc(userID)

	return client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			return fmt.Errorf("reading user %s: %w", userID, err)
		}

		var user types.User
		if err := doc.DataTo(&user); err != nil {
			return fmt.Errorf("decoding user %s: %w", userID, err)
		}

		fn(&user)
		return tx.Set(docRef, user)
	})
}

// UpdateParticipationScore writes a recomputed citizen participation score.
func UpdateParticipationScore(ctx context.Context, client *firestore.Client, userID string, score float64) error {
	return mutateUser(ctx, client, userID, func(u *types.User) {
		u.CitizenMetrics.ParticipationScore = score
	})
}

// UpdateOfficerEfficiency writes a recomputed officer efficiency rating.
func UpdateOfficerEfficiency(ctx context.Context, client *firestore.Client, userID string, efficiency float64) error {
	return mutateUser(ctx, client, userID, func(u *types.User) {
		u.OfficerMetrics.Efficiency = efficiency
	})
}
