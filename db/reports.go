package db

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/apex/log"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"go-wastegrid/types"
)

// GetAllReports retrieves every document in the reports collection.
func GetAllReports(ctx context.Context, client *firestore.Client) ([]types.WasteReport, error) {
	var reports []types.WasteReport

	iter := client.Collection(ReportsCollection).Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating reports: %w", err)
		}

		var report types.WasteReport
		if err := doc.DataTo(&report); err != nil {
			log.Warnf("Skipping report %s: %v", doc.Ref.ID, err)
			continue
		}
		report.ID = doc.Ref.ID
		reports = append(reports, report)
	}

	return reports, nil
}

// GetReportsByWardSince retrieves a ward's reports from the given time on.
func GetReportsByWardSince(ctx context.Context, client *firestore.Client, wardNumber int, since time.Time) ([]types.WasteReport, error) {
	var reports []types.WasteReport

	iter := client.Collection(ReportsCollection).
		Where("location.wardNumber", "==", wardNumber).
		Where("reportedAt", ">=", since).
		Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterating ward %d reports: %w", wardNumber, err)
		}

		var report types.WasteReport
		if err := doc.DataTo(&report); err != nil {
			log.Warnf("Skipping report %s: %v", doc.Ref.ID, err)
			continue
		}
		report.ID = doc.Ref.ID
		reports = append(reports, report)
	}

	return reports, nil
}

// CreateReport persists a new report and returns its document ID.
func CreateReport(ctx context.Context, client *firestore.Client, report types.WasteReport) (string, error) {
	id := report.ID
	if id == "" {
		id = uuid.NewString()
	}
	if _, err := client.Collection(ReportsCollection).Doc(id).Set(ctx, report); err != nil {
		return "", fmt.Errorf("creating report: %w", err)
	}
	return id, nil
}

// AppendReportStatus advances a report's lifecycle inside a transaction so
// the history stays append-only under concurrent writers.
func AppendReportStatus(ctx context.Context, client *firestore.Client, reportID string, status types.ReportStatus, actor, notes string, at time.Time) error {
	docRef := client.Collection(ReportsCollection).Doc(reportID)

	return client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			return fmt.Errorf("reading report %s: %w", reportID, err)
		}

		var report types.WasteReport
		if err := doc.DataTo(&report); err != nil {
			return fmt.Errorf("decoding report %s: %w", reportID, err)
		}

		report.AppendStatus(status, at, actor, notes)
		if status == types.StatusResolved && report.Resolution.ResolvedAt == nil {
			report.Resolution.ResolvedAt = &at
			report.Resolution.ResolvedBy = actor
		}

		return tx.Set(docRef, report)
	})
}
