package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/healthsync-service/internal/events"
)

func TestRecordPrediction_ShowsUpInHistory(t *testing.T) {
	predictions := newMemPredictionRepo()
	dispatcher := events.NewInMemoryDispatcher()
	var published []events.Event
	dispatcher.Subscribe(events.EventPredictionRecorded, func(_ context.Context, event events.Event) error {
		published = append(published, event)
		return nil
	})
	svc := NewHealthService(nil, predictions, dispatcher)
	ctx := context.Background()

	stored, err := svc.RecordPrediction(ctx, "user-1", "diabetes", []string{"thirst", "fatigue"}, "high risk")
	require.NoError(t, err)
	require.NotEmpty(t, stored.ID)

	history, err := svc.ListPredictions(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, "diabetes", history[0].Disease)
	require.Equal(t, []string{"thirst", "fatigue"}, history[0].Symptoms)
	require.Equal(t, "high risk", history[0].Result)

	require.Len(t, published, 1)
	require.Equal(t, "user-1", published[0].UserID)

	count, err := predictions.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestRecordPrediction_HistoryIsPerUser(t *testing.T) {
	predictions := newMemPredictionRepo()
	svc := NewHealthService(nil, predictions, nil)
	ctx := context.Background()

	_, err := svc.RecordPrediction(ctx, "user-1", "flu", []string{"fever"}, "likely")
	require.NoError(t, err)

	history, err := svc.ListPredictions(ctx, "user-2")
	require.NoError(t, err)
	require.Empty(t, history)
}

func TestRecordPrediction_Validation(t *testing.T) {
	svc := NewHealthService(nil, newMemPredictionRepo(), nil)
	ctx := context.Background()

	_, err := svc.RecordPrediction(ctx, "user-1", "", []string{"fever"}, "likely")
	requireDomainCode(t, err, "VALIDATION_FAILED")
	_, err = svc.RecordPrediction(ctx, "user-1", "flu", nil, "likely")
	requireDomainCode(t, err, "VALIDATION_FAILED")
	_, err = svc.RecordPrediction(ctx, "user-1", "flu", []string{"fever"}, "")
	requireDomainCode(t, err, "VALIDATION_FAILED")
}
