package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/IITBsports/turf-backend/model"
)

type mockRepo struct {
	listFn  func(ctx context.Context) ([]model.BookingRequest, error)
	claimFn func(ctx context.Context, slot int, date string) (*model.SlotClaim, error)
}

var _ Repo = (*mockRepo)(nil)

func (m *mockRepo) List(ctx context.Context) ([]model.BookingRequest, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx)
}

func (m *mockRepo) AcceptedClaim(ctx context.Context, slot int, date string) (*model.SlotClaim, error) {
	if m.claimFn == nil {
		return nil, nil
	}
	return m.claimFn(ctx, slot, date)
}

func req(slot int, date string, status model.RequestStatus) model.BookingRequest {
	return model.BookingRequest{Slot: slot, Date: date, Status: status}
}

func statusOf(t *testing.T, board []model.SlotStatus, slot int, date string) string {
	t.Helper()
	for _, s := range board {
		if s.Slot == slot && s.Date == date {
			return s.Status
		}
	}
	t.Fatalf("no cell for slot %d date %s", slot, date)
	return ""
}

// --- tests ---

func TestProject_EmptyIsAllAvailable(t *testing.T) {
	board := Project(nil, "2025-09-10")

	require.Len(t, board, model.SlotCount)
	for _, s := range board {
		require.Equal(t, "available", s.Status)
	}
}

func TestProject_PriorityRules(t *testing.T) {
	reqs := []model.BookingRequest{
		// slot 1: accepted beats pending and declined
		req(1, "2025-09-10", model.StatusDeclined),
		req(1, "2025-09-10", model.StatusPending),
		req(1, "2025-09-10", model.StatusAccepted),
		// slot 2: pending beats declined
		req(2, "2025-09-10", model.StatusDeclined),
		req(2, "2025-09-10", model.StatusPending),
		// slot 3: all declined falls back to available
		req(3, "2025-09-10", model.StatusDeclined),
		req(3, "2025-09-10", model.StatusDeclined),
	}

	board := Project(reqs, "2025-09-10")

	require.Equal(t, "booked", statusOf(t, board, 1, "2025-09-10"))
	require.Equal(t, "requested", statusOf(t, board, 2, "2025-09-10"))
	require.Equal(t, "available", statusOf(t, board, 3, "2025-09-10"))
	require.Equal(t, "available", statusOf(t, board, 4, "2025-09-10"))
}

func TestProject_OrderOfRecordsIrrelevant(t *testing.T) {
	// accepted first, pending after: still booked
	reqs := []model.BookingRequest{
		req(5, "2025-09-10", model.StatusAccepted),
		req(5, "2025-09-10", model.StatusPending),
	}
	board := Project(reqs, "2025-09-10")
	require.Equal(t, "booked", statusOf(t, board, 5, "2025-09-10"))
}

func TestProject_DatesAreIndependent(t *testing.T) {
	reqs := []model.BookingRequest{
		req(7, "2025-09-10", model.StatusAccepted),
		req(7, "2025-09-11", model.StatusPending),
	}

	board := Project(reqs, "2025-09-10", "2025-09-11")

	require.Len(t, board, 2*model.SlotCount)
	require.Equal(t, "booked", statusOf(t, board, 7, "2025-09-10"))
	require.Equal(t, "requested", statusOf(t, board, 7, "2025-09-11"))
}

func TestProject_TotalityAndIdempotence(t *testing.T) {
	reqs := []model.BookingRequest{
		req(1, "2025-09-10", model.StatusAccepted),
		req(2, "2025-09-10", model.StatusPending),
		req(9, "2025-09-10", model.StatusDeclined),
	}

	first := Project(reqs, "2025-09-10")
	second := Project(reqs, "2025-09-10")

	require.Equal(t, first, second)
	for _, s := range first {
		require.Contains(t, []string{"available", "requested", "booked"}, s.Status)
	}
}

func TestBoard_ProjectsTodayAndTomorrow(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		listFn: func(ctx context.Context) ([]model.BookingRequest, error) {
			return []model.BookingRequest{req(3, "2025-09-10", model.StatusAccepted)}, nil
		},
	}
	svc := &service{r: m, now: func() time.Time {
		// 2025-09-10 10:00 IST
		return time.Date(2025, 9, 10, 4, 30, 0, 0, time.UTC)
	}}

	board, err := svc.Board(ctx)
	require.NoError(t, err)
	require.Len(t, board, 2*model.SlotCount)
	require.Equal(t, "booked", statusOf(t, board, 3, "2025-09-10"))
	require.Equal(t, "available", statusOf(t, board, 3, "2025-09-11"))
}

func TestBoard_CivilDateCrossesUTCMidnight(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		listFn: func(ctx context.Context) ([]model.BookingRequest, error) {
			return nil, nil
		},
	}
	// 20:30 UTC is already the next civil day in IST
	svc := &service{r: m, now: func() time.Time {
		return time.Date(2025, 9, 10, 20, 30, 0, 0, time.UTC)
	}}

	board, err := svc.Board(ctx)
	require.NoError(t, err)
	require.Equal(t, "2025-09-11", board[0].Date)
}
