package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/BearBump/DriverBox/internal/broker/kafka"
	"github.com/BearBump/DriverBox/internal/broker/messages"
	"github.com/BearBump/DriverBox/internal/models"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	receipts    map[string]models.Receipt
	occurrences map[string]models.Occurrence
	err         error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{receipts: map[string]models.Receipt{}, occurrences: map[string]models.Occurrence{}}
}

func (r *fakeRepo) SaveReceipt(_ context.Context, _ string, rc models.Receipt) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	if _, ok := r.receipts[rc.ID]; ok {
		return false, nil
	}
	r.receipts[rc.ID] = rc
	return true, nil
}

func (r *fakeRepo) SaveOccurrence(_ context.Context, _ string, o models.Occurrence) (bool, error) {
	if r.err != nil {
		return false, r.err
	}
	if _, ok := r.occurrences[o.ID]; ok {
		return false, nil
	}
	r.occurrences[o.ID] = o
	return true, nil
}

func encode(t *testing.T, sub messages.Submission) kafka.Message {
	t.Helper()
	b, err := json.Marshal(sub)
	require.NoError(t, err)
	return kafka.Message{Value: b, Headers: map[string]string{kafka.HeaderKind: sub.Kind}}
}

func receiptMsg(t *testing.T, id string) kafka.Message {
	return encode(t, messages.Submission{
		Kind:     messages.KindReceiptSubmitted,
		DriverID: "drv-1",
		Receipt:  &models.Receipt{ID: id, DeliveryID: "2", ReceiverName: "Ana", Photo: "data:image/jpeg;base64,AA=="},
	})
}

func TestHandle_StoresAndDeduplicates(t *testing.T) {
	repo := newFakeRepo()
	l := New(repo)
	ctx := context.Background()

	require.NoError(t, l.Handle(ctx, receiptMsg(t, "r-1")))
	require.NoError(t, l.Handle(ctx, receiptMsg(t, "r-1")))
	require.NoError(t, l.Handle(ctx, encode(t, messages.Submission{
		Kind:       messages.KindOccurrenceReported,
		DriverID:   "drv-1",
		Occurrence: &models.Occurrence{ID: "o-1", DeliveryID: "6", Type: models.OccurrenceTypeDamage, Description: "x"},
	})))

	require.Len(t, repo.receipts, 1)
	require.Len(t, repo.occurrences, 1)

	st := l.Stats()
	require.Equal(t, int64(3), st.TotalConsumed)
	require.Equal(t, int64(2), st.TotalStored)
	require.Equal(t, int64(1), st.TotalDuplicates)
	require.Zero(t, st.TotalErrors)
	require.NotNil(t, st.LastMessageAt)
}

func TestHandle_SkipsMalformed(t *testing.T) {
	repo := newFakeRepo()
	l := New(repo)
	ctx := context.Background()

	cases := []kafka.Message{
		{Value: []byte("{oops")},
		encode(t, messages.Submission{Kind: "receipt.deleted", DriverID: "d"}),
		encode(t, messages.Submission{Kind: messages.KindReceiptSubmitted, DriverID: "d"}),
		encode(t, messages.Submission{Kind: messages.KindReceiptSubmitted, Receipt: &models.Receipt{ID: "r", DeliveryID: "1"}}),
		encode(t, messages.Submission{
			Kind: messages.KindOccurrenceReported, DriverID: "d",
			Occurrence: &models.Occurrence{ID: "o", DeliveryID: "1", Type: "stolen"},
		}),
	}
	mismatch := receiptMsg(t, "r-2")
	mismatch.Headers[kafka.HeaderKind] = messages.KindOccurrenceReported
	cases = append(cases, mismatch)

	for _, m := range cases {
		require.NoError(t, l.Handle(ctx, m))
	}
	require.Empty(t, repo.receipts)
	require.Empty(t, repo.occurrences)

	st := l.Stats()
	require.Equal(t, int64(len(cases)), st.TotalSkipped)
	require.Contains(t, st.LastError, "malformed submission")
}

func TestHandle_StorageErrorIsReturned(t *testing.T) {
	repo := newFakeRepo()
	repo.err = errors.New("pg down")
	l := New(repo)

	err := l.Handle(context.Background(), receiptMsg(t, "r-1"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "store receipt.submitted")
	require.Equal(t, int64(1), l.Stats().TotalErrors)
}

type scriptedConsumer struct {
	calls int
	msgs  []kafka.Message
}

func (c *scriptedConsumer) Consume(ctx context.Context, h kafka.Handler) error {
	c.calls++
	for _, m := range c.msgs {
		if err := h(ctx, m); err != nil {
			return err
		}
	}
	return errors.New("connection reset")
}

func TestRun_RetriesUntilCanceled(t *testing.T) {
	repo := newFakeRepo()
	l := New(repo).WithBackoff(5 * time.Millisecond)
	c := &scriptedConsumer{msgs: []kafka.Message{receiptMsg(t, "r-1")}}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(40 * time.Millisecond)
		cancel()
	}()

	err := l.Run(ctx, c)
	require.ErrorIs(t, err, context.Canceled)
	require.GreaterOrEqual(t, c.calls, 2)
	require.Len(t, repo.receipts, 1)
	require.Contains(t, l.Stats().LastError, "connection reset")
}
