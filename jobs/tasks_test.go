package jobs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/meridian-pos/meridian-pos/internal/persist"
	"github.com/meridian-pos/meridian-pos/internal/store"
)

type memoryBlobStore struct {
	version int64
	blob    []byte
	saveErr error
}

func (m *memoryBlobStore) Save(ctx context.Context, version int64, blob []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if version > m.version {
		m.version = version
		m.blob = append([]byte(nil), blob...)
	}
	return nil
}

func (m *memoryBlobStore) Load(ctx context.Context) ([]byte, error) {
	if m.blob == nil {
		return nil, persist.ErrNoSnapshot
	}
	return m.blob, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSnapshotPersistRoundTrip(t *testing.T) {
	blob, err := store.Encode(store.Seed(), 4)
	require.NoError(t, err)

	task, err := NewSnapshotPersistTask(SnapshotPayload{Version: 4, Blob: blob})
	require.NoError(t, err)
	require.Equal(t, TaskSnapshotPersist, task.Type())

	blobs := &memoryBlobStore{}
	handler := NewSnapshotPersistHandler(blobs, testLogger(), NewMetrics(prometheus.NewRegistry()))
	require.NoError(t, handler(context.Background(), task))
	require.Equal(t, int64(4), blobs.version)

	restored := store.Decode(blobs.blob)
	require.Equal(t, store.Seed(), restored)
}

func TestSnapshotPersistMalformedPayloadSkipsRetry(t *testing.T) {
	handler := NewSnapshotPersistHandler(&memoryBlobStore{}, testLogger(), NewMetrics(prometheus.NewRegistry()))
	err := handler(context.Background(), asynq.NewTask(TaskSnapshotPersist, []byte("{broken")))
	require.ErrorIs(t, err, asynq.SkipRetry)
}

func TestSnapshotPersistPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("backend down")
	handler := NewSnapshotPersistHandler(&memoryBlobStore{saveErr: boom}, testLogger(), NewMetrics(prometheus.NewRegistry()))

	task, err := NewSnapshotPersistTask(SnapshotPayload{Version: 1, Blob: []byte(`{}`)})
	require.NoError(t, err)
	require.ErrorIs(t, handler(context.Background(), task), boom)
}

func TestDailyDigest(t *testing.T) {
	blobs := &memoryBlobStore{}
	handler := NewDailyDigestHandler(blobs, testLogger(), NewMetrics(prometheus.NewRegistry()))

	// No snapshot yet is not an error; the digest simply skips.
	require.NoError(t, handler(context.Background(), NewDailyDigestTask()))

	blob, err := store.Encode(store.Seed(), 1)
	require.NoError(t, err)
	require.NoError(t, blobs.Save(context.Background(), 1, blob))
	require.NoError(t, handler(context.Background(), NewDailyDigestTask()))
}
