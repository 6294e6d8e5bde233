package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/meridian-pos/meridian-pos/internal/persist"
	"github.com/meridian-pos/meridian-pos/internal/reports"
	"github.com/meridian-pos/meridian-pos/internal/store"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSnapshotPersist carries an encoded engine snapshot to the blob store.
	TaskSnapshotPersist = "snapshot:persist"
	// TaskDailyDigest recomputes the sales digest from the last persisted snapshot.
	TaskDailyDigest = "report:daily_digest"
)

// SnapshotPayload is the body of a TaskSnapshotPersist task.
type SnapshotPayload struct {
	Version int64           `json:"version"`
	Blob    json.RawMessage `json:"blob"`
}

// NewSnapshotPersistTask constructs the task for one snapshot version.
func NewSnapshotPersistTask(payload SnapshotPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSnapshotPersist, data), nil
}

// NewSnapshotPersistHandler writes delivered snapshots to the blob store.
func NewSnapshotPersistHandler(blobs persist.SnapshotStore, logger *slog.Logger, metrics *Metrics) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		tracker := metrics.Track("snapshot_persist")
		var payload SnapshotPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return tracker.End(asynq.SkipRetry)
		}
		if err := blobs.Save(ctx, payload.Version, payload.Blob); err != nil {
			return tracker.End(err)
		}
		logger.Debug("snapshot persisted", slog.Int64("version", payload.Version))
		return tracker.End(nil)
	}
}

// NewDailyDigestTask constructs the nightly digest task.
func NewDailyDigestTask() *asynq.Task {
	return asynq.NewTask(TaskDailyDigest, nil)
}

// NewDailyDigestHandler logs the seven day trend and valuation computed from
// the last persisted snapshot.
func NewDailyDigestHandler(blobs persist.SnapshotStore, logger *slog.Logger, metrics *Metrics) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		tracker := metrics.Track("daily_digest")
		blob, err := blobs.Load(ctx)
		if err != nil {
			if errors.Is(err, persist.ErrNoSnapshot) {
				logger.Info("daily digest skipped, no snapshot persisted yet")
				return tracker.End(nil)
			}
			return tracker.End(err)
		}
		state := store.Decode(blob)
		trend := reports.SevenDayTrend(state, time.Now())
		logger.Info("daily sales digest",
			slog.Float64("valuation", reports.InventoryValuation(state)),
			slog.Int("low_stock", len(reports.LowStock(state))),
			slog.Float64("today", trend[len(trend)-1].Total))
		for _, day := range trend {
			logger.Info("digest day", slog.String("date", day.Date), slog.Float64("total", day.Total))
		}
		return tracker.End(nil)
	}
}
