// Package cleanup は失効済みセッショントークンの定期削除ジョブを提供する。
// 有効期限を過ぎたトークンは署名検証の時点で拒否されるため、
// 失効リストから取り除いても安全である。
package cleanup

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// ExpiredTokenDeleter は有効期限切れの失効レコードを削除するインターフェース。
// repository.RevokedTokenRepositoryが実装する。
type ExpiredTokenDeleter interface {
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// PurgeRecorder は削除件数をメトリクスに記録するインターフェース。
type PurgeRecorder interface {
	RecordTokensPurged(count int64)
}

// CleanupJob は失効リストから有効期限切れのトークンを削除するジョブ。
// 冪等で、削除対象がない場合もエラーにならない。
type CleanupJob struct {
	tokens  ExpiredTokenDeleter
	metrics PurgeRecorder
	logger  *slog.Logger
	now     func() time.Time
}

// NewCleanupJob は新しいCleanupJobを生成する。metricsはnilでもよい。
func NewCleanupJob(tokens ExpiredTokenDeleter, metrics PurgeRecorder, logger *slog.Logger) *CleanupJob {
	return &CleanupJob{
		tokens:  tokens,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Run は有効期限切れの失効レコードを1回削除する。
func (j *CleanupJob) Run(ctx context.Context) error {
	start := time.Now()

	deletedCount, err := j.tokens.DeleteExpired(ctx, j.now())
	if err != nil {
		j.logger.Error("失効トークンのクリーンアップに失敗しました",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("失効トークンのクリーンアップに失敗: %w", err)
	}

	if j.metrics != nil {
		j.metrics.RecordTokensPurged(deletedCount)
	}

	j.logger.Info("失効トークンのクリーンアップが完了しました",
		slog.Int64("deleted_count", deletedCount),
		slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
	)
	return nil
}

// Start は起動直後に1回、その後intervalごとにRunを実行する。
// ctxがキャンセルされるまでブロックする。個々の失敗はログに残して継続する。
func (j *CleanupJob) Start(ctx context.Context, interval time.Duration) {
	_ = j.Run(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = j.Run(ctx)
		}
	}
}
