// services/scheduler.go
package services

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

const sweepBatchSize = 20

// StartReportSweeper archives reports of completed matches that missed their
// upload at completion time. The caller owns the returned scheduler and must
// Shutdown it.
func StartReportSweeper(ctx context.Context, reports *ReportService, every time.Duration) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, eris.Wrap(err, "create scheduler")
	}

	_, err = sched.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(func() {
			n, err := reports.ArchivePending(ctx, sweepBatchSize)
			if err != nil {
				log.Error().Err(err).Msg("[Sweeper] listing unarchived matches failed")
				return
			}
			if n > 0 {
				log.Info().Int("archived", n).Msg("[Sweeper] archived match reports")
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, eris.Wrap(err, "register report sweep job")
	}

	sched.Start()
	return sched, nil
}
