// Package background runs the console's periodic maintenance jobs.
package background

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"storeadmin/internal/imaging"
)

// JobScheduler manages the periodic jobs of the console process.
type JobScheduler struct {
	scheduler gocron.Scheduler
	previews  imaging.PreviewStore
	interval  time.Duration
}

// NewJobScheduler wires the preview reaper. Preview handles have a TTL; the
// reaper drops the ones their owners never released (closed dialogs, crashed
// sessions) so handles do not accumulate for the life of the process.
func NewJobScheduler(previews imaging.PreviewStore, interval time.Duration) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler: scheduler,
		previews:  previews,
		interval:  interval,
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(js.reapPreviews, context.Background()),
		gocron.WithName("preview-reaper"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, err
	}

	return js, nil
}

func (js *JobScheduler) Start() {
	log.Printf("Starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Printf("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) reapPreviews(ctx context.Context) {
	reaped, err := js.previews.ReapExpired(ctx)
	if err != nil {
		log.Printf("WARN: preview reap failed: %v", err)
		return
	}
	if reaped > 0 {
		log.Printf("Reaped %d expired preview handle(s)", reaped)
	}
}
