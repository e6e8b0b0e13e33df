package badge

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
)

// PendingCounter is the slice of the ledger the monitor needs
type PendingCounter interface {
	CountPendingOlderThan(ctx context.Context, cutoff time.Time) (int, error)
}

// StaleMonitor periodically reports awards that have been pending longer than
// a threshold. Pending is a valid resting state, so it only logs; it never
// expires or retries an award.
type StaleMonitor struct {
	counter   PendingCounter
	staleAge  time.Duration
	interval  time.Duration
	scheduler gocron.Scheduler
	now       func() time.Time
}

// NewStaleMonitor creates the monitor; call Start to schedule it
func NewStaleMonitor(counter PendingCounter, staleAge, interval time.Duration) (*StaleMonitor, error) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if staleAge <= 0 {
		staleAge = 30 * time.Minute
	}

	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &StaleMonitor{
		counter:   counter,
		staleAge:  staleAge,
		interval:  interval,
		scheduler: scheduler,
		now:       time.Now,
	}, nil
}

// Start schedules the check, running it once immediately
func (m *StaleMonitor) Start() error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(m.interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			m.Check(ctx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return err
	}

	log.Info().
		Dur("interval", m.interval).
		Dur("stale_after", m.staleAge).
		Msg("Starting stale pending award monitor")
	m.scheduler.Start()
	return nil
}

// Stop shuts the scheduler down and waits for a running check
func (m *StaleMonitor) Stop() error {
	log.Info().Msg("Stopping stale pending award monitor")
	return m.scheduler.Shutdown()
}

// Check counts stale pending awards and logs the result
func (m *StaleMonitor) Check(ctx context.Context) (int, error) {
	cutoff := m.now().Add(-m.staleAge)

	count, err := m.counter.CountPendingOlderThan(ctx, cutoff)
	if err != nil {
		log.Error().Err(err).Msg("Failed to count stale pending awards")
		return 0, err
	}

	if count > 0 {
		log.Warn().
			Int("count", count).
			Time("created_before", cutoff).
			Msg("Badge awards still waiting for a mint outcome")
	} else {
		log.Debug().Msg("No stale pending badge awards")
	}
	return count, nil
}
