package monitoring

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

type userCounter interface {
	CountUsers(ctx context.Context) (int, error)
}

// StatsReporter periodically logs how many accounts exist. It is the
// only background work this service does.
type StatsReporter struct {
	users userCounter
	cron  *cron.Cron
}

// NewStatsReporter creates a reporter running on the given cron spec.
func NewStatsReporter(users userCounter, spec string) (*StatsReporter, error) {
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, err
	}

	r := &StatsReporter{users: users, cron: cron.New()}
	if _, err := r.cron.AddFunc(spec, r.report); err != nil {
		return nil, err
	}
	return r, nil
}

// Run starts the reporting schedule and logs once immediately.
func (r *StatsReporter) Run() {
	log.Info().Msg("Starting background stats reporter...")
	r.report()
	r.cron.Start()
}

// Stop halts the reporter, waiting for an in-flight report to finish.
func (r *StatsReporter) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("Stopped background stats reporter.")
}

func (r *StatsReporter) report() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := r.users.CountUsers(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Stats reporter: failed to count users")
		return
	}
	log.Info().Int("registered_users", count).Msg("User stats")
}
