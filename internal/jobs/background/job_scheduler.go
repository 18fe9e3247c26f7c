package background

import (
	"context"
	"sync"
	"time"

	"flexgestor/pkg/database"

	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/gommon/log"
)

const probeTimeout = 5 * time.Second

// Pinger is a dependency whose connectivity can be probed
type Pinger interface {
	Ping(ctx context.Context) error
}

// probe pairs a dependency with the health flag its result is written to
type probe struct {
	name   string
	target Pinger
	health *database.Health
}

// JobScheduler runs the periodic connectivity probes that feed readiness
type JobScheduler struct {
	scheduler gocron.Scheduler
	interval  time.Duration
	probes    []probe
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

// NewJobScheduler creates a scheduler probing the database every interval
func NewJobScheduler(interval time.Duration, db Pinger, dbHealth *database.Health) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler: scheduler,
		interval:  interval,
		probes:    []probe{{name: "database", target: db, health: dbHealth}},
		jobs:      make(map[string]gocron.Job),
	}
	return js, nil
}

// WithProbe adds another dependency to the health probe
func (js *JobScheduler) WithProbe(name string, target Pinger, health *database.Health) *JobScheduler {
	js.probes = append(js.probes, probe{name: name, target: target, health: health})
	return js
}

// Start registers the jobs and starts the scheduler
func (js *JobScheduler) Start() error {
	if err := js.registerJobs(); err != nil {
		return err
	}
	log.Info("Starting background job scheduler")
	js.scheduler.Start()
	return nil
}

// Stop stops the job scheduler
func (js *JobScheduler) Stop() error {
	log.Info("Stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	healthJob, err := js.scheduler.NewJob(
		gocron.DurationJob(js.interval),
		gocron.NewTask(js.ProbeOnce, context.Background()),
		gocron.WithName("health-probe"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}

	js.mu.Lock()
	js.jobs["health-probe"] = healthJob
	js.mu.Unlock()

	log.Infof("Registered %d background jobs", len(js.jobs))
	return nil
}

// ProbeOnce pings every dependency and records the outcome. State changes are logged.
func (js *JobScheduler) ProbeOnce(ctx context.Context) {
	for _, p := range js.probes {
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		err := p.target.Ping(probeCtx)
		cancel()

		healthy := err == nil
		if healthy != p.health.Healthy() {
			if healthy {
				log.Infof("%s connectivity restored", p.name)
			} else {
				log.Errorf("%s probe failed: %v", p.name, err)
			}
		}
		p.health.Set(healthy)
	}
}
