package syncer

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"prayertrack/internal/providers"
	"prayertrack/internal/structures"
)

// Trigger names for reconciliation runs.
const (
	TriggerStart    = "start"
	TriggerInterval = "interval"
	TriggerFocus    = "focus"
	TriggerOnline   = "online"
	TriggerManual   = "manual"
)

// Scheduler drives the synchronizer: a periodic gron schedule plus
// Kick for event-driven runs (focus regained, connectivity restored).
// Runs never overlap; a kick arriving mid-run is dropped, the next
// interval catches up.
type Scheduler struct {
	config  *structures.Config
	logger  providers.Logger
	syncer  *Synchronizer
	metrics providers.MetricsProviderInterface

	cron  *gron.Cron
	kicks chan string
	done  chan struct{}
	opsMu sync.Mutex
}

func NewScheduler(config *structures.Config, logger providers.Logger, syncer *Synchronizer, metrics providers.MetricsProviderInterface) *Scheduler {
	return &Scheduler{
		config:  config,
		logger:  logger,
		syncer:  syncer,
		metrics: metrics,
		kicks:   make(chan string, 1),
		done:    make(chan struct{}),
	}
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(s.config.Sync.Interval), func() {
		s.run(TriggerInterval)
	})
	s.cron.Start()

	go s.kickLoop()

	s.run(TriggerStart)
}

func (s *Scheduler) kickLoop() {
	for {
		select {
		case trigger := <-s.kicks:
			s.run(trigger)
		case <-s.done:
			return
		}
	}
}

// Kick requests an out-of-band reconciliation. Non-blocking: when a
// run is already queued the kick is dropped.
func (s *Scheduler) Kick(trigger string) {
	select {
	case s.kicks <- trigger:
	default:
	}
}

func (s *Scheduler) run(trigger string) {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	start := time.Now()
	s.metrics.IncSyncRuns(trigger)

	if err := s.syncer.Reconcile(); err != nil {
		s.logger.Errorf(providers.TypeSync, "Reconciliation (%s) failed: %s", trigger, err)
		return
	}

	s.metrics.ObserveReconcileDuration(time.Since(start))
	s.logger.Debugf(providers.TypeSync, "Reconciliation (%s) done in %s", trigger, time.Since(start))
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
	close(s.done)
}
