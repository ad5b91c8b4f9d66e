package myscheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/shopbasket/lib/mylog"
	"github.com/MarcGrol/shopbasket/lib/mytime"
)

// localScheduler runs every job on its own goroutine within this process
type localScheduler struct {
	sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	nower  mytime.Nower
	logger mylog.Logger
	jobs   map[string]bool
}

func newLocalScheduler(c context.Context, nower mytime.Nower) (*localScheduler, func(), error) {
	ctx, cancel := context.WithCancel(c)
	s := &localScheduler{
		ctx:    ctx,
		cancel: cancel,
		nower:  nower,
		logger: mylog.New("scheduler"),
		jobs:   map[string]bool{},
	}
	return s, s.stop, nil
}

func (s *localScheduler) RegisterEndpoints(c context.Context, router *mux.Router) {
	// nothing to expose: ticks are internal
}

func (s *localScheduler) RegisterPeriodic(c context.Context, jobUID string, interval time.Duration, start time.Time, job Job) error {
	if interval <= 0 {
		return fmt.Errorf("job %s: interval must be positive, got %s", jobUID, interval)
	}

	s.Lock()
	defer s.Unlock()

	if s.jobs[jobUID] {
		s.logger.Log(c, jobUID, mylog.SeverityInfo, "Job %s already registered", jobUID)
		return nil
	}
	s.jobs[jobUID] = true

	delay := start.Sub(s.nower.Now())
	if delay < 0 {
		delay = 0
	}

	s.wg.Add(1)
	go s.run(jobUID, interval, delay, job)

	s.logger.Log(c, jobUID, mylog.SeverityInfo, "Registered job %s: first run in %s, then every %s", jobUID, delay, interval)

	return nil
}

// run waits interval after a run has finished before starting the next one
func (s *localScheduler) run(jobUID string, interval time.Duration, delay time.Duration, job Job) {
	defer s.wg.Done()

	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-timer.C:
			err := job(s.ctx)
			if err != nil {
				s.logger.Log(s.ctx, jobUID, mylog.SeverityError, "Error running job %s: %s", jobUID, err)
			}
			timer.Reset(interval)
		}
	}
}

func (s *localScheduler) stop() {
	s.cancel()
	s.wg.Wait()
}
