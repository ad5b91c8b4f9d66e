package myscheduler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/shopbasket/lib/mycontext"
	"github.com/MarcGrol/shopbasket/lib/myerrors"
	"github.com/MarcGrol/shopbasket/lib/myhttp"
	"github.com/MarcGrol/shopbasket/lib/mylog"
	"github.com/MarcGrol/shopbasket/lib/myqueue"
	"github.com/MarcGrol/shopbasket/lib/mystore"
	"github.com/MarcGrol/shopbasket/lib/mytime"
)

type Schedule struct {
	UID             string
	IntervalSeconds int64
	NextRunAt       time.Time
	LastRunAt       time.Time
	LastError       string `datastore:",noindex"`
}

func (s Schedule) Interval() time.Duration {
	return time.Duration(s.IntervalSeconds) * time.Second
}

// alive reports whether the chain of tasks is still expected to deliver the next run
func (s Schedule) alive(now time.Time) bool {
	return !now.After(s.NextRunAt.Add(s.Interval()))
}

func (s Schedule) runAt() string {
	return strconv.FormatInt(s.NextRunAt.Unix(), 10)
}

// followingRun is the first run after now on the grid of previous plus whole intervals
func followingRun(previous time.Time, interval time.Duration, now time.Time) time.Time {
	next := previous.Add(interval)
	if !next.After(now) {
		missed := now.Sub(next)/interval + 1
		next = next.Add(missed * interval)
	}
	return next
}

// queueScheduler chains tasks: every run enqueues the next one
type queueScheduler struct {
	sync.Mutex
	schedules mystore.Store[Schedule]
	queue     myqueue.TaskQueuer
	nower     mytime.Nower
	logger    mylog.Logger
	jobs      map[string]Job
}

func newQueueScheduler(c context.Context, queue myqueue.TaskQueuer, nower mytime.Nower) (*queueScheduler, func(), error) {
	store, storeCleanup, err := mystore.New[Schedule](c)
	if err != nil {
		return nil, nil, err
	}

	return newQueueSchedulerWithStore(store, queue, nower), storeCleanup, nil
}

func newQueueSchedulerWithStore(store mystore.Store[Schedule], queue myqueue.TaskQueuer, nower mytime.Nower) *queueScheduler {
	return &queueScheduler{
		schedules: store,
		queue:     queue,
		nower:     nower,
		logger:    mylog.New("scheduler"),
		jobs:      map[string]Job{},
	}
}

func (s *queueScheduler) RegisterEndpoints(c context.Context, router *mux.Router) {
	router.HandleFunc("/_scheduler/{jobUID}", s.runJobPage()).Methods("PUT")
}

func (s *queueScheduler) RegisterPeriodic(c context.Context, jobUID string, interval time.Duration, start time.Time, job Job) error {
	if interval < time.Second {
		return fmt.Errorf("job %s: interval must be at least a second, got %s", jobUID, interval)
	}

	s.Lock()
	s.jobs[jobUID] = job
	s.Unlock()

	return s.schedules.RunInTransaction(c, func(c context.Context) error {
		existing, exists, err := s.schedules.Get(c, jobUID)
		if err != nil {
			return fmt.Errorf("error fetching schedule %s: %s", jobUID, err)
		}
		now := s.nower.Now()
		if exists && existing.Interval() == interval {
			if existing.alive(now) {
				s.logger.Log(c, jobUID, mylog.SeverityInfo, "Job %s already scheduled at %s", jobUID, existing.NextRunAt)
				return nil
			}
			s.logger.Log(c, jobUID, mylog.SeverityWarn, "Job %s stalled since %s (last error: %q): restarting", jobUID, existing.NextRunAt, existing.LastError)
		}

		nextRunAt := start
		if nextRunAt.Before(now) {
			nextRunAt = now
		}

		return s.scheduleNext(c, Schedule{
			UID:             jobUID,
			IntervalSeconds: int64(interval / time.Second),
			NextRunAt:       nextRunAt,
			LastRunAt:       existing.LastRunAt,
			LastError:       existing.LastError,
		})
	})
}

func (s *queueScheduler) scheduleNext(c context.Context, schedule Schedule) error {
	err := s.schedules.Put(c, schedule.UID, schedule)
	if err != nil {
		return fmt.Errorf("error storing schedule %s: %s", schedule.UID, err)
	}

	err = s.queue.Enqueue(c, myqueue.Task{
		UID:            fmt.Sprintf("%s_%d", schedule.UID, schedule.NextRunAt.Unix()),
		WebhookURLPath: fmt.Sprintf("/_scheduler/%s?runAt=%s", schedule.UID, schedule.runAt()),
		Payload:        []byte{},
		ScheduleTime:   schedule.NextRunAt,
	})
	if err != nil {
		return fmt.Errorf("error enqueueing run of %s: %s", schedule.UID, err)
	}

	s.logger.Log(c, schedule.UID, mylog.SeverityInfo, "Scheduled next run of %s at %s", schedule.UID, schedule.NextRunAt)

	return nil
}

func (s *queueScheduler) runJobPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		errorWriter := myhttp.NewWriter(s.logger)

		jobUID := mux.Vars(r)["jobUID"]
		runAt := r.URL.Query().Get("runAt")

		err := s.runJob(c, jobUID, runAt)
		if err != nil {
			errorWriter.WriteError(c, w, 1, err)
			return
		}

		errorWriter.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: fmt.Sprintf("Successfully ran job %s", jobUID),
		})
	}
}

// runJob executes the run planned at runAt; an empty runAt runs the job regardless of the plan
func (s *queueScheduler) runJob(c context.Context, jobUID string, runAt string) error {
	s.Lock()
	job, found := s.jobs[jobUID]
	s.Unlock()
	if !found {
		return myerrors.NewNotFoundErrorf("job %s is not registered", jobUID)
	}

	schedule, exists, err := s.schedules.Get(c, jobUID)
	if err != nil {
		return myerrors.NewInternalError(fmt.Errorf("error fetching schedule %s: %s", jobUID, err))
	}
	if !exists {
		return myerrors.NewNotFoundErrorf("job %s has no schedule", jobUID)
	}
	if runAt != "" && runAt != schedule.runAt() {
		// redelivered task or a superseded chain
		s.logger.Log(c, jobUID, mylog.SeverityInfo, "Ignoring run %s of %s: next run is planned at %s", runAt, jobUID, schedule.NextRunAt)
		return nil
	}

	err = job(c)
	if err != nil {
		schedule.LastError = err.Error()
		putErr := s.schedules.Put(c, jobUID, schedule)
		if putErr != nil {
			s.logger.Log(c, jobUID, mylog.SeverityWarn, "Error recording failure of %s: %s", jobUID, putErr)
		}
		// no next run is enqueued: the failing task is retried instead
		return myerrors.NewInternalError(fmt.Errorf("error running job %s: %s", jobUID, err))
	}

	return s.schedules.RunInTransaction(c, func(c context.Context) error {
		current, exists, err := s.schedules.Get(c, jobUID)
		if err != nil {
			return myerrors.NewInternalError(fmt.Errorf("error fetching schedule %s: %s", jobUID, err))
		}
		if exists && !current.NextRunAt.Equal(schedule.NextRunAt) {
			// a concurrent delivery already planned the next run
			return nil
		}

		now := s.nower.Now()
		schedule.LastRunAt = now
		schedule.LastError = ""
		schedule.NextRunAt = followingRun(schedule.NextRunAt, schedule.Interval(), now)
		err = s.scheduleNext(c, schedule)
		if err != nil {
			return myerrors.NewInternalError(err)
		}
		return nil
	})
}
