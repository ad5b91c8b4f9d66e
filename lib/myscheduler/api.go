package myscheduler

import (
	"context"
	"os"
	"time"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/shopbasket/lib/myqueue"
	"github.com/MarcGrol/shopbasket/lib/mytime"
)

// Job is executed on every tick; a returned error is logged and retried by the backend
type Job func(c context.Context) error

//go:generate mockgen -source=api.go -package myscheduler -destination scheduler_mock.go Scheduler
type Scheduler interface {
	RegisterPeriodic(c context.Context, jobUID string, interval time.Duration, start time.Time, job Job) error
	RegisterEndpoints(c context.Context, router *mux.Router)
}

func New(c context.Context, queue myqueue.TaskQueuer, nower mytime.Nower) (Scheduler, func(), error) {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		return newQueueScheduler(c, queue, nower)
	}

	return newLocalScheduler(c, nower)
}
