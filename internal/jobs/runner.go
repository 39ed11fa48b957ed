package jobs

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	cron "github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

type Job interface {
	Run()
}

// CronJob is a Job running on its own cron schedule.
type CronJob interface {
	Schedule() string
	Job
}

// TaskExecutor drives background jobs through one cron instance. A job
// still running when its next tick fires is skipped, not stacked.
type TaskExecutor struct {
	cron            *cron.Cron
	jobs            []Job
	cronJobs        []CronJob
	runningJobs     mapset.Set[Job]
	runningCronJobs mapset.Set[CronJob]
	muJobs          sync.Mutex
	muCronJobs      sync.Mutex
}

func NewTaskExecutor(jobs []Job, cronJobs []CronJob) *TaskExecutor {
	return &TaskExecutor{
		cron:            cron.New(),
		jobs:            jobs,
		cronJobs:        cronJobs,
		runningJobs:     mapset.NewSet[Job](),
		runningCronJobs: mapset.NewSet[CronJob](),
	}
}

// Run registers all jobs with the cron and starts it. Plain jobs tick
// every second.
func (t *TaskExecutor) Run() {
	for _, job := range t.cronJobs {
		err := t.cron.AddFunc(job.Schedule(), func() {
			t.muCronJobs.Lock()
			if t.runningCronJobs.Contains(job) {
				t.muCronJobs.Unlock()
				logrus.Warn("cron job is already running, skipping this tick")
				return
			}
			t.runningCronJobs.Add(job)
			t.muCronJobs.Unlock()

			defer func() {
				t.muCronJobs.Lock()
				defer t.muCronJobs.Unlock()
				t.runningCronJobs.Remove(job)
			}()

			job.Run()
		})
		if err != nil {
			logrus.Errorf("failed to add job to cron: %v", err)
			panic(err)
		}
	}

	for _, job := range t.jobs {
		err := t.cron.AddFunc("@every 1s", func() {
			t.muJobs.Lock()
			if t.runningJobs.Contains(job) {
				t.muJobs.Unlock()
				return
			}
			t.runningJobs.Add(job)
			t.muJobs.Unlock()

			defer func() {
				t.muJobs.Lock()
				defer t.muJobs.Unlock()
				t.runningJobs.Remove(job)
			}()

			job.Run()
		})
		if err != nil {
			logrus.Errorf("failed to add job to cron: %v", err)
			panic(err)
		}
	}

	t.cron.Start()
}

func (t *TaskExecutor) Stop() {
	logrus.Infof("stopping all jobs")
	t.cron.Stop()
}
