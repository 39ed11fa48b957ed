package cmd

import (
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stanhub/blog/internal/cache"
	"github.com/stanhub/blog/internal/config"
	"github.com/stanhub/blog/internal/jobs"
	"github.com/stanhub/blog/internal/store"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "background job commands",
}

func init() {
	jobsCmd.AddCommand(runJobsCommand())
}

func runJobsCommand() *cobra.Command {
	var schedule string
	command := &cobra.Command{
		Use:   "run",
		Short: "Run the background jobs until interrupted",
		Run: func(cmd *cobra.Command, args []string) {
			cnf := config.LoadConfig()
			db := config.GetDb(cnf)
			rdb := config.GetRedis(cnf)

			gs := store.NewGormStore(db)
			counter := cache.NewRedisCounter(rdb)
			sink := jobs.NewCounterSink(schedule, gs, counter)

			executor := jobs.NewTaskExecutor(nil, []jobs.CronJob{sink})
			executor.Run()
			defer executor.Stop()

			logrus.Infof("jobs running, counter sink schedule %s", schedule)

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt)
			<-sig
		},
	}
	command.Flags().StringVarP(&schedule, "schedule", "s", "@every 5m", "counter sink cron schedule")

	return command
}
