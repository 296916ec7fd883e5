package main

import (
	"context"
	"log"
	"time"

	"workshop/internal/datastore"

	"github.com/robfig/cron/v3"
	"github.com/uptrace/bun"
	tele "gopkg.in/telebot.v3"
)

const textReminder = `🔥 Твой марафон ждёт! Загляни в мастерскую и закрой сегодняшний день.`

// ReminderJob nudges users whose marathon run went quiet for a day.
type ReminderJob struct {
	Db    *bun.DB
	Token string
}

func NewReminderJob(db *bun.DB, token string) *ReminderJob {
	return &ReminderJob{
		Db:    db,
		Token: token,
	}
}

func (j *ReminderJob) Start(cronRunner *cron.Cron) {
	schedule := "0 10 * * *"
	if timeline, err := datastore.GetConfigByKey(context.Background(), j.Db, "CRONJOB_TIME_REMINDER"); err == nil && timeline.Value != "" {
		schedule = timeline.Value
	}

	_, err := cronRunner.AddFunc(schedule, j.runScheduledTask)
	log.Println("Reminder cronjob start at:", time.Now().Format("2006-01-02 15:04:05"), "cron:", schedule, err)
}

func (j *ReminderJob) runScheduledTask() {
	ctx := context.Background()
	cutoff := time.Now().Add(-24 * time.Hour)

	progresses, err := datastore.GetStaleMarathonProgress(ctx, j.Db, cutoff)
	if err != nil {
		log.Println(err)
		return
	}
	if len(progresses) == 0 {
		return
	}

	b, err := tele.NewBot(tele.Settings{
		Token:  j.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		log.Println(err)
		return
	}

	notified := map[int64]bool{}
	for _, progress := range progresses {
		if notified[progress.UserID] {
			continue
		}
		notified[progress.UserID] = true

		if _, err := b.Send(&tele.User{ID: progress.UserID}, textReminder); err != nil {
			// blocked bots and deleted accounts are expected here
			log.Println("reminder:", progress.UserID, err)
		}
	}

	log.Println("Reminders sent:", len(notified))
}
