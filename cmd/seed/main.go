package main

import (
	"context"
	"log"
	"time"

	"taskplanner/internal/auth"
	"taskplanner/internal/config"
	"taskplanner/internal/db"
	"taskplanner/internal/model"
	"taskplanner/internal/repository"
)

const (
	demoEmail    = "demo@example.com"
	demoPassword = "demo-password-123"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}, &model.Schedule{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	tasks := repository.NewTaskRepository(gormDB)
	schedules := repository.NewScheduleRepository(gormDB)

	if existing, err := users.FindByEmail(ctx, demoEmail); err == nil && existing != nil {
		log.Printf("demo user %s already exists (id=%d), nothing to do", demoEmail, existing.ID)
		return
	}

	hasher := auth.NewPasswordHasher(auth.DefaultBcryptCost)
	hash, err := hasher.Hash(demoPassword)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	user := &model.User{
		Email:        demoEmail,
		FullName:     "Demo User",
		PasswordHash: hash,
		Active:       true,
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatalf("create demo user: %v", err)
	}

	now := time.Now()
	yesterday := now.AddDate(0, 0, -1)
	nextWeek := now.AddDate(0, 0, 7)
	tomorrow := now.AddDate(0, 0, 1)

	seedTasks := []model.Task{
		{Title: "Review pull requests", Priority: model.TaskPriorityHigh, Status: model.TaskStatusPending, DueDate: &yesterday, UserID: user.ID},
		{Title: "Write weekly report", Description: "Summarize sprint progress", Priority: model.TaskPriorityMedium, Status: model.TaskStatusPending, DueDate: &nextWeek, UserID: user.ID},
		{Title: "Book dentist appointment", Priority: model.TaskPriorityLow, Status: model.TaskStatusPending, UserID: user.ID},
	}
	for i := range seedTasks {
		if err := tasks.Create(ctx, &seedTasks[i]); err != nil {
			log.Printf("create task %q: %v", seedTasks[i].Title, err)
		}
	}

	seedSchedules := []model.Schedule{
		{Title: "Team standup", Location: "Meet room A", StartTime: now.Add(2 * time.Hour), Status: model.ScheduleStatusScheduled, ScheduleType: "meeting", UserID: user.ID},
		{Title: "Gym session", StartTime: tomorrow, Status: model.ScheduleStatusScheduled, ScheduleType: "personal", UserID: user.ID},
	}
	for i := range seedSchedules {
		if err := schedules.Create(ctx, &seedSchedules[i]); err != nil {
			log.Printf("create schedule %q: %v", seedSchedules[i].Title, err)
		}
	}

	log.Printf("seeded demo user %s with %d tasks and %d schedules", demoEmail, len(seedTasks), len(seedSchedules))
}
