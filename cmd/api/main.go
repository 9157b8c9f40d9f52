package main

import (
	"io"
	"log"
	"os"

	"github.com/task-manager-app/backend/internal/config"
	"github.com/task-manager-app/backend/internal/logging"
	"github.com/task-manager-app/backend/internal/repository/postgres"
	"github.com/task-manager-app/backend/internal/service"
	transporthttp "github.com/task-manager-app/backend/internal/transport/http"
	"github.com/task-manager-app/backend/internal/transport/mail"
	"github.com/task-manager-app/backend/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("Warning: logstash writer disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
		}
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(cfg.MigrationsURL, cfg.DatabaseURL); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	userRepo := postgres.NewUserRepo(db)
	taskRepo := postgres.NewTaskRepo(db)

	tokens := util.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	mailer := mail.NewPasswordResetMailer(
		cfg.SMTPHost, cfg.SMTPPort,
		cfg.SMTPUsername, cfg.SMTPPassword,
		cfg.SMTPFrom, cfg.FrontendBaseURL,
	)

	authService := service.NewAuthService(userRepo, tokens, mailer, cfg.PasswordResetTTL)
	taskService := service.NewTaskService(taskRepo)

	e := transporthttp.NewRouter(cfg.AllowOrigins)
	transporthttp.RegisterUsers(e, authService, tokens)
	transporthttp.RegisterTasks(e, taskService, tokens)
	transporthttp.RegisterSwagger(e)

	log.Printf("listening on port %s", cfg.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
