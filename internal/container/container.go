package container

import (
	"context"
	"log"
	"os"

	"github.com/okayr/okayr-api/internal/admin"
	"github.com/okayr/okayr-api/internal/auth"
	"github.com/okayr/okayr-api/internal/calendar"
	"github.com/okayr/okayr-api/internal/config"
	"github.com/okayr/okayr-api/internal/cycle"
	"github.com/okayr/okayr-api/internal/mail"
	"github.com/okayr/okayr-api/internal/notify"
	"github.com/okayr/okayr-api/internal/objective"
	"github.com/okayr/okayr-api/internal/team"
	"github.com/okayr/okayr-api/internal/user"
)

type Container struct {
	UserContainer      *user.UserContainer
	ObjectiveContainer *objective.Container
	TeamContainer      *team.TeamContainer
	CycleContainer     *cycle.CycleContainer
	CalendarContainer  *calendar.Container
	AdminContainer     *admin.Container
}

func New() *Container {
	config.Init()
	auth.Init()
	config.InitCrypto()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	if err := config.DB.AutoMigrate(
		&user.User{},
		&team.Team{},
		&team.Member{},
		&team.TeamMembership{},
		&team.InvitationLink{},
		&cycle.OkrCycle{},
		&cycle.ActiveOkrCycle{},
		&objective.Objective{},
		&objective.KeyResult{},
		&objective.Initiative{},
		&objective.Task{},
		&objective.Risk{},
		&objective.KeyResultAssignee{},
		&calendar.CalendarSettings{},
		&admin.AuditLog{},
	); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	mailer, err := mail.NewSMTPMailer()
	if err != nil {
		config.Logger().WithError(err).Warn("SMTP not configured, emails disabled")
		mailer = mail.NewNoopMailer()
	}

	notifier := notify.NewLogNotifier()

	objRepo := objective.NewRepository(config.DB)

	teamContainer := team.NewTeamContainer(config.DB, objRepo, notifier)
	cycleContainer := cycle.NewCycleContainer(config.DB, objRepo, notifier)
	objectiveContainer := objective.NewContainer(config.DB, cycleContainer.Repo, teamContainer.Repo, notifier)
	calendarContainer := calendar.NewContainer(config.DB, notifier)
	userContainer := user.NewUserContainer(config.DB, mailer)
	adminContainer := admin.NewContainer(config.DB, userContainer.Repo, mailer)

	return &Container{
		UserContainer:      userContainer,
		ObjectiveContainer: objectiveContainer,
		TeamContainer:      teamContainer,
		CycleContainer:     cycleContainer,
		CalendarContainer:  calendarContainer,
		AdminContainer:     adminContainer,
	}
}
