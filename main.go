package main

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/UnAfraid/teamboard/pkg/api"
	"github.com/UnAfraid/teamboard/pkg/auth"
	"github.com/UnAfraid/teamboard/pkg/config"
	"github.com/UnAfraid/teamboard/pkg/datastore"
	"github.com/UnAfraid/teamboard/pkg/datastore/bbolt"
	"github.com/UnAfraid/teamboard/pkg/dbx"
	"github.com/UnAfraid/teamboard/pkg/loaders"
	"github.com/UnAfraid/teamboard/pkg/manage"
	"github.com/UnAfraid/teamboard/pkg/meeting"
	"github.com/UnAfraid/teamboard/pkg/meetingmember"
	"github.com/UnAfraid/teamboard/pkg/metrics"
	"github.com/UnAfraid/teamboard/pkg/notification"
	"github.com/UnAfraid/teamboard/pkg/organization"
	"github.com/UnAfraid/teamboard/pkg/subscription"
	"github.com/UnAfraid/teamboard/pkg/team"
	"github.com/UnAfraid/teamboard/pkg/teammember"
	"github.com/UnAfraid/teamboard/pkg/template"
	"github.com/UnAfraid/teamboard/pkg/user"
)

const (
	appName = "teamboard"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339,
	})

	conf, err := config.Load(appName)
	if err != nil {
		logrus.
			WithError(err).
			Fatal("failed to initialize config")
		return
	}

	level, err := conf.Level()
	if err != nil {
		logrus.
			WithError(err).
			Warn("falling back to info log level")
	}
	logrus.SetLevel(level)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGTERM, syscall.SIGINT)

	if _, err := maxprocs.Set(maxprocs.Logger(logrus.Printf)); err != nil {
		logrus.
			WithError(err).
			Error("failed to set maxprocs")
		return
	}

	loaderObserver, err := metrics.NewLoaderObserver(prometheus.DefaultRegisterer)
	if err != nil {
		logrus.
			WithError(err).
			Fatal("failed to register loader metrics")
		return
	}

	debugServer := &http.Server{
		Addr:    conf.DebugServer.Address(),
		Handler: newDebugHandler(conf.DebugServer.MetricsPath),
	}

	if conf.DebugServer.Enabled {
		go func() {
			logrus.WithField("address", conf.DebugServer.Address()).Info("Starting serving debug server")
			if err := debugServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logrus.
					WithError(err).
					Fatal("Failed to serve debug")
				return
			}
		}()
	}

	logrus.Info("initializing database..")
	db, err := datastore.NewBBoltDB(conf.BoltDB.Path, conf.BoltDB.Timeout)
	if err != nil {
		logrus.
			WithError(err).
			Fatal("failed initialize datastore")
		return
	}
	defer func() {
		if err := db.Close(); err != nil {
			logrus.
				WithError(err).
				Error("failed to close datastore")
		}
	}()

	jwtSecretBytes, err := base64.StdEncoding.DecodeString(conf.JwtSecret)
	if err != nil {
		logrus.
			WithError(err).
			Fatal("failed to base64 decode jwt secret")
		return
	}

	transactionScoper := dbx.NewBBoltTransactionScoper(db)
	subscriptionImpl := subscription.NewInMemorySubscription()

	userService := user.NewService(bbolt.NewUserRepository(db))
	organizationService := organization.NewService(bbolt.NewOrganizationRepository(db))
	teamService := team.NewService(bbolt.NewTeamRepository(db), subscriptionImpl)
	teamMemberService := teammember.NewService(bbolt.NewTeamMemberRepository(db))
	meetingService := meeting.NewService(bbolt.NewMeetingRepository(db))
	meetingMemberService := meetingmember.NewService(bbolt.NewMeetingMemberRepository(db))
	templateService := template.NewService(bbolt.NewTemplateRepository(db))
	notificationService := notification.NewService(bbolt.NewNotificationRepository(db))

	loaderTable, err := loaders.New(loaders.Config{
		UserService:          userService,
		OrganizationService:  organizationService,
		TeamService:          teamService,
		TeamMemberService:    teamMemberService,
		MeetingService:       meetingService,
		MeetingMemberService: meetingMemberService,
		TemplateService:      templateService,
		MeetingSource:        bbolt.NewLegacyTableSource[meeting.Meeting](db, bbolt.MeetingTable),
	})
	if err != nil {
		logrus.
			WithError(err).
			Fatal("failed to initialize loaders")
		return
	}

	authService := auth.NewService(jwtSecretBytes, conf.JwtDuration)

	manageService := manage.NewService(
		transactionScoper,
		loaderTable,
		userService,
		organizationService,
		teamService,
		teamMemberService,
		meetingService,
		meetingMemberService,
		templateService,
		notificationService,
	)

	if conf.Initial.SeedDemoData {
		seedDemoData(manageService, authService)
	}

	router := api.NewRouter(
		conf,
		authService,
		loaderTable,
		loaderObserver,
		teamService,
		manageService,
	)

	httpServer := http.Server{
		Addr:    conf.HttpServer.Address(),
		Handler: router,
	}

	go func() {
		logrus.WithField("address", conf.HttpServer.Address()).Info("Starting serving http server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.
				WithError(err).
				Fatal("failed to listen and serve http server")
		}
	}()

	<-shutdownChan
	logrus.Info("Shutting down")

	logrus.Info("Shutting down http server")
	httpServerShutdownTimeoutCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(httpServerShutdownTimeoutCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.
			WithError(err).
			Fatal("failed to shutdown http server")
		return
	}

	if conf.DebugServer.Enabled {
		logrus.Info("Shutting down debug http server")
		debugHttpServerShutdownTimeoutCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := debugServer.Shutdown(debugHttpServerShutdownTimeoutCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.
				WithError(err).
				Fatal("failed to shutdown debug server")
			return
		}
	}
}

func newDebugHandler(metricsPath string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(metricsPath, promhttp.Handler())
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}

func seedDemoData(manageService manage.Service, authService auth.Service) {
	seed, err := manageService.Seed(context.Background())
	if errors.Is(err, manage.ErrAlreadySeeded) {
		logrus.Info("demo data is already seeded")
		return
	}
	if err != nil {
		logrus.
			WithError(err).
			Fatal("failed to seed demo data")
		return
	}

	for _, u := range seed.Users {
		tokenString, expiresAt, err := authService.Sign(u.Id)
		if err != nil {
			logrus.
				WithError(err).
				Error("failed to sign demo token")
			continue
		}
		logrus.
			WithField("email", u.Email).
			WithField("expiresAt", expiresAt).
			WithField("token", tokenString).
			Info("demo user token")
	}
}
