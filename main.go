package main

import (
	"os"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/clinicore/patientflow-backend/config"
	"github.com/clinicore/patientflow-backend/internal/common/middlewares"
	"github.com/clinicore/patientflow-backend/internal/patientflow/controllers"
	"github.com/clinicore/patientflow-backend/internal/patientflow/sequencer"
	"github.com/clinicore/patientflow-backend/internal/patientflow/services"
	"github.com/clinicore/patientflow-backend/internal/patientflow/store"
	"github.com/clinicore/patientflow-backend/internal/registry"
	"github.com/clinicore/patientflow-backend/internal/routes"
	"github.com/clinicore/patientflow-backend/pkg/storage/mariadb"
	"github.com/clinicore/patientflow-backend/ws"
)

func main() {
	cfg := config.LoadConfig()
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	// Master records live in MariaDB; without a configured database the
	// server runs against an in-memory registry (development mode).
	var patients registry.PatientRegistry
	var doctors registry.DoctorDirectory
	if cfg.DBHost != "" {
		db, err := mariadb.Connect(cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to database")
		}
		reg := registry.NewSQLRegistry(db)
		patients, doctors = reg, reg
	} else {
		logger.Warn().Msg("no database configured, using in-memory registry")
		mem := registry.NewMemoryRegistry()
		patients, doctors = mem, mem
	}

	hub := ws.NewHub(logger)
	go hub.Run()

	seq := sequencer.New()
	queueStore := store.NewQueueStore(seq)
	visitStore := store.NewVisitStore()
	triageStore := store.NewTriageStore()
	service := services.NewQueueService(visitStore, queueStore, triageStore, patients, hub, logger)

	qc := controllers.NewQueueController(service)
	tc := controllers.NewTriageController(service)
	dc := controllers.NewDoctorController(doctors)

	e := echo.New()
	e.HideBanner = true
	e.Use(middlewares.RequestLogger(logger))
	routes.Init(e, qc, tc, dc, hub, cfg.JWTSecret)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}
	logger.Info().Str("port", port).Msg("patient flow server listening")
	if err := e.Start(":" + port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
