package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/clinicore/patientflow-backend/internal/common/middlewares"
	"github.com/clinicore/patientflow-backend/internal/patientflow/controllers"
	"github.com/clinicore/patientflow-backend/pkg/utils"
	"github.com/clinicore/patientflow-backend/ws"
)

// Init registers every route. Station endpoints require a station JWT;
// the board snapshot and the websocket feed stay open for the
// waiting-room displays.
func Init(e *echo.Echo, qc *controllers.QueueController, tc *controllers.TriageController, dc *controllers.DoctorController, hub *ws.Hub, jwtSecret string) {
	auth := middlewares.JWTMiddleware(jwtSecret)

	api := e.Group("/api")

	// Visits
	visits := api.Group("/visits")
	visits.POST("", qc.CreateVisitHandler, auth, middlewares.RequireStation(utils.StationReception))
	visits.POST("/:id/advance", qc.AdvanceVisitHandler, auth, middlewares.RequireStation(utils.StationReception, utils.StationTriage, utils.StationDoctor))
	visits.GET("/:id/triage", tc.GetTriageHandler, auth, middlewares.RequireStation(utils.StationTriage, utils.StationDoctor))
	visits.PUT("/:id/triage", tc.PutTriageHandler, auth, middlewares.RequireStation(utils.StationTriage))

	// Queue
	queue := api.Group("/queue")
	queue.GET("", qc.ListQueueHandler, auth)
	queue.POST("/next", qc.CallNextHandler, auth, middlewares.RequireStation(utils.StationReception, utils.StationTriage, utils.StationDoctor))
	queue.POST("/:entry_id/call", qc.CallSpecificHandler, auth, middlewares.RequireStation(utils.StationReception, utils.StationTriage, utils.StationDoctor))
	queue.POST("/:entry_id/serve", qc.ServeHandler, auth, middlewares.RequireStation(utils.StationReception, utils.StationTriage, utils.StationDoctor))
	queue.POST("/:entry_id/skip", qc.SkipHandler, auth, middlewares.RequireStation(utils.StationReception, utils.StationTriage, utils.StationDoctor))
	queue.GET("/board", qc.BoardHandler) // waiting-room display, no auth

	// Doctor directory for the reception/triage pickers
	api.GET("/doctors", dc.ListAvailableDoctorsHandler, auth, middlewares.RequireStation(utils.StationReception, utils.StationTriage))

	// Board displays subscribe here for push updates
	e.GET("/ws", ws.ServeWS(hub))
}
