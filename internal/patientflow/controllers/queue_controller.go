package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/patientflow-backend/internal/patientflow/models"
	"github.com/clinicore/patientflow-backend/internal/patientflow/services"
)

// QueueController exposes the queue facade to the station terminals.
type QueueController struct {
	Service *services.QueueService
}

func NewQueueController(service *services.QueueService) *QueueController {
	return &QueueController{Service: service}
}

type createVisitRequest struct {
	PatientID string `json:"patient_id"`
}

type advanceVisitRequest struct {
	ToStage  models.Stage `json:"to_stage"`
	DoctorID string       `json:"doctor_id"`
}

// CreateVisitHandler registers a visit and returns it with its reception
// token.
func (qc *QueueController) CreateVisitHandler(c echo.Context) error {
	var req createVisitRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid request body: "+err.Error(), nil)
	}
	if req.PatientID == "" {
		return respond(c, http.StatusBadRequest, "patient_id is required", nil)
	}

	visit, entry, err := qc.Service.CreateVisit(c.Request().Context(), req.PatientID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusCreated, "Visit created", map[string]interface{}{
		"visit": visit,
		"entry": entry,
	})
}

// AdvanceVisitHandler moves a visit to its next stage.
func (qc *QueueController) AdvanceVisitHandler(c echo.Context) error {
	visitID := c.Param("id")
	var req advanceVisitRequest
	if err := c.Bind(&req); err != nil {
		return respond(c, http.StatusBadRequest, "invalid request body: "+err.Error(), nil)
	}
	if req.ToStage == "" {
		return respond(c, http.StatusBadRequest, "to_stage is required", nil)
	}

	entry, err := qc.Service.Advance(c.Request().Context(), visitID, req.ToStage, req.DoctorID)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Visit advanced", entry)
}

// ListQueueHandler returns the ordered active entries for a stage.
func (qc *QueueController) ListQueueHandler(c echo.Context) error {
	stage := models.Stage(c.QueryParam("stage"))
	if stage == "" {
		return respond(c, http.StatusBadRequest, "stage parameter is required", nil)
	}

	entries, err := qc.Service.ListQueue(stage, c.QueryParam("doctor_id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Queue listed", entries)
}

// CallNextHandler claims the next waiting entry for the scope.
func (qc *QueueController) CallNextHandler(c echo.Context) error {
	stage := models.Stage(c.QueryParam("stage"))
	if stage == "" {
		return respond(c, http.StatusBadRequest, "stage parameter is required", nil)
	}

	entry, err := qc.Service.CallNext(stage, c.QueryParam("doctor_id"))
	if err != nil {
		return respondError(c, err)
	}
	if entry == nil {
		return respond(c, http.StatusOK, "No waiting entries", nil)
	}
	return respond(c, http.StatusOK, "Entry called", entry)
}

// CallSpecificHandler claims an explicitly chosen waiting entry.
func (qc *QueueController) CallSpecificHandler(c echo.Context) error {
	entry, err := qc.Service.CallSpecific(c.Param("entry_id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Entry called", entry)
}

// ServeHandler retires a called entry.
func (qc *QueueController) ServeHandler(c echo.Context) error {
	entry, err := qc.Service.Serve(c.Param("entry_id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Entry served", entry)
}

// SkipHandler removes a waiting or called entry from its queue.
func (qc *QueueController) SkipHandler(c echo.Context) error {
	entry, err := qc.Service.Skip(c.Param("entry_id"))
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Entry skipped", entry)
}

// BoardHandler returns the waiting-room snapshot for a stage. It is not
// authenticated; the board display polls it freely.
func (qc *QueueController) BoardHandler(c echo.Context) error {
	stage := models.Stage(c.QueryParam("stage"))
	if stage == "" {
		return respond(c, http.StatusBadRequest, "stage parameter is required", nil)
	}

	board, err := qc.Service.Board(stage)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Board snapshot", board)
}
