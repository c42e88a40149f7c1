package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/patientflow-backend/internal/patientflow/models"
	"github.com/clinicore/patientflow-backend/internal/patientflow/services"
)

// TriageController exposes the triage record operations to the triage and
// doctor stations.
type TriageController struct {
	Service *services.QueueService
}

func NewTriageController(service *services.QueueService) *TriageController {
	return &TriageController{Service: service}
}

// GetTriageHandler returns the triage record for a visit; data is null
// when triage has not been recorded yet.
func (tc *TriageController) GetTriageHandler(c echo.Context) error {
	record, err := tc.Service.GetTriage(c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	if record == nil {
		return respond(c, http.StatusOK, "No triage record", nil)
	}
	return respond(c, http.StatusOK, "Triage record", record)
}

// PutTriageHandler overwrites the triage record for a visit.
func (tc *TriageController) PutTriageHandler(c echo.Context) error {
	var record models.TriageRecord
	if err := c.Bind(&record); err != nil {
		return respond(c, http.StatusBadRequest, "invalid request body: "+err.Error(), nil)
	}

	stored, err := tc.Service.PutTriage(c.Param("id"), record)
	if err != nil {
		return respondError(c, err)
	}
	return respond(c, http.StatusOK, "Triage record saved", stored)
}
