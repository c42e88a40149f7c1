package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clinicore/patientflow-backend/internal/registry"
)

// DoctorController passes the doctor directory through to the reception
// and triage terminals for their doctor pickers.
type DoctorController struct {
	Directory registry.DoctorDirectory
}

func NewDoctorController(directory registry.DoctorDirectory) *DoctorController {
	return &DoctorController{Directory: directory}
}

// ListAvailableDoctorsHandler returns the doctors available today.
func (dc *DoctorController) ListAvailableDoctorsHandler(c echo.Context) error {
	doctors, err := dc.Directory.ListAvailableDoctors(c.Request().Context())
	if err != nil {
		return respond(c, http.StatusInternalServerError, "Failed to list doctors: "+err.Error(), nil)
	}
	return respond(c, http.StatusOK, "Available doctors", doctors)
}
