package controllers

import (
	"net/http"

	"CareLink360/auth"
	"CareLink360/role"
	"CareLink360/services"
	"CareLink360/util"

	"github.com/gin-gonic/gin"
)

func PendingPrescription(r *gin.Engine) {
	pending := r.Group("/pendingPrescription", auth.JWTAuth())
	{
		pending.POST("/add", auth.RequireRole(role.Assistant), AddPendingPrescription)

		doctorOnly := pending.Group("", auth.RequireRole(role.Doctor))
		doctorOnly.GET("/", ListPendingPrescriptions)
		doctorOnly.GET("/:id", GetPendingPrescription)
		doctorOnly.POST("/approve/:id", ApprovePendingPrescription)
		doctorOnly.DELETE("/del/:id", DeletePendingPrescription)
	}
}

type pendingPrescriptionRequest struct {
	PatientEmail string   `json:"patientEmail" binding:"required,email"`
	DoctorEmail  string   `json:"doctorEmail" binding:"required,email"`
	Drugs        []string `json:"drugs" binding:"required,min=1"`
}

func AddPendingPrescription(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req pendingPrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	pending, err := services.CreatePendingPrescription(c, p.ID, req.PatientEmail, req.DoctorEmail, req.Drugs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(pending))
}

func ListPendingPrescriptions(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	pendings, err := services.ListPendingPrescriptions(c, p.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(pendings))
}

func GetPendingPrescription(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	pendingID, err := objectIDParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	pending, err := services.GetPendingPrescription(c, p.ID, pendingID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(pending))
}

func ApprovePendingPrescription(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	pendingID, err := objectIDParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	prescription, err := services.ApprovePendingPrescription(c, p.ID, pendingID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(prescription))
}

func DeletePendingPrescription(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	pendingID, err := objectIDParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	if err := services.DeletePendingPrescription(c, p.ID, pendingID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Pending prescription deleted successfully"))
}
