package controllers

import (
	"net/http"

	"CareLink360/auth"
	"CareLink360/role"
	"CareLink360/services"
	"CareLink360/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func Prescription(r *gin.Engine) {
	pre := r.Group("/pre", auth.JWTAuth(), auth.RequireRole(role.Doctor))
	{
		pre.POST("/add", CreatePrescription)
		pre.GET("/:id", GetPrescription)
		pre.PUT("/update/:id", UpdatePrescription)
		pre.DELETE("/del/:id", DeletePrescription)
		pre.POST("/drug/:id", AddDrugToPrescription)
		pre.DELETE("/drug/:id", RemoveDrugFromPrescription)
	}
}

type createPrescriptionRequest struct {
	Patient string   `json:"patient" binding:"required"`
	Drugs   []string `json:"drugs" binding:"required,min=1"`
}

func CreatePrescription(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req createPrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	patientID, err := primitive.ObjectIDFromHex(req.Patient)
	if err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	prescription, err := services.CreatePrescription(c, p.ID, patientID, req.Drugs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(prescription))
}

func GetPrescription(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	prescriptionID, err := objectIDParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	prescription, err := services.GetPrescriptionPopulated(c, p.ID, prescriptionID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(prescription))
}

type updatePrescriptionRequest struct {
	Drugs []string `json:"drugs" binding:"required,min=1"`
}

func UpdatePrescription(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	prescriptionID, err := objectIDParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	var req updatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	prescription, err := services.UpdatePrescriptionDrugs(c, p.ID, prescriptionID, req.Drugs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(prescription))
}

func DeletePrescription(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	prescriptionID, err := objectIDParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	if err := services.DeletePrescription(c, p.ID, prescriptionID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Prescription deleted successfully"))
}

type prescriptionDrugRequest struct {
	DrugID string `json:"drugId" binding:"required"`
}

func AddDrugToPrescription(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	prescriptionID, err := objectIDParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	var req prescriptionDrugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	drugID, err := primitive.ObjectIDFromHex(req.DrugID)
	if err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	prescription, err := services.AddDrugToPrescription(c, p.ID, prescriptionID, drugID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(prescription))
}

func RemoveDrugFromPrescription(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	prescriptionID, err := objectIDParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	var req prescriptionDrugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	drugID, err := primitive.ObjectIDFromHex(req.DrugID)
	if err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	prescription, err := services.RemoveDrugFromPrescription(c, p.ID, prescriptionID, drugID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(prescription))
}
