package controllers

import (
	"net/http"
	"time"

	"CareLink360/auth"
	"CareLink360/models"
	"CareLink360/role"
	"CareLink360/services"
	"CareLink360/util"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func Doctor(r *gin.Engine) {
	doc := r.Group("/doc")
	{
		doc.POST("/signUp", SignUpDoctor)
		doc.POST("/verify", VerifyDoctor)
		doc.POST("/signIn", SignInDoctor)
	}
	private := doc.Group("", auth.JWTAuth(), auth.RequireRole(role.Doctor))
	{
		private.GET("/", DoctorProfile)
		private.POST("/signOut", SignOutDoctor)
		private.DELETE("/del", DeleteDoctor)
		private.PUT("/update", UpdateDoctor)
		private.GET("/patients", DoctorPatients)
		private.DELETE("/delPatient", RemovePatientFromDoctor)
		private.GET("/assistants", DoctorAssistants)
		private.GET("/spec_assistant/:email", DoctorAssistantByEmail)
		private.POST("/addAssistant", AddAssistantToDoctor)
		private.DELETE("/delAssistant", RemoveAssistantFromDoctor)
	}
}

type doctorSignUpRequest struct {
	Name              string     `json:"name" binding:"required"`
	Email             string     `json:"email" binding:"required,email"`
	Password          string     `json:"password" binding:"required"`
	Department        string     `json:"department" binding:"required"`
	PhoneNumber       string     `json:"phoneNumber"`
	Birthday          *time.Time `json:"birthday"`
	NationalityNumber string     `json:"nationalityNumber"`
	Address           string     `json:"address"`
	Gender            string     `json:"gender" binding:"omitempty,oneof=male female"`
}

func SignUpDoctor(c *gin.Context) {
	var req doctorSignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	doctor := &models.Doctor{
		Name:              req.Name,
		Email:             req.Email,
		Department:        req.Department,
		PhoneNumber:       req.PhoneNumber,
		Birthday:          req.Birthday,
		NationalityNumber: req.NationalityNumber,
		Address:           req.Address,
		Gender:            req.Gender,
	}
	id, token, code, err := services.SignUpDoctor(c, doctor, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(gin.H{"id": id, "token": token, "verificationCode": code}))
}

type verifyRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

func VerifyDoctor(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	if err := services.VerifyAccount(c, role.Doctor, req.Email, req.Code); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Doctor verified successfully"))
}

type signInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func SignInDoctor(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	token, account, err := services.SignIn(c, role.Doctor, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(gin.H{"token": token, "doctor": account}))
}

func DoctorProfile(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	profile, err := services.GetProfile(c, p.Role, p.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(profile))
}

func SignOutDoctor(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := services.SignOut(c, p.ID, p.Role, p.Token); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Logged out successfully"))
}

func DeleteDoctor(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := services.DeleteAccount(c, p.Role, p.ID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Doctor deleted successfully"))
}

func UpdateDoctor(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	data := make(map[string]interface{})
	if err := c.BindJSON(&data); err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	if err := services.UpdateAccount(c, p.Role, p.ID, data); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Doctor updated successfully"))
}

func DoctorPatients(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	patients, err := services.ListDoctorPatients(c, p.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(patients))
}

type removePatientRequest struct {
	PatientID string `json:"patientId" binding:"required"`
}

func RemovePatientFromDoctor(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req removePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	patientID, err := primitive.ObjectIDFromHex(req.PatientID)
	if err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	if err := services.UnlinkPatientFromDoctor(c, p.ID, patientID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Patient removed successfully"))
}

func DoctorAssistants(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	assistants, err := services.ListDoctorAssistants(c, p.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(assistants))
}

func DoctorAssistantByEmail(c *gin.Context) {
	if _, ok := principal(c); !ok {
		return
	}
	assistant, err := services.GetAssistantByEmail(c, c.Param("email"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(assistant))
}

type addAssistantRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func AddAssistantToDoctor(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req addAssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	doctor, err := services.LinkAssistantToDoctor(c, p.ID, req.Email)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(doctor))
}

type removeAssistantRequest struct {
	ID string `json:"id" binding:"required"`
}

func RemoveAssistantFromDoctor(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req removeAssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	assistantID, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	if err := services.UnlinkAssistantFromDoctor(c, p.ID, assistantID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Assistant removed successfully"))
}
