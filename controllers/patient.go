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
)

func Patient(r *gin.Engine) {
	pat := r.Group("/pat")
	{
		pat.POST("/signUp", SignUpPatient)
		pat.POST("/verify", VerifyPatient)
		pat.POST("/signIn", SignInPatient)
	}
	private := pat.Group("", auth.JWTAuth(), auth.RequireRole(role.Patient))
	{
		private.GET("/", PatientProfile)
		private.POST("/signOut", SignOutPatient)
		private.DELETE("/del", DeletePatient)
		private.PUT("/update", UpdatePatient)
		private.GET("/doctors", PatientDoctors)
		private.GET("/prescriptions", PatientPrescriptions)
	}
	staff := pat.Group("", auth.JWTAuth())
	{
		staff.GET("/get-patient/:id", PatientRecord)
		staff.POST("/addPatient", auth.RequireRole(role.Doctor, role.Assistant), AddPatient)
	}
}

type patientSignUpRequest struct {
	Name              string     `json:"name" binding:"required"`
	Email             string     `json:"email" binding:"required,email"`
	Password          string     `json:"password" binding:"required"`
	PhoneNumber       string     `json:"phoneNumber"`
	Birthday          *time.Time `json:"birthday"`
	Age               int        `json:"age"`
	NationalityNumber string     `json:"nationalityNumber"`
	Address           string     `json:"address"`
	Gender            string     `json:"gender" binding:"omitempty,oneof=male female"`
}

func SignUpPatient(c *gin.Context) {
	var req patientSignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	patient := &models.Patient{
		Name:              req.Name,
		Email:             req.Email,
		PhoneNumber:       req.PhoneNumber,
		Birthday:          req.Birthday,
		Age:               req.Age,
		NationalityNumber: req.NationalityNumber,
		Address:           req.Address,
		Gender:            req.Gender,
	}
	id, token, code, err := services.SignUpPatient(c, patient, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(gin.H{"id": id, "token": token, "verificationCode": code}))
}

func VerifyPatient(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	if err := services.VerifyAccount(c, role.Patient, req.Email, req.Code); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Patient verified successfully"))
}

func SignInPatient(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	token, account, err := services.SignIn(c, role.Patient, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(gin.H{"token": token, "patient": account}))
}

func PatientProfile(c *gin.Context) {
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

func SignOutPatient(c *gin.Context) {
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

func DeletePatient(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := services.DeleteAccount(c, p.Role, p.ID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Patient deleted successfully"))
}

func UpdatePatient(c *gin.Context) {
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
	c.JSON(http.StatusOK, util.SuccessResponse("Patient updated successfully"))
}

func PatientDoctors(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	doctors, err := services.ListPatientDoctors(c, p.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(doctors))
}

func PatientPrescriptions(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	prescriptions, err := services.ListPatientPrescriptions(c, p.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(prescriptions))
}

func PatientRecord(c *gin.Context) {
	patientID, err := objectIDParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	record, err := services.GetPatientRecord(c, patientID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(record))
}

type addPatientRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DoctorEmail string `json:"doctorEmail" binding:"omitempty,email"`
}

// AddPatient links a patient to the calling doctor, or, for an assistant, to
// the named doctor the assistant works for.
func AddPatient(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req addPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}

	var err error
	switch p.Role {
	case role.Doctor:
		_, err = services.LinkPatientToDoctor(c, p.ID, req.Email)
	case role.Assistant:
		if req.DoctorEmail == "" {
			fail(c, util.ErrInvalidInput)
			return
		}
		_, err = services.LinkPatientForAssistant(c, p.ID, req.DoctorEmail, req.Email)
	default:
		fail(c, util.ErrForbidden)
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse("Patient added successfully"))
}
