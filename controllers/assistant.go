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

func Assistant(r *gin.Engine) {
	ast := r.Group("/ast")
	{
		ast.POST("/verify", VerifyAssistant)
		ast.POST("/signIn", SignInAssistant)
	}
	// An assistant account is opened by its doctor.
	ast.POST("/signUp", auth.JWTAuth(), auth.RequireRole(role.Doctor), SignUpAssistant)

	private := ast.Group("", auth.JWTAuth(), auth.RequireRole(role.Assistant))
	{
		private.GET("/", AssistantProfile)
		private.POST("/signOut", SignOutAssistant)
		private.DELETE("/del", DeleteAssistant)
		private.PUT("/update", UpdateAssistant)
	}
}

type assistantSignUpRequest struct {
	Name              string     `json:"name" binding:"required"`
	Email             string     `json:"email" binding:"required,email"`
	Password          string     `json:"password" binding:"required"`
	PhoneNumber       string     `json:"phoneNumber"`
	Birthday          *time.Time `json:"birthday"`
	NationalityNumber string     `json:"nationalityNumber"`
	Address           string     `json:"address"`
	Gender            string     `json:"gender" binding:"omitempty,oneof=male female"`
}

func SignUpAssistant(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req assistantSignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	assistant := &models.Assistant{
		Name:              req.Name,
		Email:             req.Email,
		PhoneNumber:       req.PhoneNumber,
		Birthday:          req.Birthday,
		NationalityNumber: req.NationalityNumber,
		Address:           req.Address,
		Gender:            req.Gender,
	}
	id, token, code, err := services.SignUpAssistant(c, p.ID, assistant, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(gin.H{"id": id, "token": token, "verificationCode": code}))
}

func VerifyAssistant(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	if err := services.VerifyAccount(c, role.Assistant, req.Email, req.Code); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Assistant verified successfully"))
}

func SignInAssistant(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	token, account, err := services.SignIn(c, role.Assistant, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(gin.H{"token": token, "assistant": account}))
}

func AssistantProfile(c *gin.Context) {
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

func SignOutAssistant(c *gin.Context) {
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

func DeleteAssistant(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	if err := services.DeleteAccount(c, p.Role, p.ID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Assistant deleted successfully"))
}

func UpdateAssistant(c *gin.Context) {
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
	c.JSON(http.StatusOK, util.SuccessResponse("Assistant updated successfully"))
}
