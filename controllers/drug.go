package controllers

import (
	"net/http"

	"CareLink360/auth"
	"CareLink360/models"
	"CareLink360/role"
	"CareLink360/services"
	"CareLink360/util"

	"github.com/gin-gonic/gin"
)

func Drug(r *gin.Engine) {
	drug := r.Group("/drug", auth.JWTAuth(), auth.RequireRole(role.Doctor))
	{
		drug.GET("/", ListDrugs)
		drug.GET("/:id", GetDrug)
		drug.POST("/add", AddDrug)
		drug.POST("/addMany", AddDrugs)
		drug.PUT("/update/:id", UpdateDrug)
		drug.DELETE("/del/:id", DeleteDrug)
	}
}

type drugRequest struct {
	Name              string   `json:"name" binding:"required"`
	Usage             string   `json:"usage" binding:"required"`
	SideEffects       []string `json:"sideEffects"`
	Contraindications []string `json:"contraindications"`
	SimilarDrugs      []string `json:"similarDrugs"`
}

func AddDrug(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req drugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	drug, err := services.AddDrug(c, p.ID, &models.Drug{
		Name:              req.Name,
		Usage:             req.Usage,
		SideEffects:       req.SideEffects,
		Contraindications: req.Contraindications,
		SimilarDrugs:      req.SimilarDrugs,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(drug))
}

type bulkDrugRequest struct {
	Drugs []drugRequest `json:"drugs" binding:"required,min=1,dive"`
}

func AddDrugs(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	var req bulkDrugRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	drugs := make([]*models.Drug, 0, len(req.Drugs))
	for _, d := range req.Drugs {
		drugs = append(drugs, &models.Drug{
			Name:              d.Name,
			Usage:             d.Usage,
			SideEffects:       d.SideEffects,
			Contraindications: d.Contraindications,
			SimilarDrugs:      d.SimilarDrugs,
		})
	}
	added, skipped, err := services.AddDrugs(c, p.ID, drugs)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, util.SuccessResponse(gin.H{"added": added, "skipped": skipped}))
}

func ListDrugs(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	drugs, err := services.ListDrugs(c, p.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(drugs))
}

func GetDrug(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	drugID, err := objectIDParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	drug, err := services.GetDrug(c, p.ID, drugID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(drug))
}

func UpdateDrug(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	drugID, err := objectIDParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	data := make(map[string]interface{})
	if err := c.BindJSON(&data); err != nil {
		fail(c, util.ErrInvalidInput)
		return
	}
	drug, err := services.UpdateDrug(c, p.ID, drugID, data)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(drug))
}

func DeleteDrug(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}
	drugID, err := objectIDParam(c, "id")
	if err != nil {
		fail(c, err)
		return
	}
	if err := services.DeleteDrug(c, p.ID, drugID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse("Drug deleted successfully"))
}
