package routes

import (
	"CareLink360/controllers"

	"github.com/gin-gonic/gin"
)

func Routes(r *gin.Engine) {
	controllers.Doctor(r)
	controllers.Assistant(r)
	controllers.Patient(r)
	controllers.Drug(r)
	controllers.Prescription(r)
	controllers.PendingPrescription(r)
}
