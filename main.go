package main

import (
	"log"

	"CareLink360/cache"
	"CareLink360/config"
	"CareLink360/db"
	"CareLink360/jobs"
	"CareLink360/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	connectDB = db.Connect
	runServer = func(r *gin.Engine, addr string) error { return r.Run(addr) }
	isTest    = false
)

func main() {
	run()
}

func run() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error in loading the ENV")
	}

	cfg := config.Load()

	if err := connectDB(cfg.MongoURI, cfg.DBName); err != nil {
		log.Fatal("Error connecting to database:", err)
	}
	cache.Init(cfg.RedisAddr)

	if !isTest {
		jobs.StartDailyScheduler()
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))
	routes.Routes(r)

	// Migrations are run manually when a deploy needs them.
	// migrations.AddDoctorIdFieldInDrug()
	// migrations.BackfillIsVerified()

	if err := runServer(r, ":"+cfg.Port); err != nil {
		log.Fatal("Error starting the server:", err)
	}
}
