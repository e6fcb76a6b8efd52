package main

import (
	"log"

	"PAM/CronJobs"
	"PAM/FiberConfig"
	"PAM/Models"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	Models.Connect()

	reconciler := CronJobs.NewSalesReconciler(Models.DB, false)
	if err := reconciler.Start(); err != nil {
		log.Println("Failed to start sales reconciler:", err)
	}

	FiberConfig.FiberConfig()
}
