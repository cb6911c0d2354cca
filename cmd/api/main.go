package main

import (
	_ "tendorai/docs"
	"tendorai/internal/adapter/http/routes"

	_ "github.com/joho/godotenv/autoload"
)

// @title           TendorAI Quote Matching API
// @version         1.0
// @description     Quote matching and pricing engine for the TendorAI procurement marketplace, backed by DynamoDB.

// @contact.name   API Support
// @contact.email  support@tendorai.com

// @host localhost:8080

// @BasePath  /v1

func main() {
	routes.Run()
}
