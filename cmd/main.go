package main

import (
	"log"
	"os"

	"backend/config"
	"backend/routes"
	"backend/services"
	"backend/utils"
)

func main() {
	config.LoadEnv()
	config.InitDB()
	if os.Getenv("S3_BUCKET") != "" {
		utils.InitS3()
	}

	kbPath := os.Getenv("KNOWLEDGE_FILE")
	if kbPath == "" {
		kbPath = "data/ingredients_knowledge.json"
	}
	kb, err := services.LoadKnowledgeBase(kbPath)
	if err != nil {
		log.Fatalf("Failed to load knowledge base: %v", err)
	}

	r := routes.SetupRouter(kb)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
