package main

import (
	"log"

	"github.com/joho/godotenv"

	"pdf-processing-service/cmd"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	cmd.Execute()
}
