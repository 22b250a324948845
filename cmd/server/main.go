package main

import (
	"os"

	"ragline/backend/internal/app"
)

// @title           RAGLine API
// @version         1.0
// @description     Retrieval-augmented chat backend with complexity-based model selection.
// @BasePath        /api
func main() {
	os.Exit(app.Run())
}
