package main

import (
	"decathlonminds/cmd/handlers"
	"decathlonminds/internal/logger"
)

func main() {
	logger.Init()
	handlers.Execute()
}
