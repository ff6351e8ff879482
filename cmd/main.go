package main

import (
	"os"

	"denticare-server/cmd/bootstrap"

	"github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if err := bootstrap.Migrate(); err != nil {
			logrus.Fatalf("Migration failed: %v", err)
		}
		return
	}

	// Initialize application with all dependencies
	app, err := bootstrap.New()
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	// Run the application
	app.Run()
}
