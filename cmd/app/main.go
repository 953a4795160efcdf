package main

import (
	"flag"

	"foodgram/cmd/config"
	migration "foodgram/cmd/database/migrate"
	seeding "foodgram/cmd/database/seed"
	"foodgram/internal/utils"

	"github.com/gofiber/fiber/v2/log"
)

func main() {
	seedPath := flag.String("seed", "", "path to an ingredients JSON file to import before serving")
	flag.Parse()

	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		log.Fatalf("error connecting database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("error migrating database: %v", err)
	}

	if *seedPath != "" {
		if err := seeding.Seed(db, *seedPath); err != nil {
			log.Fatalf("error seeding database: %v", err)
		}
	}

	app, err := config.NewApp(db)
	if err != nil {
		log.Fatalf("error creating app: %v", err)
	}

	if err := app.Listen(":" + utils.GetConfig("APP_PORT")); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
