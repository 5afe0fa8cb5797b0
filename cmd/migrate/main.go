package main

import (
	"flag"
	"fmt"
	"log"

	"trulytravels/cfg"
	"trulytravels/migrations"
	"trulytravels/pkg/db"
)

func main() {
	down := flag.Bool("down", false, "roll back every migration")
	flag.Parse()

	// ============
	// Load config
	// ============
	config, errCfg := cfg.Load()
	if errCfg != nil {
		log.Fatal(errCfg)
	}

	// ============
	// Init DB client
	// ============
	client, err := db.NewSQLiteClient(config.Store.SQLitePath)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Close()

	// =========
	// Migrate
	// =========
	if *down {
		err = migrations.Down(client.DB())
	} else {
		err = migrations.Up(client.DB())
	}
	if err != nil {
		log.Fatal(err)
	}

	version, dirty, err := migrations.Version(client.DB())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%s: schema version %d (dirty=%t)\n", config.Store.SQLitePath, version, dirty)
}
