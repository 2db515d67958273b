package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/freshtrack/client/api"
	"github.com/freshtrack/client/auth"
	"github.com/freshtrack/client/conf"
	"github.com/freshtrack/client/store"
)

func main() {
	// .env is optional for the client
	_ = godotenv.Load()

	cfgPath := flag.String("config", conf.DefaultPath(), "config file path")
	apiURL := flag.String("api", "", "API base URL (overrides config)")
	flag.Parse()

	cfg, err := conf.Load(*cfgPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if *apiURL != "" {
		cfg.ApiBaseURL = *apiURL
	}

	client := api.NewClient(cfg.ApiBaseURL)
	authCtx := auth.NewContext(client)

	// cache failures only cost offline tolerance
	cache, err := store.NewCache(cfg.CacheDir)
	if err != nil {
		log.Printf("assessment cache disabled: %v", err)
	}

	p := tea.NewProgram(initialModel(cfg, client, authCtx, cache))
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
