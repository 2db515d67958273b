package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/freshtrack/client/stubapi"
)

func main() {
	_ = godotenv.Load()

	addr := flag.String("addr", ":8080", "listen address")
	gradeDelay := flag.Duration("grade-delay", 2*time.Second, "simulated grading duration")
	flag.Parse()

	jwtKey := os.Getenv("JWT_KEY")
	if jwtKey == "" {
		slog.Error("JWT_KEY is not set")
		os.Exit(1)
	}

	server := stubapi.NewServer([]byte(jwtKey), stubapi.WithGradeDelay(*gradeDelay))

	log.Printf("Starting stub API on %s (grade delay %s)", *addr, *gradeDelay)
	err := server.Start(*addr)
	log.Printf("Server stopped with error: %v", err)
}
