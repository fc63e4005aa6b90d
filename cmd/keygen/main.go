package main

import (
	"collab-lab/auth"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	secret := flag.String("secret", os.Getenv("JWT_SECRET"), "Signing secret shared with the relay (defaults to JWT_SECRET)")
	room := flag.String("room", auth.AnyRoom, "Room granted by the key, '*' for every room")
	project := flag.String("project", "default", "Project the key belongs to")
	ttl := flag.Duration("ttl", 24*time.Hour, "Validity of the key")
	flag.Parse()

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "a secret is required: use -secret or JWT_SECRET")
		os.Exit(2)
	}

	key, err := auth.GenerateToken([]byte(*secret), *project, *room, *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(key)
}
