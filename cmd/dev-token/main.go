// dev-token mints a bearer token accepted by the server in dev mode
// (GOOGLE_CLIENT_ID unset). It signs with the same JWT_SECRET the server
// loads, so a token printed here works against a locally running instance.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/jomadlcrz/class-schedule-backend/internal/config"
	"github.com/jomadlcrz/class-schedule-backend/internal/service"
)

func main() {
	var email, name string
	flag.StringVar(&email, "email", "", "Identity email (required)")
	flag.StringVar(&name, "name", "", "Identity display name")
	flag.Parse()

	if email == "" {
		flag.PrintDefaults()
		log.Fatal("-email is required")
	}

	cfg := config.Load()

	token, err := service.GenerateDevToken(cfg.JWTSecret, service.Identity{
		Email: email,
		Name:  name,
	}, cfg.JWTExpiry)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}

	fmt.Println(token)
}
