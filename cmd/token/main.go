// Command token prints an operator token for the protected newsletter routes.
//
//	JWT_SIGNING_KEY=... go run ./cmd/token -operator alice
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/vibe-gaming/newsletter/internal/config"
	"github.com/vibe-gaming/newsletter/pkg/auth"
)

func main() {
	operator := flag.String("operator", "", "operator name stored in the token subject")
	flag.Parse()

	var cfg config.JWTConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read jwt config from environment: %s", err)
	}

	manager, err := auth.NewManager(cfg)
	if err != nil {
		log.Fatalf("auth manager creation failed: %s", err)
	}

	token, ttl, err := manager.NewJWT(*operator)
	if err != nil {
		log.Fatalf("issue token failed: %s", err)
	}

	fmt.Println(token)
	log.Printf("token for %q expires in %s", *operator, ttl)
}
