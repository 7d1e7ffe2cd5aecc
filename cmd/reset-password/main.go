package main

import (
	"flag"
	"log"

	"go-almacen-pos/internal/store"
	"go-almacen-pos/pkg/database"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Emergency password reset straight into the snapshot, for a locked-out till.
func main() {
	username := flag.String("user", "admin", "username to reset")
	password := flag.String("password", "admin123", "new password")
	flag.Parse()

	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Open snapshot store
	db := database.ConnectDB()
	posStore, err := store.New(db)
	if err != nil {
		log.Fatalf("Failed to prepare snapshot store: %v", err)
	}

	state, err := posStore.Load()
	if err != nil {
		log.Fatalf("Failed to load state: %v", err)
	}

	// 3. Find user and rewrite the hash
	found := false
	for i := range state.Users {
		if state.Users[i].Username != *username {
			continue
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		state.Users[i].Password = string(hashed)
		found = true
		break
	}
	if !found {
		log.Fatalf("User %q not found in state", *username)
	}

	if err := posStore.Save(state); err != nil {
		log.Fatalf("Failed to save state: %v", err)
	}

	log.Printf("Success! Password for %q has been reset.", *username)
}
