package main

import (
	"flag"
	"fmt"

	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/config"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/database"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/models"
	"github.com/dev-vision-ai/SwansonIndiaPortal-sub001/app/routes/auth"
)

func main() {
	email := flag.String("email", "", "login email")
	name := flag.String("name", "", "full name")
	department := flag.String("department", "Quality Control", "department")
	password := flag.String("password", "", "initial password")
	flag.Parse()

	if *email == "" || *name == "" || *password == "" {
		fmt.Println("Usage: add_user -email ... -name ... -password ... [-department ...]")
		return
	}

	config.InitDB()
	db := config.GetDB()
	if db == nil {
		fmt.Println("Failed to connect to database")
		return
	}
	defer db.Close()

	hashed, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Printf("Error hashing password: %v\n", err)
		return
	}

	user := &models.User{
		Email:      *email,
		FullName:   *name,
		Department: *department,
	}
	if err := database.CreateUser(db, user, hashed); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		return
	}

	fmt.Printf("User created successfully: %s (%s, %s)\n", user.FullName, user.Email, user.Department)
}
