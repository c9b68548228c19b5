package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"hoaboard/internal/db"
	"hoaboard/internal/services"

	"github.com/joho/godotenv"
)

// 管理员账号只能通过本工具离线创建，不经过任何对外接口
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	db.Init()

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("\n=== CREATE ADMIN USER ===")

	fmt.Print("Enter admin username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" {
		log.Fatal("Username cannot be empty")
	}

	fmt.Print("Enter admin password: ")
	password, _ := reader.ReadString('\n')
	password = strings.TrimSpace(password)
	if len(password) < 8 {
		log.Fatal("Password must be at least 8 characters")
	}

	fmt.Print("Confirm password: ")
	confirm, _ := reader.ReadString('\n')
	confirm = strings.TrimSpace(confirm)
	if password != confirm {
		log.Fatal("Passwords do not match")
	}

	adminService := services.NewAdminService(db.DB)
	admin, err := adminService.CreateAdmin(context.Background(), username, password)
	if err != nil {
		log.Fatalf("Error creating admin: %v", err)
	}

	fmt.Printf("\nAdmin user %q created successfully\n", admin.Username)
}
