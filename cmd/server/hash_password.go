package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/freeboard/internal/auth"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print the bcrypt hash of a password.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		hashedPassword, err := auth.HashPassword(args[0])
		if err != nil {
			log.Fatalf("Failed to hash password: %v", err)
		}
		fmt.Printf("Hashed Password: %s\n", hashedPassword)
	},
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}
