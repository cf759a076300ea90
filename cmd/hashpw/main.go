// Command hashpw prints the bcrypt hash of a password, for the server's
// PASSWORD_HASH environment variable.
//
// Usage:
//
//	hashpw <password>
package main

import (
	"fmt"
	"os"

	"workledger/internal/auth"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpw <password>")
		os.Exit(2)
	}

	hash, err := auth.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "hashpw:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
