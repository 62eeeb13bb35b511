package constants_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentstation/rostersync/pkg/constants"
)

// Example demonstrates using constants for common operations
func Example() {
	// Create directory with standard permissions
	dir := filepath.Join(os.TempDir(), "rostersync-example")
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	// Create file with standard permissions
	file := filepath.Join(dir, constants.ProgramsScriptFile)
	data := []byte("START TRANSACTION;\nCOMMIT;\n")
	if err := os.WriteFile(file, data, constants.FilePermissions); err != nil {
		panic(err)
	}

	fmt.Printf("Created dir with %o permissions\n", constants.DirPermissions)
	fmt.Printf("Created file with %o permissions\n", constants.FilePermissions)
	// Output:
	// Created dir with 755 permissions
	// Created file with 644 permissions
}

// Example_defaults demonstrates the master database defaults
func Example_defaults() {
	addr := fmt.Sprintf("%s:%d", constants.DefaultDBHost, constants.DefaultDBPort)
	fmt.Println(addr)
	fmt.Println(constants.DefaultDBName)
	// Output:
	// localhost:33061
	// laravel
}
