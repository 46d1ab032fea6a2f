package constants_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentstation/apmatch/pkg/constants"
)

// Example demonstrates using constants for common file operations
func Example() {
	dir := filepath.Join(os.TempDir(), "apmatch-example")
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "config.yaml")
	data := []byte("always_approve: false")
	if err := os.WriteFile(file, data, constants.FilePermissions); err != nil {
		panic(err)
	}

	fmt.Printf("Created dir with %o permissions\n", constants.DirPermissions)
	fmt.Printf("Created file with %o permissions\n", constants.FilePermissions)
	// Output:
	// Created dir with 755 permissions
	// Created file with 644 permissions
}

// Example_batch demonstrates the batch worker bounds
func Example_batch() {
	workers := constants.DefaultBatchWorkers
	if workers > constants.MaxBatchWorkers {
		workers = constants.MaxBatchWorkers
	}
	fmt.Printf("Workers: %d\n", workers)
	// Output:
	// Workers: 4
}
