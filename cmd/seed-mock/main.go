// Command seed-mock writes the deterministic mock dataset used while the
// chain integration is stubbed. The path defaults to .mock-db.json and can
// be overridden with MOCK_DB_PATH or the -path flag.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/commitlabs/commitment-api/internal/store"
)

func main() {
	defaultPath := os.Getenv("MOCK_DB_PATH")
	if defaultPath == "" {
		defaultPath = ".mock-db.json"
	}
	path := flag.String("path", defaultPath, "where to write the mock dataset")
	flag.Parse()

	mockStore := store.NewMockFileStore(*path)
	if err := mockStore.Save(store.DefaultMockData()); err != nil {
		fmt.Fprintf(os.Stderr, "seed-mock: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("mock dataset written to %s\n", *path)
}
