// Demonstrates the configuration store end to end: layered loading,
// path access, deletion with pruning, dirty-gated persistence, and
// struct scanning.
package main

import (
	"fmt"
	"log"
	"os"

	config "github.com/27escape/App-Basis"
)

const configFilePath = "example.yaml"

// AppConfig mirrors the tree shape for Scan.
type AppConfig struct {
	Server struct {
		Host     string `yaml:"host"`
		Port     int64  `yaml:"port"`
		LogLevel string `yaml:"log_level"`
	} `yaml:"server"`
	FeatureFlags map[string]bool `yaml:"feature_flags"`
}

func main() {
	defer func() {
		os.Remove(configFilePath)
		os.Unsetenv("APP_SERVER_PORT")
	}()

	// =====================================================================
	// PART 1: create an initial file by building a tree and storing it.
	// =====================================================================
	log.Println("➡️  PART 1: creating initial configuration file...")

	seed, err := config.New(configFilePath)
	if err != nil {
		log.Fatalf("create: %v", err)
	}
	seed.Set("server/host", "localhost")
	seed.Set("server/port", 8080)
	seed.Set("server/log_level", "info")
	seed.Set("feature_flags/enable_metrics", true)

	stored, err := seed.Store()
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	log.Printf("stored=%v (dirty tree written to %s)", stored, configFilePath)

	// =====================================================================
	// PART 2: reload with layers. The environment overrides the file.
	// =====================================================================
	log.Println("➡️  PART 2: reloading with an environment override...")

	os.Setenv("APP_SERVER_PORT", "9999")

	cfg, err := config.New(configFilePath,
		config.WithEnvPrefix("APP_"),
		config.WithArgs([]string{"--server.log_level=debug"}),
	)
	if err != nil {
		log.Fatalf("reload: %v", err)
	}

	port, _ := cfg.Int64("server/port")
	level, _ := cfg.String("server:log_level")
	log.Printf("server.port=%d (env won), server.log_level=%s (args won)", port, level)
	log.Printf("changed=%v (overlay layers never dirty the instance)", cfg.Changed())

	// =====================================================================
	// PART 3: mutate, delete, and watch the dirty flag gate Store.
	// =====================================================================
	log.Println("➡️  PART 3: mutation and pruning...")

	cfg.Set("feature_flags/enable_tracing", true)
	log.Printf("changed=%v after set", cfg.Changed())

	cfg.Set("feature_flags/enable_tracing", nil)
	cfg.Set("feature_flags/enable_metrics", nil)
	fmt.Printf("feature_flags after pruning deletes: %v\n", cfg.Get("feature_flags"))

	stored, err = cfg.Store()
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	log.Printf("stored=%v", stored)

	stored, _ = cfg.Store()
	log.Printf("stored=%v on a clean second call", stored)

	// =====================================================================
	// PART 4: scan the tree into a struct.
	// =====================================================================
	log.Println("➡️  PART 4: scanning into a struct...")

	var app AppConfig
	if err := cfg.Scan("/", &app); err != nil {
		log.Fatalf("scan: %v", err)
	}
	fmt.Printf("scanned: %+v\n", app)
}
