package config_test

import (
	"fmt"
	"os"
	"path/filepath"

	config "github.com/27escape/App-Basis"
)

func Example() {
	tmpDir, _ := os.MkdirTemp("", "config-example")
	defer os.RemoveAll(tmpDir)
	configFile := filepath.Join(tmpDir, "basic.yaml")

	cfg, err := config.New(configFile)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	cfg.Set("server/host", "localhost")
	cfg.Set("server/port", 8080)

	// Any of the three separators addresses the same value.
	fmt.Println(cfg.Get("server.host"))
	fmt.Println(cfg.Get("server:port"))

	stored, _ := cfg.Store()
	fmt.Println("stored:", stored)

	// Output:
	// localhost
	// 8080
	// stored: true
}

func ExampleConfig_Set_delete() {
	tmpDir, _ := os.MkdirTemp("", "config-example")
	defer os.RemoveAll(tmpDir)
	configFile := filepath.Join(tmpDir, "delete.yaml")

	cfg, _ := config.New(configFile)
	cfg.Set("one/two/three", "four")

	// A nil value deletes, and empty intermediates are pruned.
	cfg.Set("one/two/three", nil)
	fmt.Println(cfg.Get("one"))

	// Output:
	// <nil>
}

func ExampleConfig_Changed() {
	tmpDir, _ := os.MkdirTemp("", "config-example")
	defer os.RemoveAll(tmpDir)
	configFile := filepath.Join(tmpDir, "changed.yaml")

	cfg, _ := config.New(configFile)
	fmt.Println(cfg.Changed())

	cfg.Set("key", "value")
	fmt.Println(cfg.Changed())

	cfg.Store()
	fmt.Println(cfg.Changed())

	// Re-assigning the same value is not a change.
	cfg.Set("key", "value")
	fmt.Println(cfg.Changed())

	// Output:
	// false
	// true
	// false
	// false
}

func ExampleConfig_Scan() {
	tmpDir, _ := os.MkdirTemp("", "config-example")
	defer os.RemoveAll(tmpDir)
	configFile := filepath.Join(tmpDir, "scan.yaml")

	cfg, _ := config.New(configFile)
	cfg.Set("server", map[string]any{
		"host": "example.com",
		"port": 9000,
	})

	var server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
	}
	if err := cfg.Scan("server", &server); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("%s:%d\n", server.Host, server.Port)

	// Output:
	// example.com:9000
}
