// Package config provides a path-addressable configuration store backed
// by a single file, with layered loading from defaults, environment
// variables, and command-line arguments, and explicit change-tracked
// persistence.
//
// Values live in a nested tree and are addressed by paths whose
// segments may be separated by '/', ':' or '.' interchangeably:
//
//	cfg.Get("block/bill")
//	cfg.Get("block:bill")
//	cfg.Get("block.bill")
//
// all name the same value. Setting a value creates intermediate
// mappings as needed; setting nil deletes the value and prunes any
// mappings the deletion leaves empty.
//
// Quick Start:
//
//	cfg, err := config.New("app.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cfg.Set("server/host", "localhost")
//	cfg.Set("server/port", 8080)
//
//	host, _ := cfg.String("server.host")
//	port, _ := cfg.Int64("server.port")
//
//	stored, err := cfg.Store() // writes only because something changed
//
// Layered Loading:
//
// New assembles the tree from up to four layers, later layers
// overriding earlier ones:
//
//  1. Defaults (WithDefaults, struct or map)
//  2. Configuration file (YAML, TOML, JSON, or JSONC)
//  3. Environment variables (WithEnvPrefix)
//  4. Command-line arguments (WithArgs, --server.port=9090)
//
// None of the layers mark the instance as changed; only Set and Delete
// do, and Store writes the file only when a change is pending.
//
// Thread Safety:
// All operations are safe for concurrent use. The package uses a
// read-write mutex to allow concurrent reads while protecting writes.
// It never watches the file; external modifications are not observed.
package config
