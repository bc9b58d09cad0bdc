// Package confloader loads configuration with koanf.
//
// Sources, lowest priority first:
//
//  1. The target struct's existing values (defaults)
//  2. A YAML configuration file
//  3. Environment variables with the configured prefix
//  4. Command-line flags, passed as a map of dotted keys
//
// .env files are read into the process environment before step 3 with
// godotenv; variables already set in the environment win.
//
// Environment names map to keys by matching the target's koanf tags, so
// RESPKV_SERVER_REDIS_READ_BUFFER_SIZE sets server.redis.read_buffer_size.
//
// Watcher reports changes to the configuration file so a running process
// can re-read it.
package confloader
