package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/beka-birhanu/vinom-maze-race/maze"
	"github.com/joho/godotenv"
)

// Config holds the application's configuration values.
type Config struct {
	HostIP         string           // Host IP for the server
	RESTPort       int              // Port for the REST API
	GinMode        string           // Mode for the Gin framework (e.g., release, debug, test)
	ViewportWidth  int              // Width of the drawing area in pixels
	ViewportHeight int              // Height of the drawing area in pixels
	CellSize       int              // Side of one maze cell in pixels
	MazeSeed       *uint64          // Fixed maze seed; nil draws a new seed per race
	EntryRow       int              // Row opened after carving; negative disables it
	EntrySides     []maze.Direction // Sides opened on the entry row
	MoveDelay      time.Duration    // Delay between two moves of the autonomous agent
	TimeLimit      time.Duration    // Time allowed for one race
	TickRate       int              // Race loop frequency in Hz
	SessionTTL     time.Duration    // How long a finished race stays queryable
	RedisAddr      string           // Address of the leaderboard Redis; empty disables it
	RedisPassword  string           // Password for Redis
	RedisDB        int              // Redis database index
	LeaderboardKey string           // Sorted set key holding the leaderboard
}

// Cols returns the number of maze columns that fit the viewport.
func (c Config) Cols() int {
	return c.ViewportWidth / c.CellSize
}

// Rows returns the number of maze rows that fit the viewport.
func (c Config) Rows() int {
	return c.ViewportHeight / c.CellSize
}

// TickInterval returns the time between two race loop iterations.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// Envs holds the application's configuration loaded from environment variables.
var Envs = initConfig()

// initConfig initializes and returns the application configuration.
// It loads environment variables from a .env file.
func initConfig() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	return Config{
		HostIP:         getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:       getEnvAsIntWithDefault("REST_PORT", 8080),
		GinMode:        getEnvWithDefault("GIN_MODE", "release"),
		ViewportWidth:  mustBePositive("VIEWPORT_WIDTH", getEnvAsIntWithDefault("VIEWPORT_WIDTH", 800)),
		ViewportHeight: mustBePositive("VIEWPORT_HEIGHT", getEnvAsIntWithDefault("VIEWPORT_HEIGHT", 450)),
		CellSize:       mustBePositive("CELL_SIZE", getEnvAsIntWithDefault("CELL_SIZE", 25)),
		MazeSeed:       getEnvAsOptionalUint("MAZE_SEED"),
		EntryRow:       getEnvAsIntWithDefault("ENTRY_ROW", 0),
		EntrySides:     mustParseDirections("ENTRY_SIDES", getEnvWithDefault("ENTRY_SIDES", "top,left,right")),
		MoveDelay:      time.Duration(mustBePositive("MOVE_DELAY_MS", getEnvAsIntWithDefault("MOVE_DELAY_MS", 500))) * time.Millisecond,
		TimeLimit:      time.Duration(mustBePositive("TIME_LIMIT_MS", getEnvAsIntWithDefault("TIME_LIMIT_MS", 60000))) * time.Millisecond,
		TickRate:       mustBePositive("TICK_RATE_HZ", getEnvAsIntWithDefault("TICK_RATE_HZ", 30)),
		SessionTTL:     time.Duration(getEnvAsIntWithDefault("SESSION_TTL_SECONDS", 300)) * time.Second,
		RedisAddr:      getEnvWithDefault("REDIS_ADDR", ""),
		RedisPassword:  getEnvWithDefault("REDIS_PASSWORD", ""),
		RedisDB:        getEnvAsIntWithDefault("REDIS_DB", 0),
		LeaderboardKey: getEnvWithDefault("LEADERBOARD_KEY", "maze-race:leaderboard"),
	}
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves an environment variable as an integer, or the default if not set.
// A value that cannot be parsed logs a fatal error.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valueStr) == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(strings.TrimSpace(valueStr))
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvAsOptionalUint retrieves an environment variable as an unsigned integer, or nil if not set.
func getEnvAsOptionalUint(key string) *uint64 {
	valueStr, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(valueStr) == "" {
		return nil
	}

	value, err := strconv.ParseUint(strings.TrimSpace(valueStr), 10, 64)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an unsigned integer: %v", key, err)
	}
	return &value
}

// mustParseDirections parses a comma separated list of sides or logs a fatal error.
func mustParseDirections(key, value string) []maze.Direction {
	dirs, err := maze.ParseDirections(value)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s: %v", key, err)
	}
	return dirs
}

// mustBePositive logs a fatal error when a dimension or duration is not positive.
func mustBePositive(key string, value int) int {
	if value <= 0 {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be positive, got %d", key, value)
	}
	return value
}
