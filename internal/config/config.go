package config

import (
	"os"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPushInterval = 15 * time.Second
	defaultListenPort   = 9100
	// Windows exporters conventionally listen on 9182.
	defaultListenPortWindows = 9182
)

// Config holds agent configuration. Fields are unexported to prevent
// modification; the push interval is the one exception to immutability and
// is guarded for hot reload.
type Config struct {
	serverURL  string
	apiKey     string
	listenPort int
	logFile    string
	envFile    string

	serviceName        string
	serviceDisplayName string
	serviceDescription string

	mu           sync.RWMutex
	pushInterval time.Duration
}

func New() *Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	_ = godotenv.Load(envFile) // ignore error if .env not found

	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "agent.log"
	}

	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "MonitoringAgent"
	}

	cfg := &Config{
		serverURL:          os.Getenv("SERVER_URL"),
		apiKey:             os.Getenv("API_KEY"),
		listenPort:         parsePort(os.Getenv("LISTEN_PORT")),
		logFile:            logFile,
		envFile:            envFile,
		serviceName:        serviceName,
		serviceDisplayName: "Monitoring Agent",
		serviceDescription: "Telemetry agent exposing host and storage-health metrics",
		pushInterval:       parseInterval(os.Getenv("PUSH_INTERVAL")),
	}
	return cfg
}

func parsePort(s string) int {
	port, err := strconv.Atoi(s)
	if err != nil || port <= 0 || port > 65535 {
		if runtime.GOOS == "windows" {
			return defaultListenPortWindows
		}
		return defaultListenPort
	}
	return port
}

func parseInterval(s string) time.Duration {
	sec, err := strconv.Atoi(s)
	if err != nil || sec <= 0 {
		return defaultPushInterval
	}
	return time.Duration(sec) * time.Second
}

// Reload re-reads the env file and applies the hot-reloadable settings.
// Only the push interval may change at runtime; everything else requires a
// restart.
func (c *Config) Reload() error {
	vars, err := godotenv.Read(c.envFile)
	if err != nil {
		return err
	}
	interval := parseInterval(vars["PUSH_INTERVAL"])
	c.mu.Lock()
	c.pushInterval = interval
	c.mu.Unlock()
	return nil
}

// Getter methods (immutable from outside)

func (c *Config) ServerURL() string {
	return c.serverURL
}

func (c *Config) APIKey() string {
	return c.apiKey
}

func (c *Config) ListenPort() int {
	return c.listenPort
}

func (c *Config) LogFile() string {
	return c.logFile
}

func (c *Config) EnvFile() string {
	return c.envFile
}

func (c *Config) ServiceName() string {
	return c.serviceName
}

func (c *Config) ServiceDisplayName() string {
	return c.serviceDisplayName
}

func (c *Config) ServiceDescription() string {
	return c.serviceDescription
}

func (c *Config) PushInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.pushInterval
}
