package middlewares

import (
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger instances for different log levels
var (
	AuditLogger *log.Logger
	ErrorLogger *log.Logger
)

// initLoggers initializes rotating loggers for audit and error logs.
func initLoggers() {
	createLogDir("logs/audit")
	createLogDir("logs/error")

	auditLog := &lumberjack.Logger{
		Filename:   filepath.Join("logs", "audit", "audit.log"),
		MaxSize:    1,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}

	errorLog := &lumberjack.Logger{
		Filename:   filepath.Join("logs", "error", "error.log"),
		MaxSize:    1,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	}

	AuditLogger = log.New(auditLog, "AUDIT: ", log.LstdFlags)
	ErrorLogger = log.New(errorLog, "ERROR: ", log.LstdFlags)
}

// createLogDir ensures that the provided directory exists.
func createLogDir(dir string) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		log.Fatalf("Could not create log directory %s: %v", dir, err)
	}
}

func init() {
	initLoggers()
}

// LoggingMiddleware logs audit information for every request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		timestamp := time.Now().Format(time.RFC3339)

		AuditLogger.Printf("Time: %s | Method: %s | URL: %s | User-Agent: %s | IP: %s",
			timestamp, r.Method, r.URL.String(), r.UserAgent(), ClientIP(r))

		next.ServeHTTP(w, r)
	})
}

// ClientIP extracts the requester's address: first X-Forwarded-For entry if
// a proxy set one, otherwise the connection address without its port. The
// resolver records this value on every scan.
func ClientIP(r *http.Request) string {
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		parts := strings.Split(xff, ",")
		if len(parts) > 0 && strings.TrimSpace(parts[0]) != "" {
			return strings.TrimSpace(parts[0])
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		if r.RemoteAddr == "" {
			return "unknown"
		}
		return r.RemoteAddr
	}
	return ip
}
