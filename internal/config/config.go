package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
    "strings" // strings is used for boolean parsing
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Database settings feed the MySQL pool; the Blob*
// fields describe the object-storage endpoint holding uploaded images.  Both
// are read once at startup and never re-read afterwards.
type Config struct {
    Env             string // application environment (e.g. "dev", "prod")
    Port            string // HTTP port to listen on
    DBUser          string // database username
    DBPass          string // database password (optional)
    DBHost          string // database host address
    DBPort          string // database port number
    DBName          string // database name
    BlobEndpoint    string // object storage endpoint (host:port)
    BlobAccessKey   string // object storage access key
    BlobSecretKey   string // object storage secret key
    BlobBucket      string // bucket/container holding uploaded images
    BlobUseSSL      bool   // whether to reach object storage over TLS
    SignedURLTTLMin int    // lifetime of issued signed image URLs in minutes
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:             must("APP_ENV"),                       // environment (dev/test/prod)
        Port:            must("APP_PORT"),                      // port to bind the HTTP server
        DBUser:          must("DB_USER"),                       // database user
        DBPass:          os.Getenv("DB_PASS"),                  // database password (empty allowed)
        DBHost:          must("DB_HOST"),                       // database host
        DBPort:          must("DB_PORT"),                       // database port
        DBName:          must("DB_NAME"),                       // database name
        BlobEndpoint:    must("BLOB_ENDPOINT"),                 // object storage endpoint
        BlobAccessKey:   must("BLOB_ACCESS_KEY"),               // object storage access key
        BlobSecretKey:   must("BLOB_SECRET_KEY"),               // object storage secret key
        BlobBucket:      getenv("BLOB_BUCKET", "event-images"), // image container name
        BlobUseSSL:      boolenv("BLOB_USE_SSL"),               // TLS toggle for object storage
        SignedURLTTLMin: mustInt("SIGNED_URL_TTL_MIN"),         // signed URL lifetime in minutes
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
    s := must(key)
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

// boolenv interprets "true" or "1" (case-insensitive) as true and anything
// else, including an unset variable, as false.
func boolenv(key string) bool {
    v := os.Getenv(key)
    return strings.EqualFold(v, "true") || v == "1"
}
