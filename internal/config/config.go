package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/GregMSThompson/ngo-dashboard/internal/models"
)

// Cache backends for the local grant-application slot.
const (
	CacheBackendFile      = "file"
	CacheBackendFirestore = "firestore"
)

type Config struct {
	Port      string
	ProjectID string
	LogLevel  string
	LogFormat string

	BackendBaseURL     string
	BackendTimeout     time.Duration
	BackendToken       string
	BackendTokenSecret string // Secret Manager secret id; used when BackendToken is empty
	Endpoints          Endpoints

	CacheBackend string
	CacheDir     string

	Registration    models.FcraRegistration
	RefreshInterval time.Duration

	AuthEnabled bool
}

// Endpoints are the NGO backend routes, relative to BackendBaseURL.
type Endpoints struct {
	ListDonations     string
	CreateDonation    string
	UpdateDonation    string // "{id}" is replaced with the donation id
	ListApplications  string
	CreateApplication string
	UpdateGrantStatus string
}

func New() *Config {
	// .env files are optional; real deployments use the environment.
	_ = godotenv.Load(".env", ".env.local")

	return &Config{
		Port:      getenv("PORT", "8080"),
		ProjectID: os.Getenv("PROJECTID"),
		LogLevel:  os.Getenv("LOGLEVEL"),
		LogFormat: os.Getenv("LOGFORMAT"),

		BackendBaseURL:     getenv("BACKEND_BASE_URL", "http://localhost/NGO-India/backend"),
		BackendTimeout:     getDuration("BACKEND_TIMEOUT", 15*time.Second),
		BackendToken:       os.Getenv("BACKEND_TOKEN"),
		BackendTokenSecret: os.Getenv("BACKEND_TOKEN_SECRET"),
		Endpoints: Endpoints{
			ListDonations:     getenv("BACKEND_DONATIONS_PATH", "get_fcradonation_api.php"),
			CreateDonation:    getenv("BACKEND_DONATION_CREATE_PATH", "add_fcradonation_api.php"),
			UpdateDonation:    getenv("BACKEND_DONATION_UPDATE_PATH", "donations/{id}/"),
			ListApplications:  getenv("BACKEND_APPLICATIONS_PATH", "get_grant_applications_api.php"),
			CreateApplication: getenv("BACKEND_APPLICATION_CREATE_PATH", "add_grant_application_api.php"),
			UpdateGrantStatus: getenv("BACKEND_GRANT_STATUS_PATH", "update_grant_status_api.php"),
		},

		CacheBackend: getCacheBackend(os.Getenv("CACHE_BACKEND")),
		CacheDir:     getenv("CACHE_DIR", ".cache"),

		Registration: models.FcraRegistration{
			RegistrationNumber: getenv("FCRA_REG_NUMBER", "FCRA/2023/NGO/12345"),
			ExpiryDate:         getenv("FCRA_REG_EXPIRY", "2028-03-15"),
			Status:             getenv("FCRA_REG_STATUS", models.RegistrationActive),
		},
		RefreshInterval: getDuration("FCRA_REFRESH_INTERVAL", time.Hour),

		AuthEnabled: getBool("AUTH_ENABLED", false),
	}
}

func getCacheBackend(backend string) string {
	switch strings.ToLower(backend) {
	case CacheBackendFirestore:
		return CacheBackendFirestore
	default: // "file"
		return CacheBackendFile
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getDuration(k string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(k))
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getBool(k string, def bool) bool {
	b, err := strconv.ParseBool(os.Getenv(k))
	if err != nil {
		return def
	}
	return b
}
