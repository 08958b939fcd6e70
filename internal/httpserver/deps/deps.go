package deps

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/recommendations/internal/httpserver/mw"
	"github.com/MrSnakeDoc/recommendations/internal/logger"
	"github.com/MrSnakeDoc/recommendations/internal/metrics"
	"github.com/MrSnakeDoc/recommendations/internal/recommendation"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	AllowedHosts []string // Host headers allowed on write routes
	AllowedCIDRS []string // IPs allowed to access readyz/metrics endpoints
	TrustProxy   bool     // true if running behind a trusted reverse proxy (e.g., cloudflared)

	Controller   *recommendation.Controller
	Store        Pinger             // checked by /readyz
	StoreBackend string             // memory | redis | sqlite
	Metrics      *metrics.Metrics   // nil disables /metrics
	RateLimit    mw.RateLimitConfig // applied to write routes
	CORSOrigins  []string           // empty allows any origin
}
