package deps

import (
	"time"

	"github.com/MrSnakeDoc/notary/internal/affordance"
	"github.com/MrSnakeDoc/notary/internal/controller"
	"github.com/MrSnakeDoc/notary/internal/logger"
	"github.com/MrSnakeDoc/notary/internal/store"
	"github.com/MrSnakeDoc/notary/internal/view"
)

type Deps struct {
	Logger         logger.Logger
	StartTime      time.Time
	Version        string
	Commit         string
	BuildDate      string
	GoVersion      string
	TimeNow        func() time.Time       // for testing, defaults to time.Now
	AllowedHosts   []string               // Host headers allowed to access the ops endpoints
	AllowedCIDRS   []string               // IPs allowed to access the ops endpoints
	AllowedOrigins []string               // CORS origins allowed to call the API
	TrustProxy     bool                   // true if running behind a trusted reverse proxy (e.g., cloudflared)
	Controller     *controller.Controller // gesture handling
	Affordances    *affordance.Tracker    // pending capture candidates
	Projection     *view.Projection       // rendered card views
	Slot           store.Slot             // persistence backend, for health checks
	ReloadTrigger  chan struct{}          // Channel to trigger a manual resync
}
