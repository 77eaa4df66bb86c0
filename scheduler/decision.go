package scheduler

// Route names the path the admission decision picked.
type Route string

// Routes.
const (
	RouteHot  Route = "hot"
	RouteCold Route = "cold"
)

// Decision reasons.
const (
	ReasonLockFree = "lock_free"
	ReasonLockBusy = "lock_busy"
)

// Decision is the tagged admission decision for one job. It is produced
// before any execution so the routing choice itself stays inspectable.
type Decision struct {
	Route  Route
	Reason string
}
