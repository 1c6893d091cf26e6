package viewmodels

// LayoutData is the shared chrome for every console page.
type LayoutData struct {
	Title      string
	ActivePath string
	UserEmail  string
	UserRole   string
	CSRFToken  string
	Toast      *ToastViewData
	// AutoRefreshSeconds drives the meta-refresh on data pages, so held
	// collections and the session token get revisited on a fixed cadence.
	AutoRefreshSeconds int
	// Banner is a dismissible stale-data warning: a background refresh
	// failed while the previous collection is still on screen.
	Banner string
}

// ToastViewData is a transient notification shown once on the next page load.
type ToastViewData struct {
	Category    string `json:"category"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type LoginViewData struct {
	Layout       LayoutData
	CSRFToken    string
	Email        string
	ErrorMessage string
	Toast        *ToastViewData
}

type SetupPasswordViewData struct {
	Layout       LayoutData
	CSRFToken    string
	Token        string
	ErrorMessage string
}

type LandingViewData struct {
	Layout LayoutData
}

// ErrorViewData is the full-page failure state with a retry link, used when a
// screen has nothing at all to show.
type ErrorViewData struct {
	Layout       LayoutData
	ErrorMessage string
	RetryHref    string
}
