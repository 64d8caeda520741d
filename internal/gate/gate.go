package gate

import (
	"path"
	"strings"

	"agency-console/internal/models"
)

const LoginPath = "/login"

var publicPaths = map[string]string{
	"/login":           "login",
	"/forgot-password": "forgot-password",
	"/verify-otp":      "verify-otp",
	"/reset-password":  "reset-password",
}

// Screen is one navigation entry of a shell.
type Screen struct {
	Key   string
	Path  string
	Label string
	Icon  string
}

// Shell is the navigation frame shown to one role. Landing is the
// role-specific dashboard template rendered at "/".
type Shell struct {
	Name    string
	Landing string
	Screens []Screen
}

func (s Shell) Screen(p string) (Screen, bool) {
	for _, sc := range s.Screens {
		if sc.Path == p {
			return sc, true
		}
	}
	return Screen{}, false
}

var (
	adminShell = Shell{
		Name:    "admin",
		Landing: "dashboard",
		Screens: []Screen{
			{Key: "dashboard", Path: "/", Label: "Dashboard", Icon: "layout-dashboard"},
			{Key: "clients", Path: "/clients", Label: "Clients", Icon: "users"},
			{Key: "salaries", Path: "/salaries", Label: "Salaries", Icon: "banknote"},
			{Key: "invoices", Path: "/invoices", Label: "Invoices", Icon: "file-text"},
			{Key: "projects", Path: "/projects", Label: "Projects", Icon: "folder-kanban"},
			{Key: "handovers", Path: "/handovers", Label: "Handovers", Icon: "briefcase"},
			{Key: "employees", Path: "/employees", Label: "Employees", Icon: "user-cog"},
			{Key: "interns", Path: "/interns", Label: "Interns", Icon: "graduation-cap"},
			{Key: "notices", Path: "/notices", Label: "Notices", Icon: "bell"},
			{Key: "communications", Path: "/communications", Label: "Communications", Icon: "message-square-warning"},
			{Key: "reports", Path: "/reports", Label: "Reports", Icon: "bar-chart"},
			{Key: "settings", Path: "/settings", Label: "Settings", Icon: "settings"},
		},
	}
	employeeShell = staffShell("employee", "employee-dashboard")
	internShell   = staffShell("intern", "intern-dashboard")
)

func staffShell(name, landing string) Shell {
	return Shell{
		Name:    name,
		Landing: landing,
		Screens: []Screen{
			{Key: "dashboard", Path: "/", Label: "Dashboard", Icon: "layout-dashboard"},
			{Key: "handovers", Path: "/handovers", Label: "Handovers", Icon: "briefcase"},
			{Key: "salaries", Path: "/salaries", Label: "Salary", Icon: "banknote"},
			{Key: "notices", Path: "/notices", Label: "Notices", Icon: "bell"},
			{Key: "communications", Path: "/communications", Label: "Communications", Icon: "message-square-warning"},
			{Key: "attendance", Path: "/attendance", Label: "Attendance", Icon: "calendar-check"},
			{Key: "settings", Path: "/settings", Label: "Settings", Icon: "settings"},
		},
	}
}

// Allows reports whether the shell has a screen with the given key.
func (s Shell) Allows(key string) bool {
	for _, sc := range s.Screens {
		if sc.Key == key {
			return true
		}
	}
	return false
}

// ShellFor returns the shell for a state. Unauthenticated has none and gets
// the admin shell, matching the unknown-role fallback.
func ShellFor(s State) Shell {
	switch s {
	case Employee:
		return employeeShell
	case Intern:
		return internShell
	}
	return adminShell
}

type Outcome int

const (
	RenderPublic Outcome = iota
	Render
	RedirectLogin
	NotFound
)

func (o Outcome) String() string {
	switch o {
	case RenderPublic:
		return "public"
	case Render:
		return "render"
	case RedirectLogin:
		return "redirect-login"
	}
	return "not-found"
}

// Decision is what the console does with a request path.
type Decision struct {
	Outcome Outcome
	State   State
	Shell   Shell
	Screen  Screen
	// Location is set for redirects.
	Location string
	// Public is the template key of a public page.
	Public string
}

// Session is the read side of the session store.
type Session interface {
	Current() (models.AuthUser, bool)
}

// Resolve decides how to serve p. It only chooses presentation; the API
// enforces data access.
func Resolve(sess Session, p string) Decision {
	p = Clean(p)
	if key, ok := publicPaths[p]; ok {
		return Decision{Outcome: RenderPublic, Public: key}
	}

	user, ok := sess.Current()
	if !ok {
		return Decision{Outcome: RedirectLogin, Location: LoginPath}
	}

	state := StateFor(user.Role)
	shell := ShellFor(state)
	screen, ok := shell.Screen(p)
	if !ok {
		return Decision{Outcome: NotFound, State: state, Shell: shell}
	}
	return Decision{Outcome: Render, State: state, Shell: shell, Screen: screen}
}

// IsPublic reports whether p is reachable without a session.
func IsPublic(p string) bool {
	_, ok := publicPaths[Clean(p)]
	return ok
}

// Clean normalizes a request path: rooted, no trailing slash.
func Clean(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
