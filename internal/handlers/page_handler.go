package handlers

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"agency-console/internal/gate"
	"agency-console/internal/invoicepdf"
	"agency-console/internal/logger"
	"agency-console/internal/models"
	"agency-console/internal/services"
	"agency-console/web"
)

// PathTracker follows the screen the operator is looking at, so a forced
// logout can tell whether the login screen is already showing.
type PathTracker interface {
	SetPath(p string)
}

type publicPage struct {
	file   string
	title  string
	action string
	submit string
}

var publicPages = map[string]publicPage{
	"login":           {"login.html", "Sign in", "/console/api/auth/login", "Sign in"},
	"forgot-password": {"forgot_password.html", "Forgot password", "/console/api/auth/forgot-password", "Send code"},
	"verify-otp":      {"verify_otp.html", "Verify code", "/console/api/auth/verify-otp", "Verify"},
	"reset-password":  {"reset_password.html", "Reset password", "/console/api/auth/reset-password", "Update password"},
}

// screenSource is where a screen loads its data from and which invalidation
// events make it reload.
type screenSource struct {
	admin       string
	staff       string
	collections []string
}

var screenSources = map[string]screenSource{
	"dashboard": {"/console/api/dashboard", "/console/api/dashboard/staff",
		[]string{services.CollectionInvoices, services.CollectionProjects, services.CollectionClients, services.CollectionAttendance, services.CollectionProfile}},
	"clients":        {"/console/api/clients", "", []string{services.CollectionClients}},
	"salaries":       {"/console/api/salaries", "/console/api/salaries/history/me", []string{services.CollectionSalaries}},
	"invoices":       {"/console/api/invoices", "", []string{services.CollectionInvoices}},
	"projects":       {"/console/api/projects", "", []string{services.CollectionProjects}},
	"handovers":      {"/console/api/handovers", "/console/api/handovers", []string{services.CollectionHandovers}},
	"employees":      {"/console/api/employees", "", []string{services.CollectionEmployees}},
	"interns":        {"/console/api/interns", "", []string{services.CollectionInterns}},
	"notices":        {"/console/api/notices", "/console/api/notices", []string{services.CollectionNotices}},
	"communications": {"/console/api/communications", "/console/api/communications", []string{services.CollectionCommunications}},
	"reports":        {"/console/api/dashboard", "", []string{services.CollectionInvoices, services.CollectionProjects}},
	"settings":       {"/console/api/auth/me", "/console/api/profile", []string{services.CollectionProfile}},
	"attendance":     {"", "/console/api/attendance", []string{services.CollectionAttendance}},
}

type pageData struct {
	Title       string
	Company     invoicepdf.Company
	Action      string
	Submit      string
	User        models.AuthUser
	Shell       gate.Shell
	Path        string
	DataURL     string
	Collections string
}

// PageHandler serves every HTML route through the access gate.
type PageHandler struct {
	session  gate.Session
	tracker  PathTracker
	company  invoicepdf.Company
	public   map[string]*template.Template
	screen   *template.Template
	notFound *template.Template
	log      zerolog.Logger
}

func NewPageHandler(sess gate.Session, tracker PathTracker, company invoicepdf.Company) *PageHandler {
	public := make(map[string]*template.Template, len(publicPages))
	for key, page := range publicPages {
		public[key] = template.Must(template.ParseFS(web.FS, "templates/public.html", "templates/"+page.file))
	}
	return &PageHandler{
		session:  sess,
		tracker:  tracker,
		company:  company,
		public:   public,
		screen:   template.Must(template.ParseFS(web.FS, "templates/console.html", "templates/screen.html")),
		notFound: template.Must(template.ParseFS(web.FS, "templates/console.html", "templates/not_found.html")),
		log:      logger.WithComponent("pages"),
	}
}

func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p := gate.Clean(r.URL.Path)
	d := gate.Resolve(h.session, p)

	switch d.Outcome {
	case gate.RenderPublic:
		page := publicPages[d.Public]
		h.execute(w, http.StatusOK, h.public[d.Public], "public", pageData{
			Title: page.title, Company: h.company, Action: page.action, Submit: page.submit,
		})
	case gate.RedirectLogin:
		http.Redirect(w, r, d.Location, http.StatusFound)
	case gate.NotFound:
		h.track(p)
		user, _ := h.session.Current()
		h.execute(w, http.StatusNotFound, h.notFound, "console", pageData{
			Title: "Not found", Company: h.company, User: user, Shell: d.Shell, Path: p,
		})
	case gate.Render:
		h.track(p)
		user, _ := h.session.Current()
		src := screenSources[d.Screen.Key]
		url := src.admin
		if d.State != gate.Admin {
			url = src.staff
		}
		h.execute(w, http.StatusOK, h.screen, "console", pageData{
			Title:       d.Screen.Label,
			Company:     h.company,
			User:        user,
			Shell:       d.Shell,
			Path:        p,
			DataURL:     url,
			Collections: strings.Join(src.collections, ","),
		})
	}
}

func (h *PageHandler) track(p string) {
	if h.tracker != nil {
		h.tracker.SetPath(p)
	}
}

func (h *PageHandler) execute(w http.ResponseWriter, status int, t *template.Template, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		h.log.Error().Err(err).Str("template", name).Msg("Failed to render page")
	}
}
