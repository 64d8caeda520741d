package adapters

import "agency-console/internal/models"

// Envelope keys used by the list endpoints.
const (
	KeyClients        = "clients"
	KeyInvoices       = "invoice"
	KeyProjects       = "projects"
	KeyEmployees      = "employees"
	KeyInterns        = "interns"
	KeyNotices        = "notices"
	KeyCommunications = "communications"
	KeyAttendance     = "attendance"
	KeyHandovers      = "handovers"
	KeySalaries       = "salaries"
	KeyStats          = "stats"
	KeyHistory        = "history"
)

func DecodeClients(body []byte) ([]models.Client, error) {
	return decodeList("client", body, KeyClients, infallible(AdaptClient))
}

func DecodeInvoices(body []byte) ([]models.Invoice, error) {
	return decodeList("invoice", body, KeyInvoices, infallible(AdaptInvoice))
}

func DecodeInvoice(body []byte) (models.Invoice, error) {
	return decodeOne("invoice", body, singleKey(body, "invoice"), infallible(AdaptInvoice))
}

func DecodeProjects(body []byte) ([]models.Project, error) {
	return decodeList("project", body, KeyProjects, AdaptProject)
}

func DecodeProject(body []byte) (models.Project, error) {
	return decodeOne("project", body, singleKey(body, "project"), AdaptProject)
}

func DecodeEmployees(body []byte) ([]models.Employee, error) {
	return decodeList("employee", body, KeyEmployees, infallible(AdaptEmployee))
}

func DecodeEmployeeProfile(body []byte) (models.Employee, error) {
	return decodeOne("employee", body, singleKey(body, "employee"), infallible(AdaptEmployee))
}

func DecodeInterns(body []byte) ([]models.Intern, error) {
	return decodeList("intern", body, KeyInterns, infallible(AdaptIntern))
}

func DecodeInternProfile(body []byte) (models.Intern, error) {
	return decodeOne("intern", body, singleKey(body, "intern"), infallible(AdaptIntern))
}

// DecodeHandovers reads /handover/all, which returns a bare array.
func DecodeHandovers(body []byte) ([]models.Handover, error) {
	return decodeList("handover", body, KeyHandovers, AdaptHandover)
}

func DecodeHandover(body []byte) (models.Handover, error) {
	return decodeOne("handover", body, singleKey(body, "handover"), AdaptHandover)
}

func DecodeSalaryPayments(body []byte) ([]models.SalaryPayment, error) {
	key := KeySalaries
	if !hasKey(body, key) {
		key = KeyHistory
	}
	return decodeList("salary", body, key, AdaptSalaryPayment)
}

func DecodeSalaryStats(body []byte) ([]models.SalaryStat, error) {
	return decodeList("salary.stats", body, KeyStats, infallible(AdaptSalaryStat))
}

func DecodeNotices(body []byte) ([]models.Notice, error) {
	return decodeList("notice", body, KeyNotices, infallible(AdaptNotice))
}

func DecodeNotice(body []byte) (models.Notice, error) {
	return decodeOne("notice", body, singleKey(body, "notice"), infallible(AdaptNotice))
}

func DecodeCommunications(body []byte) ([]models.Communication, error) {
	return decodeList("communication", body, KeyCommunications, infallible(AdaptCommunication))
}

func DecodeCommunication(body []byte) (models.Communication, error) {
	return decodeOne("communication", body, singleKey(body, "communication"), infallible(AdaptCommunication))
}

func DecodeAttendance(body []byte) ([]models.Attendance, error) {
	return decodeList("attendance", body, KeyAttendance, infallible(AdaptAttendance))
}

// DecodeLogin reads a login response: {token, admin|employee|intern}.
func DecodeLogin(body []byte, role models.Role) (string, models.AuthUser, error) {
	token := stringAt(body, "token")
	if token == "" {
		return "", models.AuthUser{}, &DecodeError{Entity: "login", Field: "token", Index: -1, Err: ErrMissingField}
	}
	user, err := decodeOne("login", body, string(role), func(w AuthUserWire) (models.AuthUser, error) {
		return AdaptAuthUser(w, role), nil
	})
	if err != nil {
		return "", models.AuthUser{}, err
	}
	return token, user, nil
}
