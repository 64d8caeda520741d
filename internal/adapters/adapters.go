package adapters

import (
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"agency-console/internal/logger"
	"agency-console/internal/models"
	"agency-console/internal/timeutil"
)

const (
	UnknownClient  = "Unknown Client"
	UnknownProject = "Unknown Project"
	UnknownCompany = "Unknown Company"
	Unknown        = "Unknown"
)

// adapterLog is built on first use so it picks up the configured global logger.
var adapterLog = sync.OnceValue(func() zerolog.Logger {
	return logger.WithComponent("adapters")
})

func parseDate(s string) time.Time {
	t, _ := timeutil.ParseAPIDate(s)
	return t
}

func AdaptClient(w ClientWire) models.Client {
	status := models.ClientStatus(strings.ToLower(w.Status))
	switch status {
	case models.ClientActive, models.ClientInactive, models.ClientProspect:
	default:
		status = models.ClientActive
	}
	c := models.Client{
		ID:          w.ID,
		Name:        w.ClientName,
		Company:     w.ClientName,
		Email:       w.Email,
		Phone:       w.ContactNumber,
		Address:     w.Address,
		ReferenceNo: w.ReferenceNo,
		TotalDue:    decimal.Zero,
		Status:      status,
		JoinDate:    parseDate(w.CreatedAt),
		Initials:    models.Initials(w.ClientName),
	}
	if w.TotalDue.Valid {
		c.TotalDue = w.TotalDue.Decimal
		c.DueReported = true
	}
	return c
}

// AdaptInvoice maps an invoice record. Total equals the amount; GrandTotal is
// the amount plus the previous-due snapshot stored with the invoice.
func AdaptInvoice(w InvoiceWire) models.Invoice {
	total := w.Amount
	grand := total.Add(w.PreviousDue)
	if w.GrandTotal.Valid && !w.GrandTotal.Decimal.Equal(grand) {
		l := adapterLog()
		l.Warn().
			Str("invoice", w.ID).
			Str("server_grand_total", w.GrandTotal.Decimal.String()).
			Str("derived_grand_total", grand.String()).
			Msg("Server grand total disagrees with amount + previous due")
	}

	status := models.InvoiceStatus(strings.ToLower(w.Status))
	if !status.Valid() {
		status = models.InvoicePending
	}

	breakdown := make([]models.DueItem, 0, len(w.DueBreakdown))
	for _, d := range w.DueBreakdown {
		breakdown = append(breakdown, models.DueItem{ProjectName: d.ProjectName, Amount: d.Amount})
	}

	return models.Invoice{
		ID:           w.ID,
		Number:       w.InvoiceNo,
		ReferenceNo:  w.ReferenceNo,
		ClientID:     w.ClientID.ID,
		ClientName:   w.ClientID.FieldOr("clientName", UnknownClient),
		Company:      w.ClientID.FieldOr("clientName", UnknownCompany),
		ProjectID:    w.ProjectID.ID,
		ProjectName:  w.ProjectID.FieldOr("projectName", UnknownProject),
		Description:  w.Description,
		Amount:       w.Amount,
		Total:        total,
		PreviousDue:  w.PreviousDue,
		GrandTotal:   grand,
		DueBreakdown: breakdown,
		Status:       status,
		Method:       models.PaymentMethod(w.Method),
		Date:         parseDate(w.Date),
	}
}

// AdaptProject maps a project record including any populated invoices.
// Invoices sent as bare ids carry no data and are skipped.
func AdaptProject(w ProjectWire) (models.Project, error) {
	invoices := make([]models.Invoice, 0, len(w.Invoices))
	for _, ref := range w.Invoices {
		if !ref.Populated {
			continue
		}
		var iw InvoiceWire
		if err := decodeRecord("project.invoices", -1, ref.Raw(), &iw); err != nil {
			return models.Project{}, err
		}
		inv := AdaptInvoice(iw)
		if inv.ProjectID == "" {
			inv.ProjectID = w.ID
		}
		if inv.ProjectName == UnknownProject && w.ProjectName != "" {
			inv.ProjectName = w.ProjectName
		}
		invoices = append(invoices, inv)
	}

	team := make([]string, 0, len(w.AssignedTeam))
	for _, m := range w.AssignedTeam {
		team = append(team, m.FieldOr("name", Unknown))
	}

	deadline := parseDate(w.EndDate)
	if deadline.IsZero() {
		deadline = parseDate(w.CreatedAt)
	}

	status := models.ProjectStatus(w.Status)
	return models.Project{
		ID:          w.ID,
		Name:        w.ProjectName,
		ClientID:    w.Client.ID,
		ClientName:  w.Client.FieldOr("clientName", UnknownClient),
		Status:      status,
		StatusKey:   status.Key(),
		Budget:      w.TotalAmount,
		TotalPaid:   w.TotalPaid,
		DueAmount:   w.DueAmount,
		Invoices:    invoices,
		StartDate:   parseDate(w.StartDate),
		Deadline:    deadline,
		Team:        team,
		TechStack:   w.TechStack,
		Progress:    status.Progress(),
		Description: w.Description,
	}, nil
}

func AdaptEmployee(w EmployeeWire) models.Employee {
	return models.Employee{
		ID:         w.ID,
		Name:       w.Name,
		Email:      w.Email,
		Phone:      w.Phone,
		Address:    w.Address,
		Role:       w.Role,
		Department: orDefault(w.Department, models.DefaultDepartment),
		Salary:     w.Salary,
		TotalPaid:  w.TotalPaid,
		Status:     orDefault(w.Status, "active"),
		JoinDate:   parseDate(w.CreatedAt),
		Initials:   models.Initials(w.Name),
	}
}

func AdaptIntern(w InternWire) models.Intern {
	return models.Intern{
		ID:         w.ID,
		Name:       w.Name,
		Email:      w.Email,
		Phone:      w.Phone,
		Address:    w.Address,
		Role:       w.Role,
		Department: orDefault(w.Department, models.DefaultDepartment),
		Duration:   w.Duration,
		Salary:     w.Salary,
		TotalPaid:  w.TotalPaid,
		Status:     orDefault(w.Status, "active"),
		JoinDate:   parseDate(w.CreatedAt),
		Initials:   models.Initials(w.Name),
	}
}

func AdaptHandover(w HandoverWire) (models.Handover, error) {
	assignee, err := models.NewPerson(models.PersonKind(w.AssigneeModel), w.AssigneeID.ID, w.AssigneeID.FieldOr("name", Unknown))
	if err != nil {
		return models.Handover{}, &DecodeError{Entity: "handover", Field: "assigneeModel", Index: -1, Err: err}
	}

	var creds models.Credentials
	if w.Credentials != nil {
		creds = models.Credentials(*w.Credentials)
	}

	status := models.HandoverStatus(w.Status)
	if status == "" {
		status = models.HandoverInProgress
	}

	return models.Handover{
		ID:           w.ID,
		ProjectID:    w.ProjectID.ID,
		ProjectName:  w.ProjectID.FieldOr("projectName", UnknownProject),
		Assignee:     assignee,
		HandoverDate: parseDate(w.HandoverDate),
		Deadline:     parseDate(w.Deadline),
		Credentials:  creds,
		Instructions: w.Instructions,
		Status:       status,
	}, nil
}

func AdaptSalaryPayment(w SalaryWire) (models.SalaryPayment, error) {
	name := w.PayeeName
	if name == "" {
		name = w.PayeeID.FieldOr("name", Unknown)
	}
	payee, err := models.NewPerson(models.PersonKind(w.PayeeModel), w.PayeeID.ID, name)
	if err != nil {
		return models.SalaryPayment{}, &DecodeError{Entity: "salary", Field: "payeeModel", Index: -1, Err: err}
	}
	return models.SalaryPayment{
		ID:          w.ID,
		Payee:       payee,
		Amount:      w.Amount,
		Month:       w.Month,
		Year:        w.Year,
		PaymentDate: parseDate(w.PaymentDate),
		Remarks:     w.Remarks,
	}, nil
}

func AdaptSalaryStat(w SalaryStatWire) models.SalaryStat {
	return models.SalaryStat{
		Year:        w.Key.Year,
		Month:       w.Key.Month,
		PayeeKind:   models.PersonKind(w.Key.PayeeModel),
		TotalAmount: w.TotalAmount,
		Count:       w.Count,
	}
}

func AdaptNotice(w NoticeWire) models.Notice {
	date := parseDate(w.Date)
	if date.IsZero() {
		date = parseDate(w.CreatedAt)
	}

	audience := models.Audience{Type: models.AudienceType(w.AudienceType)}
	switch audience.Type {
	case models.AudienceEmployee, models.AudienceIntern:
	case models.AudienceIndividual:
		if p, err := models.NewPerson(models.PersonKind(w.TargetModel), w.TargetID.ID, w.TargetID.FieldOr("name", Unknown)); err == nil {
			audience.Target = p
		}
	default:
		audience.Type = models.AudienceAll
	}

	return models.Notice{
		ID:       w.ID,
		Title:    w.Title,
		Content:  w.Content,
		Date:     date,
		Audience: audience,
	}
}

func AdaptCommunication(w CommunicationWire) models.Communication {
	author := w.SenderName
	if author == "" {
		author = w.CreatedBy.FieldOr("name", Unknown)
	}
	return models.Communication{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		AdminReply:  w.AdminReply,
		Resolution:  models.ResolutionFor(w.AdminReply),
		Author:      author,
		CreatedAt:   parseDate(w.CreatedAt),
	}
}

func AdaptAttendance(w AttendanceWire) models.Attendance {
	timeIn := parseDate(w.TimeIn)
	name := w.UserName
	if name == "" {
		name = w.UserID.FieldOr("name", Unknown)
	}
	status := models.AttendanceStatus(strings.ToLower(w.Status))
	if status == "" {
		status = models.AttendancePresent
	}
	return models.Attendance{
		ID:       orDefault(w.ID, w.AltID),
		UserID:   w.UserID.ID,
		UserName: name,
		UserKind: models.PersonKind(strings.ToLower(w.UserModel)),
		Date:     parseDate(w.Date),
		Status:   status,
		TimeIn:   timeIn,
	}
}

// AdaptAuthUser maps a login or profile user. loginRole is the portal the
// operator logged in through and wins over the record's role field, which for
// staff holds a job title.
func AdaptAuthUser(w AuthUserWire, loginRole models.Role) models.AuthUser {
	role := loginRole
	if role == "" {
		role, _ = models.ParseRole(w.Role)
	}
	return models.AuthUser{
		ID:    orDefault(w.ID, w.MgoID),
		Name:  w.Name,
		Email: w.Email,
		Role:  role,
	}
}

func orDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
