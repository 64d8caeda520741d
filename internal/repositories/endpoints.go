package repositories

import (
	"net/url"

	"agency-console/internal/models"
)

// REST API paths, relative to the configured base URL.
const (
	pathForgotPassword = "/api/auth/forgot-password"
	pathVerifyOTP      = "/api/auth/verify-otp"
	pathResetPassword  = "/api/auth/reset-password"

	pathClient        = "/api/client"
	pathProject       = "/api/project"
	pathInvoice       = "/api/invoice"
	pathEmployee      = "/api/employee"
	pathIntern        = "/api/intern"
	pathHandover      = "/api/handover"
	pathNotice        = "/api/notice"
	pathCommunication = "/api/communication"
	pathAttendance    = "/api/attendance"
	pathSalary        = "/api/salary"
)

func loginPath(role models.Role) string {
	return "/api/" + string(role) + "/login"
}

// join appends escaped path segments to base.
func join(base string, segments ...string) string {
	for _, s := range segments {
		base += "/" + url.PathEscape(s)
	}
	return base
}
