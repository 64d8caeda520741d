package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agency-console/internal/models"
)

type fakeSession struct {
	user *models.AuthUser
}

func (f fakeSession) Current() (models.AuthUser, bool) {
	if f.user == nil {
		return models.AuthUser{}, false
	}
	return *f.user, true
}

func as(role models.Role) fakeSession {
	return fakeSession{user: &models.AuthUser{ID: "u1", Name: "Asha", Role: role}}
}

func TestNext(t *testing.T) {
	tests := []struct {
		name    string
		from    State
		event   Event
		want    State
		wantErr error
	}{
		{"admin login", Unauthenticated, Login(models.RoleAdmin), Admin, nil},
		{"employee login", Unauthenticated, Login(models.RoleEmployee), Employee, nil},
		{"intern login", Unauthenticated, Login(models.RoleIntern), Intern, nil},
		{"unknown role falls back to admin", Unauthenticated, Login("manager"), Admin, nil},
		{"logout", Employee, Logout(), Unauthenticated, nil},
		{"forced logout", Admin, ForcedLogout(), Unauthenticated, nil},
		{"logout while anonymous", Unauthenticated, Logout(), Unauthenticated, nil},
		{"no direct role switch", Employee, Login(models.RoleAdmin), Employee, ErrSwitchRole},
		{"no relogin", Intern, Login(models.RoleIntern), Intern, ErrSwitchRole},
		{"unknown event", Admin, Event{Kind: 99}, Admin, ErrUnknownEvent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Next(tt.from, tt.event)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_PublicPaths(t *testing.T) {
	for _, p := range []string{"/login", "/forgot-password", "/verify-otp", "/reset-password/"} {
		d := Resolve(fakeSession{}, p)
		assert.Equal(t, RenderPublic, d.Outcome, p)
		assert.True(t, IsPublic(p))
	}
	d := Resolve(as(models.RoleAdmin), "/login")
	assert.Equal(t, "login", d.Public)
}

func TestResolve_AnonymousRedirects(t *testing.T) {
	for _, p := range []string{"/", "/clients", "/nope"} {
		d := Resolve(fakeSession{}, p)
		assert.Equal(t, RedirectLogin, d.Outcome)
		assert.Equal(t, LoginPath, d.Location)
	}
}

func TestResolve_RoleShells(t *testing.T) {
	d := Resolve(as(models.RoleAdmin), "/invoices")
	require.Equal(t, Render, d.Outcome)
	assert.Equal(t, "admin", d.Shell.Name)
	assert.Equal(t, "invoices", d.Screen.Key)

	d = Resolve(as(models.RoleEmployee), "/invoices")
	assert.Equal(t, NotFound, d.Outcome)
	assert.Equal(t, "employee", d.Shell.Name)

	d = Resolve(as(models.RoleIntern), "/attendance")
	require.Equal(t, Render, d.Outcome)
	assert.Equal(t, "intern", d.Shell.Name)

	d = Resolve(as(models.RoleAdmin), "/attendance")
	assert.Equal(t, NotFound, d.Outcome)
}

func TestResolve_LandingIsRoleSpecific(t *testing.T) {
	assert.Equal(t, "dashboard", Resolve(as(models.RoleAdmin), "/").Shell.Landing)
	assert.Equal(t, "employee-dashboard", Resolve(as(models.RoleEmployee), "/").Shell.Landing)
	assert.Equal(t, "intern-dashboard", Resolve(as(models.RoleIntern), "/").Shell.Landing)
}

func TestResolve_UnknownRoleUsesAdminShell(t *testing.T) {
	d := Resolve(as(""), "/clients")
	require.Equal(t, Render, d.Outcome)
	assert.Equal(t, Admin, d.State)
	assert.Equal(t, "admin", d.Shell.Name)
}

func TestClean(t *testing.T) {
	assert.Equal(t, "/", Clean(""))
	assert.Equal(t, "/clients", Clean("clients/"))
	assert.Equal(t, "/clients", Clean("/clients/../clients"))
}

func TestShellAllows(t *testing.T) {
	assert.True(t, ShellFor(Admin).Allows("invoices"))
	assert.False(t, ShellFor(Admin).Allows("attendance"))
	assert.True(t, ShellFor(Intern).Allows("attendance"))
	assert.False(t, ShellFor(Employee).Allows("clients"))
}
