package services

import (
	"github.com/kelsos/makerspace-demo/internal/logger"
	"github.com/kelsos/makerspace-demo/internal/models"
)

const UserDeletedMessage = "User has been successfully deleted."

// UserDirectory is a fixed-tenant directory: every operation resolves to the
// one configured user and nothing is ever written.
type UserDirectory struct {
	tenant models.User
}

// NewUserDirectory creates a directory serving tenant
func NewUserDirectory(tenant models.User) *UserDirectory {
	return &UserDirectory{
		tenant: tenant.Normalized(),
	}
}

// Login returns the tenant. No token is issued.
func (d *UserDirectory) Login() models.User {
	logger.Debug("Login resolved to tenant %s", d.tenant.UserID)
	return d.tenant.Normalized()
}

// Create acknowledges a user creation without creating anything
func (d *UserDirectory) Create() models.User {
	logger.Debug("Create user acknowledged for tenant %s", d.tenant.UserID)
	return d.tenant.Normalized()
}

// Delete acknowledges a user deletion without deleting anything
func (d *UserDirectory) Delete() string {
	logger.Debug("Delete user acknowledged for tenant %s", d.tenant.UserID)
	return UserDeletedMessage
}

// List returns the directory contents, always exactly the tenant
func (d *UserDirectory) List() []models.User {
	return []models.User{d.tenant.Normalized()}
}
