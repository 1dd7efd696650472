// Package companieshouse provides a typed client for the UK Companies House
// public REST API: company search, company profiles, officer lists, persons
// with significant control, and officer appointments.
package companieshouse

import (
	"context"

	"github.com/alfredjeanlab/corpnet/internal/model"
)

// Client is the interface the rest of corpnet uses to talk to the registry.
// It is implemented by HTTPClient and can be faked in tests.
type Client interface {
	// SearchCompanies searches by company name or number. maxResults is
	// clamped to MaxSearchResults; zero means the default page size. A search
	// that matches nothing returns a NotFoundError.
	SearchCompanies(ctx context.Context, query string, maxResults int) ([]*model.Company, error)

	// GetCompanyProfile fetches the full profile for a company number.
	GetCompanyProfile(ctx context.Context, companyNumber string) (*model.Company, error)

	// GetOfficers lists the officers of a company. A company with no officer
	// list returns an empty slice, not an error.
	GetOfficers(ctx context.Context, companyNumber string) ([]*model.Officer, error)

	// GetPSCs lists persons with significant control over a company. A
	// company with no PSC register returns an empty slice, not an error.
	GetPSCs(ctx context.Context, companyNumber string) ([]*model.PSC, error)

	// GetAppointments lists the companies an officer is appointed at, keyed
	// by the officer ID extracted from the officer list's appointments link.
	GetAppointments(ctx context.Context, officerID string) ([]*model.Appointment, error)

	// Lifecycle
	Close() error
}
