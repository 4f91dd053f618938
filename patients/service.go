package patients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/careplus/go-frontdesk-client/cursor"
	"github.com/careplus/go-frontdesk-client/gateway"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	inpatientsPath    = "/api/Inpatients"
	companySearchPath = "/api/CompanySearch"

	// DefaultPageSize matches the backend's default page.
	DefaultPageSize = 10
)

// API is the authorized-request surface of the gateway the service needs.
type API interface {
	Do(ctx context.Context, method, path string, body, out any) error
}

// Service drives the inpatient maintenance screen: lookups, mutations, and
// cursors over the paged record set. Mutations change membership or ordering
// of the collection, so any live cursor must be Invalidated after a
// successful Create, Update, or Delete.
type Service struct {
	api API
	log zerolog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the structured logger.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Service) { s.log = log }
}

// NewService initialises a Service with its required dependencies.
func NewService(api API, options ...Option) (*Service, error) {
	if api == nil {
		return nil, errors.New("[patients.NewService] api is required")
	}
	s := &Service{api: api, log: zerolog.Nop()}
	for _, opt := range options {
		opt(s)
	}
	return s, nil
}

// Get fetches a single record by id.
func (s *Service) Get(ctx context.Context, id string) (*Inpatient, error) {
	var patient Inpatient
	if err := s.api.Do(ctx, http.MethodGet, inpatientsPath+"/"+url.PathEscape(id), nil, &patient); err != nil {
		return nil, errors.Wrap(err, "[patients.Get]")
	}
	return &patient, nil
}

// Create registers a new patient record.
func (s *Service) Create(ctx context.Context, patient Inpatient) (*Inpatient, error) {
	var created Inpatient
	if err := s.api.Do(ctx, http.MethodPost, inpatientsPath, patient, &created); err != nil {
		return nil, errors.Wrap(err, "[patients.Create]")
	}
	s.log.Info().Str("patient", created.PatientID).Msg("patient created")
	return &created, nil
}

// Update replaces the record identified by id.
func (s *Service) Update(ctx context.Context, id string, patient Inpatient) (*Inpatient, error) {
	var updated Inpatient
	if err := s.api.Do(ctx, http.MethodPut, inpatientsPath+"/"+url.PathEscape(id), patient, &updated); err != nil {
		return nil, errors.Wrap(err, "[patients.Update]")
	}
	s.log.Info().Str("patient", id).Msg("patient updated")
	return &updated, nil
}

// Delete removes the record identified by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.api.Do(ctx, http.MethodDelete, inpatientsPath+"/"+url.PathEscape(id), nil, nil); err != nil {
		return errors.Wrap(err, "[patients.Delete]")
	}
	s.log.Info().Str("patient", id).Msg("patient deleted")
	return nil
}

// Page fetches one page of the record set.
func (s *Service) Page(ctx context.Context, pageNumber, pageSize int) (*gateway.Page[Inpatient], error) {
	query := url.Values{
		"pageNumber": {strconv.Itoa(pageNumber)},
		"pageSize":   {strconv.Itoa(pageSize)},
	}
	var page gateway.Page[Inpatient]
	if err := s.api.Do(ctx, http.MethodGet, fmt.Sprintf("%s?%s", inpatientsPath, query.Encode()), nil, &page); err != nil {
		return nil, errors.Wrap(err, "[patients.Page]")
	}
	return &page, nil
}

// NewCursor creates a navigation cursor over one page of records. The
// source key encodes the pagination parameters, so cursors over different
// pages never share a memoized fetch.
func (s *Service) NewCursor(pageNumber, pageSize int) *cursor.Cursor[Inpatient] {
	key := fmt.Sprintf("inpatients:%d:%d", pageNumber, pageSize)
	return cursor.New(key, func(ctx context.Context) ([]Inpatient, error) {
		page, err := s.Page(ctx, pageNumber, pageSize)
		if err != nil {
			return nil, err
		}
		return page.Data, nil
	})
}

// Companies lists the corporate accounts for the company search wizard.
func (s *Service) Companies(ctx context.Context) ([]Company, error) {
	var companies []Company
	if err := s.api.Do(ctx, http.MethodGet, companySearchPath, nil, &companies); err != nil {
		return nil, errors.Wrap(err, "[patients.Companies]")
	}
	return companies, nil
}
