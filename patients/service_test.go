package patients_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/careplus/go-frontdesk-client/cursor"
	"github.com/careplus/go-frontdesk-client/gateway"
	"github.com/careplus/go-frontdesk-client/patients"
	"github.com/stretchr/testify/require"
)

// fakeAPI answers Do calls from a canned response table keyed by
// "METHOD path-prefix" and counts the requests it serves.
type fakeAPI struct {
	responses map[string]any
	calls     []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{responses: make(map[string]any)}
}

func (f *fakeAPI) respond(method, pathPrefix string, body any) {
	f.responses[method+" "+pathPrefix] = body
}

func (f *fakeAPI) Do(_ context.Context, method, path string, _, out any) error {
	f.calls = append(f.calls, method+" "+path)
	for key, body := range f.responses {
		parts := strings.SplitN(key, " ", 2)
		if parts[0] != method || !strings.HasPrefix(path, parts[1]) {
			continue
		}
		if out == nil {
			return nil
		}
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		return json.Unmarshal(encoded, out)
	}
	return gateway.ErrRequestFailed
}

func (f *fakeAPI) countCalls(method, pathPrefix string) int {
	count := 0
	for _, call := range f.calls {
		parts := strings.SplitN(call, " ", 2)
		if parts[0] == method && strings.HasPrefix(parts[1], pathPrefix) {
			count++
		}
	}
	return count
}

func testPage() gateway.Page[patients.Inpatient] {
	return gateway.Page[patients.Inpatient]{
		Data: []patients.Inpatient{
			{PatientID: "P001", FirstName: "Amara", Surname: "Silva"},
			{PatientID: "P002", FirstName: "Bandu", Surname: "Perera"},
			{PatientID: "P003", FirstName: "Chamari", Surname: "Fonseka"},
		},
		TotalCount: 3,
		PageNumber: 1,
		PageSize:   10,
		TotalPages: 1,
	}
}

func TestGet(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET", "/api/Inpatients/P001", patients.Inpatient{PatientID: "P001", FirstName: "Amara"})

	service, err := patients.NewService(api)
	require.NoError(t, err)

	patient, err := service.Get(context.Background(), "P001")
	require.NoError(t, err)
	require.Equal(t, "Amara", patient.FirstName)
}

func TestPageDecodesEnvelope(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET", "/api/Inpatients?", testPage())

	service, err := patients.NewService(api)
	require.NoError(t, err)

	page, err := service.Page(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Equal(t, 3, page.TotalCount)
	require.Len(t, page.Data, 3)
	require.Equal(t, "P002", page.Data[1].PatientID)
}

func TestCursorNavigatesServicePage(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET", "/api/Inpatients?", testPage())

	service, err := patients.NewService(api)
	require.NoError(t, err)

	c := service.NewCursor(1, 10)
	require.Equal(t, "inpatients:1:10", c.SourceKey())

	first, err := c.First(context.Background())
	require.NoError(t, err)
	require.Equal(t, "P001", first.PatientID)

	next, err := c.Next(context.Background(), "P001")
	require.NoError(t, err)
	require.Equal(t, "P002", next.PatientID)

	last, err := c.Last(context.Background())
	require.NoError(t, err)
	require.Equal(t, "P003", last.PatientID)

	_, err = c.Next(context.Background(), "P003")
	require.ErrorIs(t, err, cursor.ErrNoNextRecord)

	// The whole walk was served by a single page fetch.
	require.Equal(t, 1, api.countCalls("GET", "/api/Inpatients?"))
}

func TestMutateThenInvalidateRefetches(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET", "/api/Inpatients?", testPage())
	api.respond("DELETE", "/api/Inpatients/P002", nil)

	service, err := patients.NewService(api)
	require.NoError(t, err)

	c := service.NewCursor(1, 10)
	_, err = c.First(context.Background())
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), "P002"))
	c.Invalidate()

	_, err = c.First(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, api.countCalls("GET", "/api/Inpatients?"))
}

func TestCreateAndUpdate(t *testing.T) {
	api := newFakeAPI()
	api.respond("POST", "/api/Inpatients", patients.Inpatient{PatientID: "P004", FirstName: "Dilan"})
	api.respond("PUT", "/api/Inpatients/P004", patients.Inpatient{PatientID: "P004", FirstName: "Dilan", Surname: "Jayawardena"})

	service, err := patients.NewService(api)
	require.NoError(t, err)

	created, err := service.Create(context.Background(), patients.Inpatient{FirstName: "Dilan"})
	require.NoError(t, err)
	require.Equal(t, "P004", created.PatientID)

	updated, err := service.Update(context.Background(), "P004", *created)
	require.NoError(t, err)
	require.Equal(t, "Jayawardena", updated.Surname)
}

func TestCompanies(t *testing.T) {
	api := newFakeAPI()
	api.respond("GET", "/api/CompanySearch", []patients.Company{{ID: "C1", Name: "Lanka Assurance"}})

	service, err := patients.NewService(api)
	require.NoError(t, err)

	companies, err := service.Companies(context.Background())
	require.NoError(t, err)
	require.Len(t, companies, 1)
	require.Equal(t, "Lanka Assurance", companies[0].Name)
}
