package companieshouse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/alfredjeanlab/corpnet/internal/model"
)

// Registry hosts. The sandbox host serves test data against test API keys.
const (
	LiveBaseURL    = "https://api.company-information.service.gov.uk"
	SandboxBaseURL = "https://api-sandbox.company-information.service.gov.uk"
)

const (
	// MaxSearchResults is the hard cap on items_per_page the client will
	// request, regardless of what the caller asks for.
	MaxSearchResults = 50

	// defaultSearchResults is used when the caller passes zero.
	defaultSearchResults = 20

	// defaultTimeout bounds each outbound call.
	defaultTimeout = 10 * time.Second

	// minRequestInterval is the client-side politeness throttle between
	// consecutive requests.
	minRequestInterval = 100 * time.Millisecond

	// retryBackoff is the fixed pause before the single retry on HTTP 429
	// or a transient transport failure. There is exactly one retry; anything
	// more would mask a dead API key behind endless 401-adjacent noise.
	retryBackoff = 500 * time.Millisecond
)

// HTTPClient implements Client against the Companies House REST API. The API
// key is sent as the username of HTTP basic auth with an empty password, per
// the registry's authentication scheme. The client holds no state across
// calls beyond the key, base URL, and throttle clock.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	mu          sync.Mutex
	lastRequest time.Time
}

// NewHTTPClient creates a client for the given base URL (LiveBaseURL or
// SandboxBaseURL) and API key.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// SetTimeout overrides the per-call timeout.
func (c *HTTPClient) SetTimeout(d time.Duration) {
	c.httpClient.Timeout = d
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Search ---

// searchItem is one row of the /search/companies response. Search rows use
// "title" for the company name and a flattened "address" object.
type searchItem struct {
	CompanyNumber  string        `json:"company_number"`
	Title          string        `json:"title"`
	CompanyStatus  string        `json:"company_status"`
	CompanyType    string        `json:"company_type"`
	DateOfCreation string        `json:"date_of_creation"`
	Address        model.Address `json:"address"`
}

func (c *HTTPClient) SearchCompanies(ctx context.Context, query string, maxResults int) ([]*model.Company, error) {
	if maxResults <= 0 {
		maxResults = defaultSearchResults
	}
	if maxResults > MaxSearchResults {
		maxResults = MaxSearchResults
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("items_per_page", fmt.Sprintf("%d", maxResults))

	var resp struct {
		Items []searchItem `json:"items"`
	}
	if err := c.getJSON(ctx, "/search/companies?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, &NotFoundError{Resource: fmt.Sprintf("companies matching %q", query)}
	}

	// The API occasionally returns more rows than items_per_page asked for;
	// never hand back more than the caller requested.
	if len(resp.Items) > maxResults {
		resp.Items = resp.Items[:maxResults]
	}

	companies := make([]*model.Company, 0, len(resp.Items))
	for _, item := range resp.Items {
		companies = append(companies, &model.Company{
			CompanyNumber:  item.CompanyNumber,
			CompanyName:    item.Title,
			CompanyStatus:  model.CompanyStatus(item.CompanyStatus),
			CompanyType:    item.CompanyType,
			DateOfCreation: item.DateOfCreation,
			Address:        item.Address,
		})
	}
	return companies, nil
}

// --- Profile ---

func (c *HTTPClient) GetCompanyProfile(ctx context.Context, companyNumber string) (*model.Company, error) {
	var resp struct {
		CompanyNumber  string        `json:"company_number"`
		CompanyName    string        `json:"company_name"`
		CompanyStatus  string        `json:"company_status"`
		Type           string        `json:"type"`
		DateOfCreation string        `json:"date_of_creation"`
		SICCodes       []string      `json:"sic_codes"`
		Address        model.Address `json:"registered_office_address"`
	}
	path := "/company/" + url.PathEscape(companyNumber)
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}
	if resp.CompanyNumber == "" {
		return nil, &MalformedResponseError{
			Endpoint: path,
			Err:      fmt.Errorf("profile response missing company_number"),
		}
	}

	return &model.Company{
		CompanyNumber:  resp.CompanyNumber,
		CompanyName:    resp.CompanyName,
		CompanyStatus:  model.CompanyStatus(resp.CompanyStatus),
		CompanyType:    resp.Type,
		DateOfCreation: resp.DateOfCreation,
		SICCodes:       resp.SICCodes,
		Address:        resp.Address,
	}, nil
}

// --- Officers ---

func (c *HTTPClient) GetOfficers(ctx context.Context, companyNumber string) ([]*model.Officer, error) {
	var resp struct {
		Items []struct {
			Name               string `json:"name"`
			OfficerRole        string `json:"officer_role"`
			AppointedOn        string `json:"appointed_on"`
			ResignedOn         string `json:"resigned_on"`
			Nationality        string `json:"nationality"`
			Occupation         string `json:"occupation"`
			CountryOfResidence string `json:"country_of_residence"`
			Links              struct {
				Officer struct {
					Appointments string `json:"appointments"`
				} `json:"officer"`
			} `json:"links"`
		} `json:"items"`
	}
	path := "/company/" + url.PathEscape(companyNumber) + "/officers"
	if err := c.getJSON(ctx, path, &resp); err != nil {
		// Companies with no filed officer list (including some dissolved
		// companies) return 404; treat that as an empty list.
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	officers := make([]*model.Officer, 0, len(resp.Items))
	for _, item := range resp.Items {
		officers = append(officers, &model.Officer{
			OfficerID:          officerIDFromLink(item.Links.Officer.Appointments),
			Name:               item.Name,
			Role:               model.OfficerRole(item.OfficerRole),
			AppointedOn:        item.AppointedOn,
			ResignedOn:         item.ResignedOn,
			Nationality:        item.Nationality,
			Occupation:         item.Occupation,
			CountryOfResidence: item.CountryOfResidence,
			CompanyNumber:      companyNumber,
		})
	}
	return officers, nil
}

// officerIDFromLink extracts the officer ID from an appointments link of the
// form "/officers/{id}/appointments". Returns "" when the link is absent or
// not in the expected shape.
func officerIDFromLink(link string) string {
	parts := strings.Split(strings.Trim(link, "/"), "/")
	if len(parts) == 3 && parts[0] == "officers" && parts[2] == "appointments" {
		return parts[1]
	}
	return ""
}

// --- PSCs ---

func (c *HTTPClient) GetPSCs(ctx context.Context, companyNumber string) ([]*model.PSC, error) {
	var resp struct {
		Items []struct {
			Name               string   `json:"name"`
			Kind               string   `json:"kind"`
			NaturesOfControl   []string `json:"natures_of_control"`
			NotifiedOn         string   `json:"notified_on"`
			CeasedOn           string   `json:"ceased_on"`
			Nationality        string   `json:"nationality"`
			CountryOfResidence string   `json:"country_of_residence"`
			Links              struct {
				Self string `json:"self"`
			} `json:"links"`
		} `json:"items"`
	}
	path := "/company/" + url.PathEscape(companyNumber) + "/persons-with-significant-control"
	if err := c.getJSON(ctx, path, &resp); err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	pscs := make([]*model.PSC, 0, len(resp.Items))
	for _, item := range resp.Items {
		pscs = append(pscs, &model.PSC{
			PSCID:              lastPathSegment(item.Links.Self),
			Name:               item.Name,
			Kind:               pscKindFromAPI(item.Kind),
			NaturesOfControl:   item.NaturesOfControl,
			NotifiedOn:         item.NotifiedOn,
			CeasedOn:           item.CeasedOn,
			Nationality:        item.Nationality,
			CountryOfResidence: item.CountryOfResidence,
			CompanyNumber:      companyNumber,
		})
	}
	return pscs, nil
}

// pscKindFromAPI maps the registry's verbose kind strings (e.g.
// "corporate-entity-person-with-significant-control") to PSCKind.
func pscKindFromAPI(kind string) model.PSCKind {
	switch {
	case strings.Contains(kind, "corporate-entity"):
		return model.PSCCorporateEntity
	case strings.Contains(kind, "legal-person"):
		return model.PSCLegalPerson
	default:
		return model.PSCIndividual
	}
}

func lastPathSegment(p string) string {
	parts := strings.Split(strings.Trim(p, "/"), "/")
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// --- Appointments ---

func (c *HTTPClient) GetAppointments(ctx context.Context, officerID string) ([]*model.Appointment, error) {
	var resp struct {
		Items []struct {
			OfficerRole string `json:"officer_role"`
			AppointedOn string `json:"appointed_on"`
			ResignedOn  string `json:"resigned_on"`
			AppointedTo struct {
				CompanyNumber string `json:"company_number"`
				CompanyName   string `json:"company_name"`
				CompanyStatus string `json:"company_status"`
			} `json:"appointed_to"`
		} `json:"items"`
	}
	path := "/officers/" + url.PathEscape(officerID) + "/appointments"
	if err := c.getJSON(ctx, path, &resp); err != nil {
		return nil, err
	}

	appts := make([]*model.Appointment, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.AppointedTo.CompanyNumber == "" {
			continue
		}
		appts = append(appts, &model.Appointment{
			CompanyNumber: item.AppointedTo.CompanyNumber,
			CompanyName:   item.AppointedTo.CompanyName,
			CompanyStatus: item.AppointedTo.CompanyStatus,
			Role:          model.OfficerRole(item.OfficerRole),
			AppointedOn:   item.AppointedOn,
			ResignedOn:    item.ResignedOn,
		})
	}
	return appts, nil
}

// --- internal helpers ---

// throttle enforces the minimum interval between consecutive requests.
func (c *HTTPClient) throttle() {
	c.mu.Lock()
	wait := minRequestInterval - time.Since(c.lastRequest)
	c.lastRequest = time.Now().Add(wait)
	c.mu.Unlock()
	if wait > 0 {
		time.Sleep(wait)
	}
}

// getJSON performs a GET with basic auth and decodes the JSON response into
// result. HTTP 429 and transport failures are retried exactly once after a
// fixed back-off; all other failures surface immediately as typed errors.
func (c *HTTPClient) getJSON(ctx context.Context, path string, result any) error {
	err := c.doOnce(ctx, path, result)
	if err == nil {
		return nil
	}
	if !IsRateLimit(err) && !IsTransport(err) {
		return err
	}

	select {
	case <-time.After(retryBackoff):
	case <-ctx.Done():
		return &TransportError{Op: "GET " + path, Err: ctx.Err()}
	}
	return c.doOnce(ctx, path, result)
}

func (c *HTTPClient) doOnce(ctx context.Context, path string, result any) error {
	c.throttle()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, "")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: "GET " + path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: "reading response for " + path, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &AuthError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	case resp.StatusCode == http.StatusNotFound:
		return &NotFoundError{Resource: path}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &RateLimitError{Message: errorMessage(respBody)}
	case resp.StatusCode >= 400:
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return &MalformedResponseError{Endpoint: path, Err: err}
		}
	}
	return nil
}

// errorMessage pulls a human-readable message out of an error response body.
func errorMessage(body []byte) string {
	var errResp struct {
		Error  string `json:"error"`
		Errors []struct {
			Error string `json:"error"`
		} `json:"errors"`
	}
	if json.Unmarshal(body, &errResp) == nil {
		if errResp.Error != "" {
			return errResp.Error
		}
		if len(errResp.Errors) > 0 && errResp.Errors[0].Error != "" {
			return errResp.Errors[0].Error
		}
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = "no response body"
	}
	return msg
}
