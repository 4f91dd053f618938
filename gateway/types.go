package gateway

// Credentials are the values submitted on the login form. They are sent to
// the backend and never persisted anywhere in the client.
type Credentials struct {
	EmployeeID string `json:"empId"`
	Password   string `json:"password"`
}

// loginResponse is the wire shape of POST /api/Auth/login.
type loginResponse struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Data    *loginData `json:"data"`
	Errors  []string   `json:"errors"`
}

type loginData struct {
	Token     string `json:"token"`
	FullName  string `json:"fullName"`
	Role      string `json:"role"`
	UserID    string `json:"userId"`
	ExpiresAt string `json:"expiresAt"`
}

// validateResponse is the wire shape of POST /api/Auth/validate.
type validateResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LoginResult is the successful outcome of a login call.
type LoginResult struct {
	Token     string
	FullName  string
	Role      string
	UserID    string
	ExpiresAt string // RFC 3339 from the backend; may be empty
}

// Page is the envelope every paged collection endpoint returns.
type Page[T any] struct {
	Data            []T  `json:"data"`
	TotalCount      int  `json:"totalCount"`
	PageNumber      int  `json:"pageNumber"`
	PageSize        int  `json:"pageSize"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}
