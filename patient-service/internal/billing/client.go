// Package billing is the patient service's client for the billing service.
// The boundary is a single unary call with fire-and-confirm semantics: the
// caller learns success or failure, nothing else.
package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ify-osakwe/hygea/shared/errs"
)

const defaultRequestTimeout = 5 * time.Second

// Client calls the billing service over HTTP. Failures are split into two
// kinds so the orchestrator can tell "never reached billing" from "billing
// said no": transport errors and timeouts wrap errs.ErrBillingUnavailable,
// non-2xx responses wrap errs.ErrBillingRejected.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}
}

type createAccountRequest struct {
	PatientID string `json:"patientId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// CreateAccount provisions a billing account for a persisted patient.
// The call blocks for at most the client timeout.
func (c *Client) CreateAccount(ctx context.Context, patientID, name, email string) error {
	body, err := json.Marshal(createAccountRequest{
		PatientID: patientID,
		Name:      name,
		Email:     email,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal billing request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/billing/accounts", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create billing request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrBillingUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%w: status %d: %s",
		errs.ErrBillingRejected, resp.StatusCode, strings.TrimSpace(string(detail)))
}
