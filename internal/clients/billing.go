package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

type BillingClient struct {
	baseURL string
	http    *http.Client
}

func NewBillingClient(baseURL string, timeout time.Duration) *BillingClient {
	return &BillingClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// GenerateBill asks the billing ledger to create a bill for the patient.
// The scheduler treats any returned error as a swallowed best-effort
// failure, so this client only reports, it never retries.
func (c *BillingClient) GenerateBill(ctx context.Context, patientID int64) error {
	url := fmt.Sprintf("%s/bills/generate?patient_id=%d", c.baseURL, patientID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return fmt.Errorf("build billing request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call billing service: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("billing service returned status %d", resp.StatusCode)
	}

	return nil
}
