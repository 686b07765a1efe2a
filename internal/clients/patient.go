// Package clients holds the HTTP clients the appointment scheduler uses
// to talk to its peer services. Base URLs come from config; every call
// rides the caller's context, so timeouts are bounded by the service
// issuing the call.
package clients

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

type PatientClient struct {
	baseURL string
	http    *http.Client
}

func NewPatientClient(baseURL string, timeout time.Duration) *PatientClient {
	return &PatientClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// PatientExists asks the registry for the patient record. A 404 is the
// one answer that means "no such patient"; anything other than 200 or
// 404 means the registry could not be trusted to answer and is an error.
func (c *PatientClient) PatientExists(ctx context.Context, patientID int64) (bool, error) {
	url := fmt.Sprintf("%s/patients/%d", c.baseURL, patientID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("build registry request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("call patient registry: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("patient registry returned status %d", resp.StatusCode)
	}
}
