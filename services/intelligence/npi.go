// File: services/intelligence/npi.go
package ai

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"context"

	"clearcare/models"
)

// NPIClient searches the CMS NPI Registry, the public US database of
// licensed healthcare providers. No API key is required.
type NPIClient struct {
	BaseURL string
	client  *http.Client
}

func NewNPIClient(baseURL string) *NPIClient {
	return &NPIClient{
		BaseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type npiResponse struct {
	Results []struct {
		Number json.Number `json:"number"`
		Basic  struct {
			OrganizationName string `json:"organization_name"`
		} `json:"basic"`
		Addresses []struct {
			Address1        string `json:"address_1"`
			City            string `json:"city"`
			State           string `json:"state"`
			PostalCode      string `json:"postal_code"`
			TelephoneNumber string `json:"telephone_number"`
		} `json:"addresses"`
	} `json:"results"`
}

// FindProviders returns organizations (entity type 2) matching the
// taxonomy near a zip code. Individual practitioners are excluded so the
// list contains facilities, not single doctors.
func (c *NPIClient) FindProviders(ctx context.Context, zipCode, specialty string, limit int) ([]models.Hospital, error) {
	params := url.Values{}
	params.Set("version", "2.1")
	params.Set("postal_code", zipCode)
	params.Set("taxonomy_description", specialty)
	params.Set("entity_type_code", "2")
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("npi registry request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("npi registry http %d", resp.StatusCode)
	}

	var decoded npiResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("npi registry decode failed: %w", err)
	}

	var hospitals []models.Hospital
	for _, r := range decoded.Results {
		name := strings.TrimSpace(r.Basic.OrganizationName)
		if name == "" {
			continue
		}
		h := models.Hospital{
			Name:          name,
			NPI:           r.Number.String(),
			NetworkStatus: models.NetworkUnknown,
		}
		if len(r.Addresses) > 0 {
			addr := r.Addresses[0]
			h.Address = fmt.Sprintf("%s, %s, %s %s", addr.Address1, addr.City, addr.State, addr.PostalCode)
			h.Phone = addr.TelephoneNumber
		}
		hospitals = append(hospitals, h)
	}
	return hospitals, nil
}
