package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Jjustmee23/CyberShieldX-sub000/pkg/types"
)

// CreateScanRequest is the JSON body for POST /api/v1/scans.
type CreateScanRequest struct {
	ScanType string `json:"scanType"`
	ClientID string `json:"clientId"`
}

// decodeCreateScanRequest reads and validates the request body.
func decodeCreateScanRequest(r *http.Request) (*CreateScanRequest, error) {
	var req CreateScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	if req.ScanType == "" {
		return nil, fmt.Errorf("scanType is required")
	}
	if !types.ValidScanType(types.ScanType(req.ScanType)) {
		return nil, fmt.Errorf("unknown scan type %q", req.ScanType)
	}

	return &req, nil
}
