package verify

import (
	"context"
	"net/url"

	"go.uber.org/zap"

	"github.com/veriscope/veriscope-api/internal/models"
)

// LookupGSTIN fetches a business registration record by GSTIN.
func (c *Client) LookupGSTIN(ctx context.Context, gstin string) (*models.BusinessRecord, error) {
	var record models.BusinessRecord
	if err := c.getJSON(ctx, "/v1/gstin/"+url.PathEscape(gstin), nil, &record); err != nil {
		return nil, err
	}
	c.logger.Debug("gstin lookup completed", zap.String("gstin", gstin), zap.String("status", record.GSTINStatus))
	return &record, nil
}

// LookupPAN fetches a personal identity profile by PAN.
func (c *Client) LookupPAN(ctx context.Context, pan string) (*models.IdentityRecord, error) {
	var record models.IdentityRecord
	if err := c.getJSON(ctx, "/v1/pan/"+url.PathEscape(pan), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// LookupCIN fetches the company master record by CIN. Used as the auxiliary
// input to the financial-data scoring category.
func (c *Client) LookupCIN(ctx context.Context, cin string) (*models.CompanyInfo, error) {
	var info models.CompanyInfo
	if err := c.getJSON(ctx, "/v1/cin/"+url.PathEscape(cin), nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// LookupFSSAI fetches a food-business license record by license number.
func (c *Client) LookupFSSAI(ctx context.Context, licenseNumber string) (*models.FSSAIRecord, error) {
	var record models.FSSAIRecord
	if err := c.getJSON(ctx, "/v1/fssai/"+url.PathEscape(licenseNumber), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// SearchCases runs the court-case search for an identity profile. The
// classification into matches/rejected and the per-case confidence are
// computed upstream and passed through untouched.
func (c *Client) SearchCases(ctx context.Context, profile models.SearchProfile) (*models.CaseSearchResult, error) {
	var result models.CaseSearchResult
	if err := c.postJSON(ctx, "/v1/cases/search", profile, &result); err != nil {
		return nil, err
	}
	c.logger.Debug("case search completed",
		zap.Int("all", len(result.All)),
		zap.Int("matches", len(result.Matches)),
		zap.Int("rejected", len(result.Rejected)),
	)
	return &result, nil
}
