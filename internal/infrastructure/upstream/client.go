// Package upstream implements the HTTP/JSON client for the external
// reporting API. Every console dataset comes through here; the console never
// queries a data store directly.
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"

	"rxconsole/internal/core/apperror"
	"rxconsole/internal/domain/filter"
	"rxconsole/internal/domain/gaps"
	"rxconsole/internal/domain/pharmacy"
	"rxconsole/internal/domain/reports"
)

// Config holds client configuration.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
	RetryWait  time.Duration
}

// HTTPClient is the resty-backed implementation of the reporting boundary.
type HTTPClient struct {
	http *resty.Client
}

// New creates a client for the reporting API.
func New(cfg Config) *HTTPClient {
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	if cfg.RetryCount > 0 {
		client.SetRetryCount(cfg.RetryCount).
			SetRetryWaitTime(cfg.RetryWait)
	}

	return &HTTPClient{http: client}
}

// Ping checks that the reporting API is reachable.
func (c *HTTPClient) Ping(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/api/health")
	if err != nil {
		return apperror.NewNetwork(err)
	}
	if resp.IsError() {
		return apperror.NewUpstream(resp.StatusCode(), "")
	}
	return nil
}

// --- Pharmacy directory ---

// ListPharmacies fetches the pharmacy reference list.
func (c *HTTPClient) ListPharmacies(ctx context.Context) ([]pharmacy.Ref, error) {
	var out []pharmacy.Ref
	if err := c.get(ctx, "/api/pharmacies", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Transaction and purchase reports ---

// ListTransactions fetches a transaction page under the full filter set.
func (c *HTTPClient) ListTransactions(ctx context.Context, cr filter.Criteria) (*reports.Envelope[reports.Transaction], error) {
	q := newQuery().pharmacy(cr).dates(cr).entryType(cr).search(cr).page(cr)
	var out reports.Envelope[reports.Transaction]
	if err := c.get(ctx, "/api/transactions", q.values, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPurchaseReport fetches the purchase report: summary plus a
// server-paginated transaction page.
func (c *HTTPClient) GetPurchaseReport(ctx context.Context, cr filter.Criteria) (*reports.PurchaseReport, error) {
	q := newQuery().pharmacy(cr).dates(cr).entryType(cr).search(cr).page(cr)
	var out reports.PurchaseReport
	if err := c.get(ctx, "/api/reports/purchases", q.values, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Sales reports ---

// GetPharmacySalesReport fetches the full pharmacy sales set. The endpoint
// aggregates across the whole network, so the pharmacy filter does not apply.
func (c *HTTPClient) GetPharmacySalesReport(ctx context.Context, cr filter.Criteria) ([]reports.PharmacySalesRow, error) {
	q := newQuery().dates(cr)
	var out []reports.PharmacySalesRow
	if err := c.get(ctx, "/api/reports/pharmacy-sales", q.values, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProductSalesReport fetches the full product sales set.
func (c *HTTPClient) GetProductSalesReport(ctx context.Context, cr filter.Criteria) ([]reports.ProductSalesRow, error) {
	q := newQuery().pharmacy(cr).dates(cr)
	var out []reports.ProductSalesRow
	if err := c.get(ctx, "/api/reports/product-sales", q.values, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// --- Redemption reports ---

// GetPharmacyRedemptionReport fetches the full per-pharmacy redemption set.
func (c *HTTPClient) GetPharmacyRedemptionReport(ctx context.Context, cr filter.Criteria) ([]reports.PharmacyRedemptionRow, error) {
	q := newQuery().dates(cr)
	var out []reports.PharmacyRedemptionRow
	if err := c.get(ctx, "/api/reports/pharmacy-redemptions", q.values, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetRedemptionDetailsReport fetches a server-paginated redemption detail page.
func (c *HTTPClient) GetRedemptionDetailsReport(ctx context.Context, cr filter.Criteria) (*reports.Envelope[reports.RedemptionDetail], error) {
	q := newQuery().pharmacy(cr).dates(cr).page(cr)
	var out reports.Envelope[reports.RedemptionDetail]
	if err := c.get(ctx, "/api/reports/redemption-details", q.values, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProductRedemptionReport fetches the full product redemption set.
func (c *HTTPClient) GetProductRedemptionReport(ctx context.Context, cr filter.Criteria) ([]reports.ProductRedemptionRow, error) {
	q := newQuery().pharmacy(cr).dates(cr)
	var out []reports.ProductRedemptionRow
	if err := c.get(ctx, "/api/reports/product-redemptions", q.values, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetPatientProductRedemptionReport fetches a server-paginated
// patient-by-product redemption page.
func (c *HTTPClient) GetPatientProductRedemptionReport(ctx context.Context, cr filter.Criteria) (*reports.Envelope[reports.PatientProductRedemptionRow], error) {
	q := newQuery().pharmacy(cr).dates(cr).page(cr)
	var out reports.Envelope[reports.PatientProductRedemptionRow]
	if err := c.get(ctx, "/api/reports/patient-product-redemptions", q.values, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// --- Invoice gaps ---

// ListInvoiceGaps fetches the full gap set for the current filters.
// Resolution status is a server-side filter.
func (c *HTTPClient) ListInvoiceGaps(ctx context.Context, cr filter.Criteria, isResolved *bool) ([]gaps.InvoiceGap, error) {
	q := newQuery().pharmacy(cr).dates(cr)
	if isResolved != nil {
		q.values.Set("is_resolved", fmt.Sprintf("%t", *isResolved))
	}
	var out []gaps.InvoiceGap
	if err := c.get(ctx, "/api/invoice-gaps", q.values, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetInvoiceGapStatistics fetches the authoritative gap aggregates.
func (c *HTTPClient) GetInvoiceGapStatistics(ctx context.Context) (*gaps.Statistics, error) {
	var out gaps.Statistics
	if err := c.get(ctx, "/api/invoice-gaps/statistics", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetInvoiceGapDetail fetches one gap with full anomaly details.
func (c *HTTPClient) GetInvoiceGapDetail(ctx context.Context, id int64) (*gaps.InvoiceGap, error) {
	var out gaps.InvoiceGap
	if err := c.get(ctx, fmt.Sprintf("/api/invoice-gaps/%d", id), nil, &out); err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("invoice gap", id)
		}
		return nil, err
	}
	return &out, nil
}

// ResolveInvoiceGap performs the resolve mutation. An upstream 409 means the
// gap was already resolved, possibly by a concurrent session.
func (c *HTTPClient) ResolveInvoiceGap(ctx context.Context, id int64, req gaps.ResolveRequest) (*gaps.InvoiceGap, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(fmt.Sprintf("/api/invoice-gaps/%d/resolve", id))
	if err != nil {
		return nil, apperror.NewNetwork(err)
	}
	if resp.IsError() {
		return nil, mapStatus(resp)
	}

	var out gaps.InvoiceGap
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, malformed(err)
	}
	return &out, nil
}

// --- Request plumbing ---

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, out any) error {
	req := c.http.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParamsFromValues(params)
	}

	resp, err := req.Get(path)
	if err != nil {
		// Transport failure or timeout: no usable response at all.
		return apperror.NewNetwork(err)
	}
	if resp.IsError() {
		return mapStatus(resp)
	}
	if out != nil {
		if err := json.Unmarshal(resp.Body(), out); err != nil {
			return malformed(err)
		}
	}
	return nil
}

func malformed(err error) error {
	return apperror.NewValidation("malformed response from reporting service").WithCause(err)
}

// mapStatus translates a non-2xx upstream response into the console taxonomy.
func mapStatus(resp *resty.Response) error {
	message := upstreamMessage(resp.Body())

	switch resp.StatusCode() {
	case http.StatusNotFound:
		return &apperror.AppError{
			Code:       apperror.CodeNotFound,
			Message:    nonEmpty(message, "resource not found"),
			HTTPStatus: http.StatusNotFound,
		}
	case http.StatusConflict:
		return apperror.NewStateConflict(nonEmpty(message, "conflicting state upstream"))
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return apperror.NewValidation(nonEmpty(message, "rejected filter combination"))
	default:
		return apperror.NewUpstream(resp.StatusCode(), message)
	}
}

func upstreamMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// --- Query construction ---

// queryBuilder serializes only the criteria fields relevant to an endpoint.
// Absent optional fields are omitted entirely, never sent as empty strings,
// so the collaborator cannot confuse "not set" with "set to empty".
type queryBuilder struct {
	values url.Values
}

func newQuery() *queryBuilder {
	return &queryBuilder{values: url.Values{}}
}

func (q *queryBuilder) pharmacy(c filter.Criteria) *queryBuilder {
	if c.PharmacyID != nil {
		q.values.Set("pharmacy_id", fmt.Sprintf("%d", *c.PharmacyID))
	}
	return q
}

func (q *queryBuilder) dates(c filter.Criteria) *queryBuilder {
	if c.StartDate != nil {
		q.values.Set("start_date", c.StartDate.Format(filter.DateFormat))
	}
	if c.EndDate != nil {
		q.values.Set("end_date", c.EndDate.Format(filter.DateFormat))
	}
	return q
}

func (q *queryBuilder) entryType(c filter.Criteria) *queryBuilder {
	if c.EntryType != nil {
		q.values.Set("entry_type", string(*c.EntryType))
	}
	return q
}

func (q *queryBuilder) search(c filter.Criteria) *queryBuilder {
	if c.SearchText != "" {
		q.values.Set("search", c.SearchText)
	}
	return q
}

func (q *queryBuilder) page(c filter.Criteria) *queryBuilder {
	q.values.Set("page", fmt.Sprintf("%d", c.Page))
	q.values.Set("per_page", fmt.Sprintf("%d", c.PerPage))
	return q
}
