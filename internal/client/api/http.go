package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/loandesk/internal/client/models"
	"github.com/dmitrijs2005/loandesk/internal/common"
	"github.com/dmitrijs2005/loandesk/internal/logging"
	"github.com/dmitrijs2005/loandesk/internal/netx"
	"github.com/google/uuid"
)

// HTTPClient implements Client over JSON/HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger
	requestID  func() string
}

func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		log:        log.With("component", "api"),
		requestID:  func() string { return uuid.NewString() },
	}
}

type emailRequest struct {
	Email string `json:"email"`
}

type verifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type verifyResponse struct {
	Token string `json:"token"`
}

type applicationsResponse struct {
	Applications []models.Loan `json:"applications"`
}

func (c *HTTPClient) SendOTP(ctx context.Context, email string) error {
	_, err := c.call(ctx, http.MethodPost, "/api/auth/send-otp", "", emailRequest{Email: email}, MsgSendOTPFailed)
	return err
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, email, otp string) (string, error) {
	resp, err := c.call(ctx, http.MethodPost, "/api/auth/verify-otp", "", verifyRequest{Email: email, OTP: otp}, MsgVerifyFailed)
	if err != nil {
		return "", err
	}

	var out verifyResponse
	if err := resp.Decode(&out); err != nil {
		return "", &Error{StatusCode: resp.StatusCode, Message: MsgVerifyFailed, Err: err}
	}
	if out.Token == "" {
		return "", &Error{StatusCode: resp.StatusCode, Message: MsgVerifyFailed, Err: common.ErrMissingToken}
	}
	return out.Token, nil
}

func (c *HTTPClient) ResendOTP(ctx context.Context, email string) error {
	_, err := c.call(ctx, http.MethodPost, "/api/auth/resend-otp", "", emailRequest{Email: email}, MsgResendFailed)
	return err
}

// ListMyLoans returns the caller's applications in server order.
func (c *HTTPClient) ListMyLoans(ctx context.Context, token string) ([]models.Loan, error) {
	resp, err := c.call(ctx, http.MethodGet, "/api/loan/my-applications", token, nil, MsgListFailed)
	if err != nil {
		return nil, err
	}

	var out applicationsResponse
	if err := resp.Decode(&out); err != nil {
		return nil, &Error{StatusCode: resp.StatusCode, Message: MsgListFailed, Err: err}
	}
	if out.Applications == nil {
		return []models.Loan{}, nil
	}
	return out.Applications, nil
}

// SubmitApplication posts the form. The Authorization header is only sent
// when token is non-empty.
func (c *HTTPClient) SubmitApplication(ctx context.Context, token string, app models.Application) error {
	_, err := c.call(ctx, http.MethodPost, "/api/loan/apply", token, app, MsgApplyFailed)
	return err
}

func (c *HTTPClient) Evaluate(ctx context.Context, token, loanID string) (models.UnderwritingResult, error) {
	path := "/api/underwriting/" + url.PathEscape(loanID) + "/underwrite"
	resp, err := c.call(ctx, http.MethodPost, path, token, nil, MsgEvaluateFailed)
	if err != nil {
		return models.UnderwritingResult{}, err
	}

	var out models.UnderwritingResult
	if err := resp.Decode(&out); err != nil {
		return models.UnderwritingResult{}, &Error{StatusCode: resp.StatusCode, Message: MsgEvaluateFailed, Err: err}
	}
	return out, nil
}

func (c *HTTPClient) call(ctx context.Context, method, path, token string, body any, fallback string) (*netx.Response, error) {
	rid := c.requestID()
	header := http.Header{}
	header.Set(common.RequestIDHeaderName, rid)
	if token != "" {
		header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := netx.DoJSON(ctx, c.httpClient, netx.Request{
		Method: method,
		URL:    c.baseURL + path,
		Body:   body,
		Header: header,
	})
	if err != nil {
		c.log.Warn(ctx, "request failed", "method", method, "path", path, "request_id", rid, "error", err)
		return nil, transportError(fallback, err)
	}

	c.log.Debug(ctx, "request done", "method", method, "path", path, "status", resp.StatusCode, "request_id", rid)

	if !resp.OK() {
		msg := resp.Message()
		c.log.Warn(ctx, "non-2xx response", "method", method, "path", path, "status", resp.StatusCode, "message", msg, "request_id", rid)
		return nil, statusError(resp.StatusCode, msg, fallback, token != "")
	}

	return resp, nil
}

var _ Client = (*HTTPClient)(nil)
