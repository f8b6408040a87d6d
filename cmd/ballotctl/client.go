package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/voteworks/ballotbox/models"
)

var (
	errBadRequest   = errors.New("bad request")
	errUnauthorized = errors.New("unauthorized")
	errForbidden    = errors.New("forbidden")
	errNotFound     = errors.New("not found")
	errConflict     = errors.New("conflict")
	errServer       = errors.New("server error")
)

// apiClient is a thin REST client over the ballotbox HTTP API.
type apiClient struct {
	client *resty.Client
	token  string
}

func newAPIClient(address, token string, timeout time.Duration) (*apiClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid server address: %w", err)
	}

	cli := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &apiClient{client: cli, token: strings.TrimSpace(token)}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (c *apiClient) request(ctx context.Context) *resty.Request {
	req := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
	if c.token != "" {
		req.SetHeader("Authorization", "Bearer "+c.token)
	}
	return req
}

func (c *apiClient) signup(ctx context.Context, user models.User) (models.AuthResponse, error) {
	var out models.AuthResponse

	resp, err := c.request(ctx).
		SetBody(user).
		SetResult(&out).
		Post("/user/signup")
	if err != nil {
		return out, fmt.Errorf("signup request: %w", err)
	}

	return out, mapHTTPError(resp)
}

func (c *apiClient) login(ctx context.Context, nationalID, password string) (models.AuthResponse, error) {
	var out models.AuthResponse

	resp, err := c.request(ctx).
		SetBody(map[string]string{"national_id": nationalID, "password": password}).
		SetResult(&out).
		Post("/user/login")
	if err != nil {
		return out, fmt.Errorf("login request: %w", err)
	}

	return out, mapHTTPError(resp)
}

func (c *apiClient) profile(ctx context.Context) (models.UserResponse, error) {
	var out models.UserResponse

	resp, err := c.request(ctx).
		SetResult(&out).
		Get("/user/profile")
	if err != nil {
		return out, fmt.Errorf("profile request: %w", err)
	}

	return out, mapHTTPError(resp)
}

func (c *apiClient) createCandidate(ctx context.Context, candidate models.Candidate) (models.CandidateResponse, error) {
	var out models.CandidateResponse

	resp, err := c.request(ctx).
		SetBody(candidate).
		SetResult(&out).
		Post("/candidate")
	if err != nil {
		return out, fmt.Errorf("create candidate request: %w", err)
	}

	return out, mapHTTPError(resp)
}

func (c *apiClient) updateCandidate(ctx context.Context, candidateID int64, update models.CandidateUpdate) (models.CandidateResponse, error) {
	var out models.CandidateResponse

	resp, err := c.request(ctx).
		SetBody(update).
		SetResult(&out).
		Put(fmt.Sprintf("/candidate/%d", candidateID))
	if err != nil {
		return out, fmt.Errorf("update candidate request: %w", err)
	}

	return out, mapHTTPError(resp)
}

func (c *apiClient) deleteCandidate(ctx context.Context, candidateID int64) (models.Response, error) {
	var out models.Response

	resp, err := c.request(ctx).
		SetResult(&out).
		Delete(fmt.Sprintf("/candidate/%d", candidateID))
	if err != nil {
		return out, fmt.Errorf("delete candidate request: %w", err)
	}

	return out, mapHTTPError(resp)
}

func (c *apiClient) listCandidates(ctx context.Context) (models.CandidateListResponse, error) {
	var out models.CandidateListResponse

	resp, err := c.request(ctx).
		SetResult(&out).
		Get("/candidate")
	if err != nil {
		return out, fmt.Errorf("list candidates request: %w", err)
	}

	return out, mapHTTPError(resp)
}

func (c *apiClient) castVote(ctx context.Context, candidateID int64) (models.CandidateResponse, error) {
	var out models.CandidateResponse

	resp, err := c.request(ctx).
		SetResult(&out).
		Post(fmt.Sprintf("/candidate/vote/%d", candidateID))
	if err != nil {
		return out, fmt.Errorf("cast vote request: %w", err)
	}

	return out, mapHTTPError(resp)
}

func (c *apiClient) tally(ctx context.Context) (models.TallyResponse, error) {
	var out models.TallyResponse

	resp, err := c.request(ctx).
		SetResult(&out).
		Get("/candidate/vote/count")
	if err != nil {
		return out, fmt.Errorf("tally request: %w", err)
	}

	return out, mapHTTPError(resp)
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", errBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", errUnauthorized, body)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", errForbidden, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", errNotFound, body)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", errConflict, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", errServer, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}
