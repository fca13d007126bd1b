package editor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
)

// Client speaks the remote persistence contract: list/upsert/delete projects
// and image upload. Every call fetches a fresh credential from the token
// source first; ID tokens rotate, so nothing is cached across calls.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  oauth2.TokenSource
}

func NewClient(baseURL string, tokens oauth2.TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
		tokens:  tokens,
	}
}

// ListProjects returns the caller's projects, most recently modified first.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/projects", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("list projects", resp)
	}

	var projects []Project
	if err := json.NewDecoder(resp.Body).Decode(&projects); err != nil {
		return nil, fmt.Errorf("decode projects: %w", err)
	}
	return projects, nil
}

// SaveProject upserts one project.
func (c *Client) SaveProject(ctx context.Context, p Project) error {
	resp, err := c.do(ctx, http.MethodPost, "/api/projects", p)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError("save project", resp)
	}
	return nil
}

// DeleteProject removes a project by id. Absent ids succeed.
func (c *Client) DeleteProject(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/api/projects?id="+url.QueryEscape(id), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError("delete project", resp)
	}
	return nil
}

type uploadRequest struct {
	Data        string `json:"data"`
	ContentType string `json:"contentType"`
	FileName    string `json:"fileName"`
}

// UploadResult is the stable retrieval reference for an uploaded image.
type UploadResult struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// UploadImage sends a base64 or data-URL payload and returns its reference.
func (c *Client) UploadImage(ctx context.Context, data, contentType, fileName string) (*UploadResult, error) {
	body := uploadRequest{Data: data, ContentType: contentType, FileName: fileName}
	resp, err := c.do(ctx, http.MethodPost, "/api/upload", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError("upload image", resp)
	}

	var out UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	token, err := c.tokens.Token()
	if err != nil {
		return nil, fmt.Errorf("fetch credential: %w", err)
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func statusError(op string, resp *http.Response) error {
	msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%s: %s: %s", op, resp.Status, bytes.TrimSpace(msg))
}
