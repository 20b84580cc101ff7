package tagsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// PerPage is fixed by the tags page layout.
const PerPage = 10

type TagsAPI interface {
	GetTags(ctx context.Context, page int, filter string) (TagPage, error)
}

type TagsAPIClient struct {
	baseURL    string
	httpClient *http.Client
	validate   *validator.Validate
}

type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// NetworkError means the request never produced a response.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request to %s failed: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// DecodeError means the response body did not match the TagPage schema.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode tags response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func NewTagsAPIClient(baseURL string, timeout time.Duration) *TagsAPIClient {
	return &TagsAPIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		validate: validator.New(),
	}
}

// TagsURL returns the request URL for one page of tags. title is always sent,
// even when empty.
func (c *TagsAPIClient) TagsURL(page int, filter string) string {
	params := url.Values{}
	params.Set("_page", strconv.Itoa(page))
	params.Set("_per_page", strconv.Itoa(PerPage))
	params.Set("title", filter)
	return c.baseURL + "/tags?" + params.Encode()
}

func (c *TagsAPIClient) GetTags(ctx context.Context, page int, filter string) (TagPage, error) {
	tagsURL := c.TagsURL(page, filter)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tagsURL, nil)
	if err != nil {
		return TagPage{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(req)
	if err != nil {
		return TagPage{}, &NetworkError{URL: tagsURL, Err: err}
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, response.Body)
		return TagPage{}, &HTTPError{
			StatusCode: response.StatusCode,
			Message:    fmt.Sprintf("unexpected status code: %d", response.StatusCode),
		}
	}

	return c.decode(response.Body)
}

func (c *TagsAPIClient) decode(body io.Reader) (TagPage, error) {
	var page TagPage
	if err := json.NewDecoder(body).Decode(&page); err != nil {
		return TagPage{}, &DecodeError{Err: err}
	}
	if err := c.validate.Struct(page); err != nil {
		return TagPage{}, &DecodeError{Err: err}
	}
	return page, nil
}
