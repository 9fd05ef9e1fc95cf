package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/phu024/elearning-rag-platform/internal/platform/envutil"
	"github.com/phu024/elearning-rag-platform/internal/platform/logger"
)

const (
	queryTimeout  = 30 * time.Second
	notifyTimeout = 5 * time.Second
)

// QueryRequest is forwarded to the AI service verbatim; the service
// trusts enrolledCourseIds because this backend is the only caller and
// has already applied its own access checks.
type QueryRequest struct {
	Query             string      `json:"query"`
	Scope             string      `json:"scope"`
	LessonID          *uuid.UUID  `json:"lessonId,omitempty"`
	CourseID          *uuid.UUID  `json:"courseId,omitempty"`
	UserID            uuid.UUID   `json:"userId"`
	EnrolledCourseIDs []uuid.UUID `json:"enrolledCourseIds"`
}

type QueryResponse struct {
	Response string          `json:"response"`
	Sources  json.RawMessage `json:"sources"`
}

type ProcessRequest struct {
	FileID     uuid.UUID `json:"fileId"`
	LessonID   uuid.UUID `json:"lessonId"`
	CourseID   uuid.UUID `json:"courseId"`
	StorageKey string    `json:"storageKey"`
	FileType   string    `json:"fileType"`
}

// Client talks to the retrieval-augmented generation service.
type Client interface {
	Query(ctx context.Context, req QueryRequest) (*QueryResponse, error)
	// NotifyProcess asks the AI service to ingest an uploaded file.
	NotifyProcess(ctx context.Context, req ProcessRequest) error
}

type client struct {
	log     *logger.Logger
	baseURL string
	http    *http.Client
}

func New(log *logger.Logger) Client {
	return &client{
		log:     log.With("service", "AIClient"),
		baseURL: envutil.GetEnv("AI_SERVICE_URL", "http://localhost:8001", log),
		http:    &http.Client{},
	}
}

func (c *client) Query(ctx context.Context, req QueryRequest) (*QueryResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var out QueryResponse
	if err := c.post(ctx, "/chat/query", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) NotifyProcess(ctx context.Context, req ProcessRequest) error {
	ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()
	return c.post(ctx, "/process", req, nil)
}

func (c *client) post(ctx context.Context, path string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return fmt.Errorf("ai service %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("ai service %s: unexpected status %d", path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode ai service response: %w", err)
	}
	return nil
}
