package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
)

const defaultTimeout = 30 * time.Second

// statusPollRetries — количество повторов идемпотентных GET-запросов
// при транзиентных ошибках сети.
const statusPollRetries = 3

// Config — параметры подключения к платформе.
//
// Все значения читаются из окружения через ConfigFromEnv,
// флаги CLI могут их переопределить.
type Config struct {
	// BaseURL — адрес API платформы.
	BaseURL string

	// APIKey — ключ API пользователя.
	APIKey string

	// ProjectOwner — владелец проекта.
	ProjectOwner string

	// ProjectName — имя проекта.
	ProjectName string

	// Timeout — таймаут одного HTTP-запроса (default: 30s).
	// Зависший удалённый вызов не должен останавливать цикл навсегда.
	Timeout time.Duration
}

// ConfigFromEnv читает конфигурацию из переменных окружения:
// PLATFORM_URL, PLATFORM_API_KEY, PLATFORM_PROJECT_OWNER, PLATFORM_PROJECT.
func ConfigFromEnv() Config {
	return Config{
		BaseURL:      os.Getenv("PLATFORM_URL"),
		APIKey:       os.Getenv("PLATFORM_API_KEY"),
		ProjectOwner: os.Getenv("PLATFORM_PROJECT_OWNER"),
		ProjectName:  os.Getenv("PLATFORM_PROJECT"),
	}
}

// HTTPClient — HTTP-реализация Client поверх REST API платформы.
type HTTPClient struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger

	// Заполняются после Authenticate.
	projectID string
	userID    string
}

// NewHTTPClient создаёт клиент платформы.
// Возвращает ErrNotConfigured, если не заданы обязательные параметры.
func NewHTTPClient(cfg Config, logger *slog.Logger) (*HTTPClient, error) {
	if cfg.BaseURL == "" || cfg.APIKey == "" || cfg.ProjectOwner == "" || cfg.ProjectName == "" {
		return nil, fmt.Errorf("%w: base URL, API key, project owner and project name are required", ErrNotConfigured)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &HTTPClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}, nil
}

// --- Response/request types ---

type projectResponse struct {
	ID      string `json:"id"`
	OwnerID string `json:"ownerId"`
}

type startRunRequest struct {
	ProjectID      string   `json:"projectId"`
	Command        []string `json:"command"`
	IsDirect       bool     `json:"isDirect"`
	HardwareTierID string   `json:"hardwareTierId,omitempty"`
	Title          string   `json:"title,omitempty"`
}

type startRunResponse struct {
	RunID string `json:"runId"`
}

type statusResponse struct {
	Status string `json:"status"`
}

type tierResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type scheduledJobRequest struct {
	Title             string `json:"title"`
	Command           string `json:"command"`
	CronString        string `json:"cronString"`
	IsCustom          bool   `json:"isCustom"`
	HardwareTierID    string `json:"hardwareTierId,omitempty"`
	TimezoneID        string `json:"timezoneId"`
	ScheduledByUserID string `json:"scheduledByUserId"`
}

type publishModelRequest struct {
	ProjectID     string `json:"projectId"`
	File          string `json:"file"`
	Function      string `json:"function"`
	Name          string `json:"name,omitempty"`
	Description   string `json:"description,omitempty"`
	EnvironmentID string `json:"environmentId,omitempty"`
}

type publishModelResponse struct {
	ModelID   string `json:"modelId"`
	VersionID string `json:"versionId"`
}

type modelResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type createAppRequest struct {
	ProjectID string `json:"projectId"`
	Name      string `json:"name"`
}

type createAppResponse struct {
	ID string `json:"id"`
}

type startAppRequest struct {
	HardwareTierID string `json:"hardwareTierId,omitempty"`
}

type userResponse struct {
	ID string `json:"id"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// --- Client implementation ---

// Authenticate проверяет ключ API и привязывает сессию к проекту.
func (c *HTTPClient) Authenticate(ctx context.Context) error {
	var project projectResponse
	path := "/v4/projects/" + url.PathEscape(c.cfg.ProjectOwner) + "/" + url.PathEscape(c.cfg.ProjectName)
	if err := c.get(ctx, path, &project); err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}

	c.projectID = project.ID
	c.userID = project.OwnerID

	c.logger.Info("authenticated against platform",
		"project", c.cfg.ProjectOwner+"/"+c.cfg.ProjectName,
		"project_id", c.projectID,
	)
	return nil
}

// StartRun запускает batch-задачу.
func (c *HTTPClient) StartRun(ctx context.Context, command []string, opts RunOptions) (string, error) {
	if err := c.requireSession(); err != nil {
		return "", err
	}

	tierID, err := c.ResolveTier(ctx, opts.Tier)
	if err != nil {
		return "", err
	}

	req := startRunRequest{
		ProjectID:      c.projectID,
		Command:        command,
		IsDirect:       opts.Direct,
		HardwareTierID: tierID,
		Title:          opts.Title,
	}

	var resp startRunResponse
	if err := c.post(ctx, "/v4/jobs", req, &resp); err != nil {
		return "", fmt.Errorf("start run: %w", err)
	}
	return resp.RunID, nil
}

// RunStatus возвращает живой статус запуска.
func (c *HTTPClient) RunStatus(ctx context.Context, runID string) (string, error) {
	var resp statusResponse
	if err := c.get(ctx, "/v4/jobs/"+url.PathEscape(runID)+"/status", &resp); err != nil {
		return "", fmt.Errorf("run status: %w", err)
	}
	return resp.Status, nil
}

// RegisterScheduledRun регистрирует повторяющуюся задачу.
func (c *HTTPClient) RegisterScheduledRun(ctx context.Context, spec ScheduleSpec) error {
	if err := c.requireSession(); err != nil {
		return err
	}

	tierID, err := c.ResolveTier(ctx, spec.Tier)
	if err != nil {
		return err
	}

	userID := c.userID
	if spec.User != "" {
		userID, err = c.resolveUser(ctx, spec.User)
		if err != nil {
			return err
		}
	}

	tz := spec.Timezone
	if tz == "" {
		tz = "UTC"
	}

	req := scheduledJobRequest{
		Title:             spec.Title,
		Command:           spec.Command,
		CronString:        spec.CronExpr,
		IsCustom:          true,
		HardwareTierID:    tierID,
		TimezoneID:        tz,
		ScheduledByUserID: userID,
	}

	path := "/v4/projects/" + url.PathEscape(c.projectID) + "/scheduledJobs"
	if err := c.post(ctx, path, req, nil); err != nil {
		return fmt.Errorf("register scheduled run: %w", err)
	}
	return nil
}

// ResolveTier находит платформенный ID tier по человекочитаемому имени.
// Сравнение регистронезависимое. Пустое имя — tier проекта по умолчанию.
func (c *HTTPClient) ResolveTier(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", nil
	}

	var tiers []tierResponse
	if err := c.get(ctx, "/v4/hardwareTiers", &tiers); err != nil {
		return "", fmt.Errorf("list hardware tiers: %w", err)
	}

	for _, tier := range tiers {
		if strings.EqualFold(tier.Name, name) {
			return tier.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownTier, name)
}

// PublishModel публикует новую модель.
func (c *HTTPClient) PublishModel(ctx context.Context, spec ModelSpec) (ModelRef, error) {
	if err := c.requireSession(); err != nil {
		return ModelRef{}, err
	}

	req := publishModelRequest{
		ProjectID:     c.projectID,
		File:          spec.File,
		Function:      spec.Function,
		Name:          spec.Name,
		Description:   spec.Description,
		EnvironmentID: spec.EnvironmentID,
	}

	var resp publishModelResponse
	if err := c.post(ctx, "/v4/models", req, &resp); err != nil {
		return ModelRef{}, fmt.Errorf("publish model: %w", err)
	}
	return ModelRef{ModelID: resp.ModelID, VersionID: resp.VersionID}, nil
}

// PublishModelVersion публикует новую версию существующей модели.
func (c *HTTPClient) PublishModelVersion(ctx context.Context, modelID string, spec ModelSpec) (ModelRef, error) {
	req := publishModelRequest{
		File:          spec.File,
		Function:      spec.Function,
		Description:   spec.Description,
		EnvironmentID: spec.EnvironmentID,
	}

	var resp publishModelResponse
	path := "/v4/models/" + url.PathEscape(modelID) + "/versions"
	if err := c.post(ctx, path, req, &resp); err != nil {
		return ModelRef{}, fmt.Errorf("publish model version: %w", err)
	}
	return ModelRef{ModelID: modelID, VersionID: resp.VersionID}, nil
}

// ResolveModel находит ID существующей модели по имени.
func (c *HTTPClient) ResolveModel(ctx context.Context, name string) (string, error) {
	if err := c.requireSession(); err != nil {
		return "", err
	}

	var models []modelResponse
	if err := c.get(ctx, "/v4/models?projectId="+url.QueryEscape(c.projectID), &models); err != nil {
		return "", fmt.Errorf("list models: %w", err)
	}

	for _, model := range models {
		if strings.EqualFold(model.Name, name) {
			return model.ID, nil
		}
	}
	return "", fmt.Errorf("%w: model %q", ErrNotFound, name)
}

// ModelBuildStatus возвращает статус сборки версии модели.
func (c *HTTPClient) ModelBuildStatus(ctx context.Context, ref ModelRef) (string, error) {
	var resp statusResponse
	path := "/v4/models/" + url.PathEscape(ref.ModelID) + "/versions/" + url.PathEscape(ref.VersionID) + "/buildStatus"
	if err := c.get(ctx, path, &resp); err != nil {
		return "", fmt.Errorf("model build status: %w", err)
	}
	return resp.Status, nil
}

// CreateApp создаёт приложение в проекте.
func (c *HTTPClient) CreateApp(ctx context.Context, name string) (string, error) {
	if err := c.requireSession(); err != nil {
		return "", err
	}

	var resp createAppResponse
	if err := c.post(ctx, "/v4/apps", createAppRequest{ProjectID: c.projectID, Name: name}, &resp); err != nil {
		return "", fmt.Errorf("create app: %w", err)
	}
	return resp.ID, nil
}

// StartApp запускает созданное приложение.
func (c *HTTPClient) StartApp(ctx context.Context, appID, tierID string) error {
	path := "/v4/apps/" + url.PathEscape(appID) + "/start"
	if err := c.post(ctx, path, startAppRequest{HardwareTierID: tierID}, nil); err != nil {
		return fmt.Errorf("start app: %w", err)
	}
	return nil
}

// AppStatus возвращает живой статус приложения.
func (c *HTTPClient) AppStatus(ctx context.Context, appID string) (string, error) {
	var resp statusResponse
	if err := c.get(ctx, "/v4/apps/"+url.PathEscape(appID)+"/status", &resp); err != nil {
		return "", fmt.Errorf("app status: %w", err)
	}
	return resp.Status, nil
}

// UnpublishApps снимает с публикации текущее приложение проекта.
func (c *HTTPClient) UnpublishApps(ctx context.Context) error {
	if err := c.requireSession(); err != nil {
		return err
	}

	path := "/v4/projects/" + url.PathEscape(c.projectID) + "/apps/unpublish"
	if err := c.post(ctx, path, struct{}{}, nil); err != nil {
		return fmt.Errorf("unpublish apps: %w", err)
	}
	return nil
}

// resolveUser находит ID пользователя по имени.
func (c *HTTPClient) resolveUser(ctx context.Context, username string) (string, error) {
	var user userResponse
	if err := c.get(ctx, "/v4/users/"+url.PathEscape(username), &user); err != nil {
		return "", fmt.Errorf("resolve user %q: %w", username, err)
	}
	return user.ID, nil
}

// requireSession проверяет, что Authenticate уже прошёл.
func (c *HTTPClient) requireSession() error {
	if c.projectID == "" {
		return ErrUnauthenticated
	}
	return nil
}

// --- HTTP helpers ---

// get выполняет идемпотентный GET с ограниченным числом повторов
// при транзиентных ошибках (сеть, 5xx).
func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	operation := func() error {
		err := c.do(ctx, http.MethodGet, path, nil, out)

		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
			// Клиентские ошибки не лечатся повтором.
			return backoff.Permanent(err)
		}
		return err
	}

	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), statusPollRetries)
	return backoff.Retry(operation, backoff.WithContext(b, ctx))
}

// post выполняет неидемпотентный POST без повторов.
func (c *HTTPClient) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// do выполняет один HTTP-запрос с авторизацией и request id.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var bodyReader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("X-API-Key", c.cfg.APIKey)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Endpoint: path}
		var errResp errorResponse
		if json.Unmarshal(raw, &errResp) == nil {
			apiErr.Message = errResp.Error.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
