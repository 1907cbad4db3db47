// Package acquire makes sure the raw dataset exists locally, downloading it
// from the dataset provider when it does not.
package acquire

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"jobnorm/internal/config"
	"jobnorm/internal/logger"
	"jobnorm/pkg/utils"
)

// Acquisition errors. Both are fatal to a run and are never retried.
var (
	ErrMissingCredential  = errors.New("dataset credential not found")
	ErrAcquisitionFailure = errors.New("dataset acquisition failed")
)

// Environment variables that override the credential file.
const (
	EnvUsername = "KAGGLE_USERNAME"
	EnvKey      = "KAGGLE_KEY"
)

// Credentials authenticate against the dataset provider.
type Credentials struct {
	Username string `json:"username"`
	Key      string `json:"key"`
}

// LoadCredentials prefers the environment and falls back to the JSON
// credential file at path.
func LoadCredentials(path string) (*Credentials, error) {
	if user, key := os.Getenv(EnvUsername), os.Getenv(EnvKey); user != "" && key != "" {
		return &Credentials{Username: user, Key: key}, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: place it at %s or set %s and %s", ErrMissingCredential, path, EnvUsername, EnvKey)
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingCredential, err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("%w: invalid credential file %s: %w", ErrMissingCredential, path, err)
	}

	if creds.Username == "" || creds.Key == "" {
		return nil, fmt.Errorf("%w: credential file %s lacks username or key", ErrMissingCredential, path)
	}

	return &creds, nil
}

// Client downloads a dataset archive and extracts its CSV.
type Client struct {
	httpClient      *http.Client
	headers         *utils.HTTPHelper
	logger          *logger.Logger
	endpoint        string
	datasetID       string
	credentialsPath string
}

// NewClient creates a client for the configured dataset.
func NewClient(cfg config.DatasetConfig, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Discard()
	}

	return &Client{
		httpClient:      &http.Client{Timeout: cfg.GetTimeout()},
		headers:         utils.NewHTTPHelper(),
		logger:          log,
		endpoint:        strings.TrimRight(cfg.Endpoint, "/"),
		datasetID:       cfg.ID,
		credentialsPath: cfg.GetCredentialsPath(),
	}
}

// Ensure downloads the dataset to target unless the file already exists.
// downloaded reports whether a download happened.
func (c *Client) Ensure(ctx context.Context, target string) (downloaded bool, err error) {
	if _, err := os.Stat(target); err == nil {
		c.logger.Info("dataset already present, skipping download", "path", target)
		return false, nil
	}

	c.logger.Info("dataset missing, downloading", "dataset", c.datasetID, "path", target)

	if err := c.Download(ctx, target); err != nil {
		return false, err
	}

	return true, nil
}

// Download fetches the dataset archive and writes its first CSV to target.
func (c *Client) Download(ctx context.Context, target string) error {
	creds, err := LoadCredentials(c.credentialsPath)
	if err != nil {
		return err
	}

	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %w", ErrAcquisitionFailure, err)
	}

	archive, err := os.CreateTemp(dir, "dataset-*.zip")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAcquisitionFailure, err)
	}
	defer os.Remove(archive.Name())
	defer archive.Close()

	size, err := c.fetch(ctx, creds, archive)
	if err != nil {
		return err
	}

	c.logger.Info("archive downloaded", "bytes", size)

	name, err := extractFirstCSV(archive, size, target)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAcquisitionFailure, err)
	}

	c.logger.Info("dataset extracted", "member", name, "path", target)

	return nil
}

func (c *Client) fetch(ctx context.Context, creds *Credentials, dst io.Writer) (int64, error) {
	url := fmt.Sprintf("%s/datasets/download/%s", c.endpoint, c.datasetID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to create request: %w", ErrAcquisitionFailure, err)
	}

	req.Header = c.headers.BuildHeaders(nil)
	req.SetBasicAuth(creds.Username, creds.Key)

	c.logger.Log(ctx, slog.LevelDebug, "requesting dataset archive", "url", url, "user", creds.Username)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: request failed: %w", ErrAcquisitionFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: unexpected status code %d from %s", ErrAcquisitionFailure, resp.StatusCode, url)
	}

	size, err := io.Copy(dst, resp.Body)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to read response body: %w", ErrAcquisitionFailure, err)
	}

	return size, nil
}

func extractFirstCSV(archive io.ReaderAt, size int64, target string) (string, error) {
	zr, err := zip.NewReader(archive, size)
	if err != nil {
		return "", fmt.Errorf("invalid archive: %w", err)
	}

	for _, member := range zr.File {
		if member.FileInfo().IsDir() || !strings.EqualFold(filepath.Ext(member.Name), ".csv") {
			continue
		}

		if err := copyMember(member, target); err != nil {
			return "", err
		}

		return member.Name, nil
	}

	return "", errors.New("archive contains no .csv file")
}

func copyMember(member *zip.File, target string) error {
	src, err := member.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", member.Name, err)
	}
	defer src.Close()

	tmp := target + ".partial"

	dst, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", tmp, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(tmp)

		return fmt.Errorf("failed to extract %s: %w", member.Name, err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close %s: %w", tmp, err)
	}

	return os.Rename(tmp, target)
}
