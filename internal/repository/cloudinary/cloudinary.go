// Package cloudinary transfers images into the Cloudinary image host
// through its signed HTTP upload API.
package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Yeabkal66/BOTH-BACKEND/configs"
	"github.com/Yeabkal66/BOTH-BACKEND/internal/domain"
)

type Storage struct {
	baseURL   string
	cloudName string
	apiKey    string
	apiSecret string
	folder    string
	client    *http.Client
}

func NewStorage(cfg *configs.Config) *Storage {
	return &Storage{
		baseURL:   "https://api.cloudinary.com/v1_1",
		cloudName: cfg.CD.CloudName,
		apiKey:    cfg.CD.APIKey,
		apiSecret: cfg.CD.APISecret,
		folder:    cfg.CD.Folder,
		client: &http.Client{
			Timeout: time.Second * 30,
		},
	}
}

// Upload stores image bytes under the given namespace and returns the
// storage id plus retrieval URL. Namespaces keep backgrounds, preloaded
// photos and guest photos apart. Any failure is reported as ErrStorage so
// callers can hold session or request state unchanged.
func (s *Storage) Upload(ctx context.Context, image []byte, namespace string) (domain.ImageRef, error) {
	const op = "cloudinary.Upload"

	publicID := namespace + "/" + uuid.New().String()
	if s.folder != "" {
		publicID = s.folder + "/" + publicID
	}

	form := url.Values{}
	form.Add("file", "data:"+http.DetectContentType(image)+";base64,"+
		base64.StdEncoding.EncodeToString(image))
	form.Add("api_key", s.apiKey)
	form.Add("public_id", publicID)

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	form.Add("timestamp", timestamp)

	// Cloudinary signs the sorted param string with SHA1.
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, s.apiSecret)
	form.Add("signature", fmt.Sprintf("%x", sha1.Sum([]byte(signatureString))))

	endpoint := s.baseURL + "/" + s.cloudName + "/image/upload"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return domain.ImageRef{}, fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := s.client.Do(req)
	if err != nil {
		return domain.ImageRef{}, fmt.Errorf("%s: %w: %v", op, domain.ErrStorage, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return domain.ImageRef{}, fmt.Errorf("%s: %w: %v", op, domain.ErrStorage, err)
	}
	if res.StatusCode != http.StatusOK {
		return domain.ImageRef{}, fmt.Errorf("%s: %w: bad status %d, response: %s",
			op, domain.ErrStorage, res.StatusCode, body)
	}

	var cloudRes struct {
		PublicID  string `json:"public_id"`
		SecureURL string `json:"secure_url"`
		URL       string `json:"url"`
		Error     struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &cloudRes); err != nil {
		return domain.ImageRef{}, fmt.Errorf("%s: %w: %v", op, domain.ErrStorage, err)
	}
	if cloudRes.Error.Message != "" {
		return domain.ImageRef{}, fmt.Errorf("%s: %w: %s", op, domain.ErrStorage, cloudRes.Error.Message)
	}

	retrievalURL := cloudRes.SecureURL
	if retrievalURL == "" {
		retrievalURL = cloudRes.URL
	}
	if retrievalURL == "" {
		return domain.ImageRef{}, fmt.Errorf("%s: %w: no url in response", op, domain.ErrStorage)
	}

	return domain.ImageRef{
		StorageID: cloudRes.PublicID,
		URL:       retrievalURL,
	}, nil
}
