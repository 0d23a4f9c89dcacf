package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"careerpilot-be/internal/dto"
	"careerpilot-be/internal/pkg/logger"
	"careerpilot-be/internal/pkg/serverutils"

	"github.com/patrickmn/go-cache"
)

type IResourceService interface {
	Search(ctx context.Context, query string) (*dto.SearchResourcesResponse, error)
}

// resourceService queries an external web-search API for learning
// resources (courses, docs, articles) and caches results per query so
// repeated searches don't burn API quota.
type resourceService struct {
	apiKey   string
	endpoint string
	client   *http.Client
	cache    *cache.Cache
	logger   logger.ILogger
}

func NewResourceService(apiKey string, endpoint string, log logger.ILogger) IResourceService {
	if endpoint == "" {
		endpoint = "https://google.serper.dev/search"
	}
	return &resourceService{
		apiKey:   apiKey,
		endpoint: endpoint,
		client:   &http.Client{Timeout: 15 * time.Second},
		cache:    cache.New(15*time.Minute, 30*time.Minute),
		logger:   log,
	}
}

type searchAPIRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type searchAPIResponse struct {
	Organic []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic"`
}

func (s *resourceService) Search(ctx context.Context, query string) (*dto.SearchResourcesResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, serverutils.ErrValidation("query is required")
	}

	cacheKey := strings.ToLower(query)
	if cached, found := s.cache.Get(cacheKey); found {
		return cached.(*dto.SearchResourcesResponse), nil
	}

	// Bias results toward learning material
	payload := searchAPIRequest{
		Q:   fmt.Sprintf("%s tutorial OR course OR guide", query),
		Num: 10,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-KEY", s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Error("ResourceService", "Search request failed", map[string]interface{}{"error": err.Error()})
		return nil, serverutils.ErrUpstream("Resource search is unavailable")
	}
	defer resp.Body.Close()

	resBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, serverutils.ErrUpstream("Resource search is unavailable")
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, serverutils.ErrRateLimited("")
	}
	if resp.StatusCode != http.StatusOK {
		s.logger.Error("ResourceService", "Search API error", map[string]interface{}{
			"status": resp.StatusCode,
			"body":   string(resBytes),
		})
		return nil, serverutils.ErrUpstream("Resource search is unavailable")
	}

	var apiRes searchAPIResponse
	if err := json.Unmarshal(resBytes, &apiRes); err != nil {
		return nil, serverutils.ErrUpstream("Resource search returned malformed data")
	}

	result := &dto.SearchResourcesResponse{
		Query:     query,
		Resources: make([]dto.LearningResource, 0, len(apiRes.Organic)),
	}
	for _, item := range apiRes.Organic {
		result.Resources = append(result.Resources, dto.LearningResource{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
			Source:  hostOf(item.Link),
		})
	}

	s.cache.Set(cacheKey, result, cache.DefaultExpiration)
	return result, nil
}

func hostOf(rawURL string) string {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(rawURL, "https://"), "http://")
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return strings.TrimPrefix(trimmed, "www.")
}
