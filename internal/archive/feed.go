// Package archive serves the shop's archive page data: a cached snapshot
// of recent Instagram posts enriched with a title and category derived
// from each caption.
package archive

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/guonaihong/gout"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/chamberedinseams/storefront/config"
)

const graphAPIBase = "https://graph.instagram.com"

// Post is one archive entry.
type Post struct {
	ID           string `json:"id"`
	MediaType    string `json:"media_type"`
	MediaURL     string `json:"media_url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Caption      string `json:"caption,omitempty"`
	Timestamp    string `json:"timestamp"`
	Permalink    string `json:"permalink"`
	Title        string `json:"title,omitempty"`
	Category     string `json:"category,omitempty"`
	IsFeatured   bool   `json:"is_featured"`
}

type mediaEnvelope struct {
	Data []Post `json:"data"`
}

// Service fetches and caches the feed. Refresh is driven by the cron job;
// readers get the last good snapshot. With OpenCache the snapshot also
// survives restarts through a local bolt file.
type Service struct {
	cfg config.InstagramConfig
	db  *bolt.DB

	mu        sync.RWMutex
	posts     []Post
	fetchedAt time.Time
}

func NewService(cfg config.InstagramConfig) *Service {
	return &Service{cfg: cfg}
}

var (
	archiveBucket  = []byte("archive_feed")
	postsKey       = []byte("posts")
	fetchedAtKey   = []byte("fetched_at")
	cacheOpenDelay = time.Second
)

// OpenCache attaches a bolt-backed snapshot file and restores the last
// saved feed, so the archive page has data before the first refresh.
func (s *Service) OpenCache(path string) error {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: cacheOpenDelay})
	if err != nil {
		return errors.Wrap(err, "open archive cache")
	}
	s.db = db
	return s.loadSnapshot()
}

// Close releases the snapshot file.
func (s *Service) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Service) loadSnapshot() error {
	return s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(archiveBucket)
		if b == nil {
			return nil
		}
		data := b.Get(postsKey)
		if len(data) == 0 {
			return nil
		}
		var posts []Post
		if err := jsoniter.Unmarshal(data, &posts); err != nil {
			return errors.Wrap(err, "decode cached archive feed")
		}
		var fetchedAt time.Time
		if raw := b.Get(fetchedAtKey); len(raw) > 0 {
			_ = fetchedAt.UnmarshalText(raw)
		}
		s.mu.Lock()
		s.posts = posts
		s.fetchedAt = fetchedAt
		s.mu.Unlock()
		return nil
	})
}

func (s *Service) saveSnapshot(posts []Post, fetchedAt time.Time) {
	if s.db == nil {
		return
	}
	data, err := jsoniter.Marshal(posts)
	if err != nil {
		zap.L().Warn("archive cache encode failed", zap.Error(err))
		return
	}
	stamp, _ := fetchedAt.MarshalText()
	err = s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(archiveBucket)
		if err != nil {
			return err
		}
		if err := b.Put(postsKey, data); err != nil {
			return err
		}
		return b.Put(fetchedAtKey, stamp)
	})
	if err != nil {
		zap.L().Warn("archive cache write failed", zap.Error(err))
	}
}

// Posts returns a copy of the cached snapshot.
func (s *Service) Posts() []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// FetchedAt reports when the snapshot was last refreshed.
func (s *Service) FetchedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fetchedAt
}

// Refresh pulls the recent media list and replaces the snapshot. A missing
// access token leaves the (empty) snapshot in place without error so the
// archive degrades quietly when the integration is unconfigured.
func (s *Service) Refresh(ctx context.Context, limit int) error {
	if s.cfg.AccessToken == "" {
		return nil
	}
	if limit <= 0 {
		limit = 20
	}

	var body []byte
	err := gout.GET(graphAPIBase+"/me/media").
		WithContext(ctx).
		SetQuery(gout.H{
			"fields":       "id,media_type,media_url,thumbnail_url,caption,timestamp,permalink",
			"access_token": s.cfg.AccessToken,
			"limit":        limit,
		}).
		BindBody(&body).
		Do()
	if err != nil {
		return errors.Wrap(err, "fetch archive feed")
	}

	var envelope mediaEnvelope
	if err := jsoniter.Unmarshal(body, &envelope); err != nil {
		return errors.Wrap(err, "decode archive feed")
	}

	posts := envelope.Data
	for i := range posts {
		posts[i].Title = extractTitle(posts[i].Caption)
		posts[i].Category = detectCategory(posts[i].Caption)
		posts[i].IsFeatured = isFeatured(posts[i].Caption)
	}

	fetchedAt := time.Now()
	s.mu.Lock()
	s.posts = posts
	s.fetchedAt = fetchedAt
	s.mu.Unlock()
	s.saveSnapshot(posts, fetchedAt)

	zap.L().Info("archive feed refreshed", zap.Int("posts", len(posts)))
	return nil
}

// extractTitle takes the caption's first line, truncated to 50 runes.
func extractTitle(caption string) string {
	if caption == "" {
		return "Untitled Post"
	}
	firstLine := caption
	if idx := strings.IndexByte(caption, '\n'); idx >= 0 {
		firstLine = caption[:idx]
	}
	runes := []rune(firstLine)
	if len(runes) > 50 {
		return string(runes[:50]) + "..."
	}
	return firstLine
}

// detectCategory maps caption hashtags onto archive categories.
func detectCategory(caption string) string {
	if caption == "" {
		return "General"
	}
	var tags []string
	for _, word := range strings.Fields(caption) {
		if strings.HasPrefix(word, "#") {
			tags = append(tags, strings.ToLower(word))
		}
	}
	tagText := strings.Join(tags, " ")
	switch {
	case strings.Contains(tagText, "denim") || strings.Contains(tagText, "jeans"):
		return "Denim"
	case strings.Contains(tagText, "shirt") || strings.Contains(tagText, "tee"):
		return "Tops"
	case strings.Contains(tagText, "boot") || strings.Contains(tagText, "shoe"):
		return "Footwear"
	case strings.Contains(tagText, "bag") || strings.Contains(tagText, "accessory"):
		return "Accessories"
	case strings.Contains(tagText, "vintage") || strings.Contains(tagText, "retro"):
		return "Vintage"
	default:
		return "General"
	}
}

var featuredKeywords = []string{"featured", "staff pick", "highlight", "best", "top"}

func isFeatured(caption string) bool {
	lower := strings.ToLower(caption)
	for _, kw := range featuredKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
