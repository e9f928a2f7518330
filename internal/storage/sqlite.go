// ABOUTME: SQLite storage implementation using modernc.org/sqlite (pure Go)
// ABOUTME: Stores settings, feeds, and items in tables and replaces the collection in one transaction

package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/harper/feedboard/internal/models"
)

// SQLiteFilename is the database file inside the data directory.
const SQLiteFilename = "feedboard.db"

// Keys in the settings table. Values are JSON.
const (
	settingTags            = "available_tags"
	settingFolders         = "folders"
	settingMedia           = "media"
	settingRefreshInterval = "refresh_interval"
	settingMaxItems        = "max_items"
)

// SQLiteStore implements the Store interface using SQLite.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// Compile-time check that SQLiteStore implements Store.
var _ Store = (*SQLiteStore)(nil)

// NewSQLiteStore creates a new SQLite storage instance.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	// Ensure directory exists
	if err := EnsureDir(filepath.Dir(dbPath)); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &SQLiteStore{db: db}

	// Initialize schema
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the database tables if they don't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS feeds (
			position INTEGER NOT NULL,
			url TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			folder TEXT NOT NULL DEFAULT '',
			media_type TEXT NOT NULL DEFAULT '',
			last_updated TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS items (
			feed_url TEXT NOT NULL REFERENCES feeds(url) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			guid TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL DEFAULT '',
			link TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			pub_date TIMESTAMP,
			feed_title TEXT NOT NULL DEFAULT '',
			cover_image TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT '',
			media_type TEXT NOT NULL DEFAULT '',
			video_id TEXT NOT NULL DEFAULT '',
			audio_url TEXT NOT NULL DEFAULT '',
			duration TEXT NOT NULL DEFAULT '',
			explicit INTEGER NOT NULL DEFAULT 0,
			image TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			episode_type TEXT NOT NULL DEFAULT '',
			season INTEGER NOT NULL DEFAULT 0,
			episode INTEGER NOT NULL DEFAULT 0,
			enclosure TEXT,
			read INTEGER NOT NULL DEFAULT 0,
			starred INTEGER NOT NULL DEFAULT 0,
			saved INTEGER NOT NULL DEFAULT 0,
			tags TEXT NOT NULL DEFAULT '[]',
			PRIMARY KEY (feed_url, position)
		);

		CREATE INDEX IF NOT EXISTS idx_items_guid ON items(feed_url, guid);
		CREATE INDEX IF NOT EXISTS idx_items_pub_date ON items(pub_date);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the whole collection. An empty database yields the defaults.
func (s *SQLiteStore) Load(ctx context.Context) (*models.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	settings, err := s.loadSettings(ctx)
	if err != nil {
		return nil, err
	}
	if len(settings) == 0 {
		return models.DefaultCollection(), nil
	}

	c := &models.Collection{}
	decode := map[string]any{
		settingTags:            &c.AvailableTags,
		settingFolders:         &c.Folders,
		settingMedia:           &c.Media,
		settingRefreshInterval: &c.RefreshInterval,
		settingMaxItems:        &c.MaxItems,
	}
	for key, dst := range decode {
		raw, ok := settings[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal([]byte(raw), dst); err != nil {
			return nil, fmt.Errorf("decode setting %s: %w", key, err)
		}
	}

	feeds, err := s.loadFeeds(ctx)
	if err != nil {
		return nil, err
	}
	c.Feeds = feeds

	return normalize(c), nil
}

func (s *SQLiteStore) loadSettings(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

func (s *SQLiteStore) loadFeeds(ctx context.Context) ([]models.Feed, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT url, title, folder, media_type, last_updated
		FROM feeds ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("query feeds: %w", err)
	}
	defer rows.Close()

	feeds := []models.Feed{}
	index := make(map[string]int)
	for rows.Next() {
		var feed models.Feed
		var mediaType string
		var lastUpdated sql.NullTime
		if err := rows.Scan(&feed.URL, &feed.Title, &feed.Folder, &mediaType, &lastUpdated); err != nil {
			return nil, fmt.Errorf("scan feed: %w", err)
		}
		feed.MediaType = models.MediaType(mediaType)
		if lastUpdated.Valid {
			feed.LastUpdated = lastUpdated.Time
		}
		feed.Items = []models.FeedItem{}
		index[feed.URL] = len(feeds)
		feeds = append(feeds, feed)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	itemRows, err := s.db.QueryContext(ctx, `
		SELECT feed_url, guid, title, link, description, content, pub_date, feed_title,
			cover_image, summary, author, media_type, video_id, audio_url, duration,
			explicit, image, category, episode_type, season, episode, enclosure,
			read, starred, saved, tags
		FROM items ORDER BY feed_url, position
	`)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		feedURL, item, err := scanItem(itemRows)
		if err != nil {
			return nil, err
		}
		idx, ok := index[feedURL]
		if !ok {
			continue
		}
		item.FeedURL = feedURL
		feeds[idx].Items = append(feeds[idx].Items, item)
	}
	return feeds, itemRows.Err()
}

func scanItem(rows *sql.Rows) (string, models.FeedItem, error) {
	var item models.FeedItem
	var feedURL, mediaType, tagsJSON string
	var pubDate sql.NullTime
	var enclosure sql.NullString
	var explicit, read, starred, saved int
	if err := rows.Scan(
		&feedURL, &item.GUID, &item.Title, &item.Link, &item.Description, &item.Content,
		&pubDate, &item.FeedTitle, &item.CoverImage, &item.Summary, &item.Author,
		&mediaType, &item.VideoID, &item.AudioURL, &item.Duration, &explicit,
		&item.Image, &item.Category, &item.EpisodeType, &item.Season, &item.Episode,
		&enclosure, &read, &starred, &saved, &tagsJSON,
	); err != nil {
		return "", item, fmt.Errorf("scan item: %w", err)
	}

	item.MediaType = models.MediaType(mediaType)
	if pubDate.Valid {
		item.PubDate = pubDate.Time
	}
	item.Explicit = explicit == 1
	item.Read = read == 1
	item.Starred = starred == 1
	item.Saved = saved == 1

	if enclosure.Valid && enclosure.String != "" {
		var enc models.Enclosure
		if err := json.Unmarshal([]byte(enclosure.String), &enc); err != nil {
			return "", item, fmt.Errorf("decode enclosure: %w", err)
		}
		item.Enclosure = &enc
	}
	if err := json.Unmarshal([]byte(tagsJSON), &item.Tags); err != nil {
		return "", item, fmt.Errorf("decode tags: %w", err)
	}
	return feedURL, item, nil
}

// Save replaces the stored collection in a single transaction.
func (s *SQLiteStore) Save(ctx context.Context, c *models.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op after commit

	for _, stmt := range []string{"DELETE FROM items", "DELETE FROM feeds", "DELETE FROM settings"} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear tables: %w", err)
		}
	}

	settings := map[string]any{
		settingTags:            c.AvailableTags,
		settingFolders:         c.Folders,
		settingMedia:           c.Media,
		settingRefreshInterval: c.RefreshInterval,
		settingMaxItems:        c.MaxItems,
	}
	for key, value := range settings {
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encode setting %s: %w", key, err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO settings (key, value) VALUES (?, ?)", key, string(data)); err != nil {
			return fmt.Errorf("insert setting %s: %w", key, err)
		}
	}

	feedStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO feeds (position, url, title, folder, media_type, last_updated)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare feed insert: %w", err)
	}
	defer feedStmt.Close()

	itemStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (feed_url, position, guid, title, link, description, content, pub_date,
			feed_title, cover_image, summary, author, media_type, video_id, audio_url, duration,
			explicit, image, category, episode_type, season, episode, enclosure,
			read, starred, saved, tags)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare item insert: %w", err)
	}
	defer itemStmt.Close()

	for pos, feed := range c.Feeds {
		if _, err := feedStmt.ExecContext(ctx,
			pos, feed.URL, feed.Title, feed.Folder, string(feed.MediaType), timeToSQL(feed.LastUpdated),
		); err != nil {
			return fmt.Errorf("insert feed %q: %w", feed.URL, err)
		}

		for ipos, item := range feed.Items {
			if err := insertItem(ctx, itemStmt, feed.URL, ipos, item); err != nil {
				return fmt.Errorf("insert item %q in feed %q: %w", item.GUID, feed.URL, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func insertItem(ctx context.Context, stmt *sql.Stmt, feedURL string, pos int, item models.FeedItem) error {
	tags := item.Tags
	if tags == nil {
		tags = []models.Tag{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("encode tags: %w", err)
	}

	var enclosure any
	if item.Enclosure != nil {
		data, err := json.Marshal(item.Enclosure)
		if err != nil {
			return fmt.Errorf("encode enclosure: %w", err)
		}
		enclosure = string(data)
	}

	_, err = stmt.ExecContext(ctx,
		feedURL, pos, item.GUID, item.Title, item.Link, item.Description, item.Content,
		timeToSQL(item.PubDate), item.FeedTitle, item.CoverImage, item.Summary, item.Author,
		string(item.MediaType), item.VideoID, item.AudioURL, item.Duration, boolToInt(item.Explicit),
		item.Image, item.Category, item.EpisodeType, item.Season, item.Episode, enclosure,
		boolToInt(item.Read), boolToInt(item.Starred), boolToInt(item.Saved), string(tagsJSON),
	)
	return err
}

func timeToSQL(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// DefaultSQLitePath returns the database path inside dataDir.
func DefaultSQLitePath(dataDir string) string {
	return filepath.Join(dataDir, SQLiteFilename)
}

