// Package update checks the release feed for a newer msgfinder
// build. It only ever reports; installing is left to the user's
// package manager.
package update

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultAPIURL = "https://api.github.com/repos/msgfinder/msgfinder/releases/latest"
	cacheFileName = "update_check.json"
	cacheDuration = 24 * time.Hour
)

// Checker queries the release feed and remembers the answer for a
// day, so repeated invocations stay off the network.
type Checker struct {
	// APIURL points at a GitHub "latest release" endpoint.
	APIURL string
	// CacheDir holds the check cache; usually the data directory.
	CacheDir string
	Client   *http.Client
}

// New returns a Checker caching under cacheDir.
func New(cacheDir string) *Checker {
	return &Checker{
		APIURL:   defaultAPIURL,
		CacheDir: cacheDir,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// Info describes a release the running build should know about.
type Info struct {
	CurrentVersion string
	LatestVersion  string
	URL            string
}

type release struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

type cachedCheck struct {
	CheckedAt time.Time `json:"checked_at"`
	Version   string    `json:"version"`
	URL       string    `json:"url"`
}

// Check reports a newer release, or nil when the build is current.
// force bypasses the cache.
func (c *Checker) Check(currentVersion string, force bool) (*Info, error) {
	if !force {
		if cached := c.loadCache(); cached != nil && time.Since(cached.CheckedAt) < cacheDuration {
			return compare(currentVersion, cached.Version, cached.URL), nil
		}
	}

	rel, err := c.fetchLatest()
	if err != nil {
		return nil, fmt.Errorf("checking for updates: %w", err)
	}
	c.saveCache(rel.TagName, rel.HTMLURL)

	return compare(currentVersion, rel.TagName, rel.HTMLURL), nil
}

// compare decides whether latest is worth reporting against current.
// Dev builds carry versions that cannot be ordered ("dev", commit
// hashes); for those the latest release is always surfaced.
func compare(current, latest, url string) *Info {
	if latest == "" {
		return nil
	}
	cur, lat := canonical(current), canonical(latest)
	if semver.IsValid(cur) && semver.IsValid(lat) && semver.Compare(lat, cur) <= 0 {
		return nil
	}
	return &Info{
		CurrentVersion: current,
		LatestVersion:  latest,
		URL:            url,
	}
}

// canonical normalizes a version to the "vX.Y.Z" form semver wants.
func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return v
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return v
}

func (c *Checker) fetchLatest() (*release, error) {
	req, err := http.NewRequest(http.MethodGet, c.APIURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "msgfinder-update")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("release feed returned %s", resp.Status)
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, err
	}
	return &rel, nil
}

func (c *Checker) cachePath() string {
	return filepath.Join(c.CacheDir, cacheFileName)
}

func (c *Checker) loadCache() *cachedCheck {
	data, err := os.ReadFile(c.cachePath())
	if err != nil {
		return nil
	}
	var cached cachedCheck
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil
	}
	return &cached
}

// saveCache is best effort; a failed write just means the next run
// asks the network again.
func (c *Checker) saveCache(version, url string) {
	cached := cachedCheck{
		CheckedAt: time.Now(),
		Version:   version,
		URL:       url,
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return
	}
	_ = os.MkdirAll(c.CacheDir, 0o755)
	_ = os.WriteFile(c.cachePath(), data, 0o600)
}
