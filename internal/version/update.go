package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// GitHubAPI is the API root used for release lookups.
var GitHubAPI = "https://api.github.com"

// UpdateInfo contains information about available updates.
type UpdateInfo struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
}

type release struct {
	TagName string `json:"tag_name"`
}

// CheckForUpdate asks GitHub for the latest release, falling back to tags
// for repositories without releases.
func CheckForUpdate(ctx context.Context) (UpdateInfo, error) {
	info := UpdateInfo{CurrentVersion: Version}
	client := &http.Client{Timeout: 5 * time.Second}

	var latest release
	status, err := getJSON(ctx, client, GitHubAPI+"/repos/"+Repository+"/releases/latest", &latest)
	if err != nil {
		return info, fmt.Errorf("failed to check for updates: %w", err)
	}

	if status != http.StatusOK {
		log.WithFields(log.Fields{"status": status}).Debugf("No release found, checking tags")

		var tags []release
		status, err = getJSON(ctx, client, GitHubAPI+"/repos/"+Repository+"/tags", &tags)
		if err != nil {
			return info, fmt.Errorf("failed to check for updates: %w", err)
		}
		if status != http.StatusOK {
			return info, fmt.Errorf("failed to check for updates: status %d", status)
		}
		if len(tags) == 0 {
			info.LatestVersion = info.CurrentVersion
			return info, nil
		}
		// Tags are returned newest first
		latest = tags[0]
	}

	info.LatestVersion = strings.TrimPrefix(latest.TagName, "v")
	info.UpdateAvailable = isNewer(info.LatestVersion, info.CurrentVersion)
	return info, nil
}

// getJSON decodes the body into v on 200 and returns the status code.
func getJSON(ctx context.Context, client *http.Client, url string, v interface{}) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to parse update response: %w", err)
	}
	return resp.StatusCode, nil
}

// isNewer compares dotted versions numerically.
func isNewer(latest, current string) bool {
	l, c := strings.Split(latest, "."), strings.Split(current, ".")

	for i := 0; i < len(l) && i < len(c); i++ {
		ln, _ := strconv.Atoi(l[i])
		cn, _ := strconv.Atoi(c[i])
		if ln != cn {
			return ln > cn
		}
	}
	return len(l) > len(c)
}

// InstallCommand returns the command to update the application.
func InstallCommand() string {
	return "go install github.com/" + Repository + "/cmd/kat-search@latest"
}
