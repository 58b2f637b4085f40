package storage

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	latestObject = "latest.json"
	inputsFolder = "inputs"
)

// LatestKey is where the newest dashboard is published.
func LatestKey(prefix string) string {
	return path.Join(cleanPrefix(prefix), latestObject)
}

// RunKey is the archive location of one run's dashboard.
func RunKey(prefix string, date time.Time, runID string) string {
	return path.Join(cleanPrefix(prefix), date.Format("2006-01-02"), runID+".json")
}

// InputsPrefix is the folder input exports are fetched from.
func InputsPrefix(prefix string) string {
	return path.Join(cleanPrefix(prefix), inputsFolder) + "/"
}

func cleanPrefix(prefix string) string {
	return strings.Trim(prefix, "/")
}

// Publisher uploads dashboards and fetches input exports under a key prefix.
type Publisher struct {
	store  ObjectStorage
	prefix string
}

// NewPublisher creates a publisher rooted at prefix.
func NewPublisher(store ObjectStorage, prefix string) *Publisher {
	return &Publisher{store: store, prefix: prefix}
}

// Publish uploads the run's archive copy first and then replaces latest.json,
// returning the keys written.
func (p *Publisher) Publish(ctx context.Context, runID string, at time.Time, data []byte) ([]string, error) {
	keys := []string{RunKey(p.prefix, at, runID), LatestKey(p.prefix)}
	for _, key := range keys {
		if err := p.store.UploadObject(ctx, key, data); err != nil {
			return nil, fmt.Errorf("failed to publish dashboard: %w", err)
		}
		log.Info().Str("run_id", runID).Str("key", key).Int("bytes", len(data)).Msg("published dashboard")
	}
	return keys, nil
}

// FetchInputs downloads every object under the inputs folder that resolve
// maps to a local path. resolve returns false for objects to skip.
func (p *Publisher) FetchInputs(ctx context.Context, resolve func(name string) (string, bool)) ([]string, error) {
	objects, err := p.store.ListObjects(ctx, InputsPrefix(p.prefix))
	if err != nil {
		return nil, err
	}

	downloaded := make([]string, 0, len(objects))
	for _, obj := range objects {
		dest, ok := resolve(filepath.Base(obj.Key))
		if !ok {
			log.Debug().Str("key", obj.Key).Msg("skipping object")
			continue
		}
		if err := p.store.DownloadObject(ctx, obj.Key, dest); err != nil {
			return downloaded, err
		}
		log.Info().Str("key", obj.Key).Str("path", dest).Int64("size", obj.Size).Msg("downloaded input")
		downloaded = append(downloaded, dest)
	}
	return downloaded, nil
}
