// Package bookmarks persists the user's bookmarked job listings.
//
// The whole list lives under one key. Every mutation loads the list,
// modifies it and rewrites it in full, so concurrent writers race and the
// last one wins.
package bookmarks

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"
)

// DefaultKey is the key the bookmark list is stored under.
const DefaultKey = "bookmarkedJobs"

var (
	// ErrNotFound is returned when a job id is not bookmarked.
	ErrNotFound = errors.New("bookmarks: job not bookmarked")
	// ErrMalformed is returned when stored data cannot be decoded.
	ErrMalformed = errors.New("bookmarks: malformed data")
	// ErrNoID is returned when a job without an id is written.
	ErrNoID = errors.New("bookmarks: job has no id")
)

// Job is a job listing.
type Job struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Salary       string   `json:"salary"`
	Match        int      `json:"match"`
	Logo         string   `json:"logo"`
	Skills       []string `json:"skills"`
	Posted       string   `json:"posted"`
	Applicants   int      `json:"applicants"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	Benefits     []string `json:"benefits"`
}

// BookmarkedJob is a copy of a listing taken when it was bookmarked.
type BookmarkedJob struct {
	Job
	BookmarkedAt time.Time `json:"bookmarkedAt"`
}

// Store reads and writes the bookmark list.
type Store struct {
	kv  KV
	key string
}

// NewStore creates a store over kv. An empty key selects DefaultKey.
func NewStore(kv KV, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{kv: kv, key: key}
}

// Load returns the stored list in insertion order. A missing key is an
// empty list.
func (s *Store) Load() ([]BookmarkedJob, error) {
	data, ok, err := s.kv.Get(s.key)
	if err != nil {
		return nil, fmt.Errorf("loading bookmarks: %w", err)
	}
	if !ok || len(data) == 0 {
		return []BookmarkedJob{}, nil
	}

	var list []BookmarkedJob
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	for i, b := range list {
		if b.ID == 0 {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrMalformed, i)
		}
	}
	if list == nil {
		list = []BookmarkedJob{}
	}
	return list, nil
}

// Save replaces the stored list. Every entry must carry an id.
func (s *Store) Save(list []BookmarkedJob) error {
	if list == nil {
		list = []BookmarkedJob{}
	}
	for i, b := range list {
		if b.ID == 0 {
			return fmt.Errorf("saving bookmarks: entry %d: %w", i, ErrNoID)
		}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encoding bookmarks: %w", err)
	}
	if err := s.kv.Set(s.key, data); err != nil {
		return fmt.Errorf("saving bookmarks: %w", err)
	}
	return nil
}

// Add appends job stamped with at. Adding a job that is already
// bookmarked leaves the list unchanged.
func (s *Store) Add(job Job, at time.Time) ([]BookmarkedJob, error) {
	if job.ID == 0 {
		return nil, ErrNoID
	}
	list, err := s.Load()
	if err != nil {
		return nil, err
	}
	if index(list, job.ID) >= 0 {
		return list, nil
	}
	list = append(list, BookmarkedJob{Job: job, BookmarkedAt: at.UTC().Truncate(time.Millisecond)})
	if err := s.Save(list); err != nil {
		return nil, err
	}
	slog.Info("bookmark added", "job_id", job.ID, "count", len(list))
	return list, nil
}

// Remove deletes the bookmark for id, keeping the order of the rest.
func (s *Store) Remove(id int) ([]BookmarkedJob, error) {
	list, err := s.Load()
	if err != nil {
		return nil, err
	}
	i := index(list, id)
	if i < 0 {
		return list, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	list = slices.Delete(list, i, i+1)
	if err := s.Save(list); err != nil {
		return nil, err
	}
	slog.Info("bookmark removed", "job_id", id, "count", len(list))
	return list, nil
}

// Toggle bookmarks job if it is not bookmarked and removes it otherwise.
// It returns whether the job is bookmarked afterwards.
func (s *Store) Toggle(job Job, at time.Time) (bool, error) {
	list, err := s.Load()
	if err != nil {
		return false, err
	}
	if index(list, job.ID) >= 0 {
		_, err := s.Remove(job.ID)
		return false, err
	}
	_, err = s.Add(job, at)
	return err == nil, err
}

// Clear removes every bookmark.
func (s *Store) Clear() error {
	if err := s.Save(nil); err != nil {
		return err
	}
	slog.Info("bookmarks cleared")
	return nil
}

// IDs returns the bookmarked job ids in insertion order.
func (s *Store) IDs() ([]int, error) {
	list, err := s.Load()
	if err != nil {
		return nil, err
	}
	ids := make([]int, len(list))
	for i, b := range list {
		ids[i] = b.ID
	}
	return ids, nil
}

// Has reports whether id is bookmarked.
func (s *Store) Has(id int) (bool, error) {
	list, err := s.Load()
	if err != nil {
		return false, err
	}
	return index(list, id) >= 0, nil
}

func index(list []BookmarkedJob, id int) int {
	return slices.IndexFunc(list, func(b BookmarkedJob) bool { return b.ID == id })
}
