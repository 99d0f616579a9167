package boltstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"pictora/repository"

	bolt "go.etcd.io/bbolt"
)

var projectBucket = []byte("projects")

// ProjectStore is a bbolt-backed implementation of the project metadata
// store, used when no external project service is wired in.
type ProjectStore struct {
	DBPath string
	db     *bolt.DB
	mu     sync.RWMutex
}

// Init opens the database and creates the projects bucket
func (s *ProjectStore) Init() error {
	dbDir := filepath.Dir(s.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory for BoltDB: %w", err)
	}

	db, err := bolt.Open(s.DBPath, 0600, nil)
	if err != nil {
		return fmt.Errorf("failed to open BoltDB: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(projectBucket)
		return err
	})
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to create bucket: %w", err)
	}

	s.db = db
	return nil
}

// PatchMetadata implements repository.ProjectStore
func (s *ProjectStore) PatchMetadata(ctx context.Context, id string, description string, thumbnail []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(projectBucket)

		doc := &repository.ProjectMetadataDoc{ID: id}
		if raw := b.Get([]byte(id)); raw != nil {
			if err := json.Unmarshal(raw, doc); err != nil {
				return fmt.Errorf("failed to decode stored project %s: %w", id, err)
			}
		}

		doc.Description = description
		if thumbnail != nil {
			doc.Thumbnail = thumbnail
		}
		doc.UpdatedAt = time.Now().UTC()

		raw, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode project %s: %w", id, err)
		}
		return b.Put([]byte(id), raw)
	})
}

// GetOne implements repository.ProjectStore
func (s *ProjectStore) GetOne(ctx context.Context, id string) (*repository.ProjectMetadataDoc, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var doc *repository.ProjectMetadataDoc
	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(projectBucket).Get([]byte(id))
		if raw == nil {
			return nil
		}
		doc = &repository.ProjectMetadataDoc{}
		return json.Unmarshal(raw, doc)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read project %s: %w", id, err)
	}
	return doc, nil
}

func (s *ProjectStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
