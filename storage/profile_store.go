// Package storage persists uploaded curricula and the profiles extracted from
// them. Profiles and file metadata are stored as JSON documents keyed by user
// id, so partial updates merge into whatever the document already holds.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Aashish23092/curriculum-ats/dto"
)

// ErrNotFound is returned by point lookups when no document exists for the key.
var ErrNotFound = errors.New("storage: document not found")

// Document collections.
const (
	collectionProfiles = "profiles"
	collectionFiles    = "files"
)

// ProfileStore keeps one profile and one file-metadata document per user.
type ProfileStore interface {
	// SaveProfile merges record into the stored profile, creating it when absent.
	SaveProfile(ctx context.Context, userID string, record dto.ProfileRecord) error
	// MergeProfile applies only the given top-level fields and returns the
	// resulting record.
	MergeProfile(ctx context.Context, userID string, fields map[string]json.RawMessage) (dto.ProfileRecord, error)
	GetProfile(ctx context.Context, userID string) (dto.ProfileRecord, error)
	SaveFileMetadata(ctx context.Context, userID string, meta dto.FilesMetadata) error
	GetFileMetadata(ctx context.Context, userID string) (dto.FilesMetadata, error)
	Close() error
}

// documentBackend is the primitive a database adapter provides: an atomic
// read-modify-write of one JSON document and a point read.
type documentBackend interface {
	// updateDocument passes the stored document (nil when absent) to fn and
	// stores what fn returns.
	updateDocument(ctx context.Context, collection, userID string, fn func(current []byte) ([]byte, error)) ([]byte, error)
	// getDocument fails with ErrNotFound when absent.
	getDocument(ctx context.Context, collection, userID string) ([]byte, error)
}

// documentProfileStore implements ProfileStore on top of a documentBackend.
type documentProfileStore struct {
	backend documentBackend
}

func (s documentProfileStore) SaveProfile(ctx context.Context, userID string, record dto.ProfileRecord) error {
	record.UserID = userID
	fields, err := toFields(record)
	if err != nil {
		return err
	}
	_, err = s.backend.updateDocument(ctx, collectionProfiles, userID, mergeWith(fields))
	return err
}

func (s documentProfileStore) MergeProfile(ctx context.Context, userID string, fields map[string]json.RawMessage) (dto.ProfileRecord, error) {
	patch := make(map[string]json.RawMessage, len(fields)+1)
	for k, v := range fields {
		patch[k] = v
	}
	patch["userId"], _ = json.Marshal(userID)

	doc, err := s.backend.updateDocument(ctx, collectionProfiles, userID, mergeWith(patch))
	if err != nil {
		return dto.ProfileRecord{}, err
	}
	return decodeProfile(doc)
}

func (s documentProfileStore) GetProfile(ctx context.Context, userID string) (dto.ProfileRecord, error) {
	doc, err := s.backend.getDocument(ctx, collectionProfiles, userID)
	if err != nil {
		return dto.ProfileRecord{}, err
	}
	return decodeProfile(doc)
}

func (s documentProfileStore) SaveFileMetadata(ctx context.Context, userID string, meta dto.FilesMetadata) error {
	meta.UserID = userID
	fields, err := toFields(meta)
	if err != nil {
		return err
	}
	_, err = s.backend.updateDocument(ctx, collectionFiles, userID, mergeWith(fields))
	return err
}

func (s documentProfileStore) GetFileMetadata(ctx context.Context, userID string) (dto.FilesMetadata, error) {
	doc, err := s.backend.getDocument(ctx, collectionFiles, userID)
	if err != nil {
		return dto.FilesMetadata{}, err
	}
	var meta dto.FilesMetadata
	if err := json.Unmarshal(doc, &meta); err != nil {
		return dto.FilesMetadata{}, fmt.Errorf("decode file metadata: %w", err)
	}
	return meta, nil
}

// decodeProfile reads a stored document over a defaulted profile, so fields
// the document lacks keep their sentinel values.
func decodeProfile(doc []byte) (dto.ProfileRecord, error) {
	record := dto.ProfileRecord{Profile: dto.NewProfile()}
	if err := json.Unmarshal(doc, &record); err != nil {
		return dto.ProfileRecord{}, fmt.Errorf("decode profile: %w", err)
	}
	if record.Skills == nil {
		record.Skills = []string{}
	}
	return record, nil
}

func toFields(v any) (map[string]json.RawMessage, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return fields, nil
}

// mergeWith returns an update function that overlays fields on the current
// document. Keys not in fields are kept.
func mergeWith(fields map[string]json.RawMessage) func([]byte) ([]byte, error) {
	return func(current []byte) ([]byte, error) {
		return mergeDocument(current, fields)
	}
}

func mergeDocument(current []byte, fields map[string]json.RawMessage) ([]byte, error) {
	doc := map[string]json.RawMessage{}
	if len(current) > 0 {
		if err := json.Unmarshal(current, &doc); err != nil {
			return nil, fmt.Errorf("decode stored document: %w", err)
		}
	}
	for k, v := range fields {
		doc[k] = v
	}
	return json.Marshal(doc)
}
