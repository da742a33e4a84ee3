package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Aashish23092/curriculum-ats/dto"
	"github.com/Aashish23092/curriculum-ats/logger"
	"github.com/Aashish23092/curriculum-ats/storage"
	"github.com/Aashish23092/curriculum-ats/utils/curriculum"
)

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// UploadedFile is a curriculum file as received from the client.
type UploadedFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type CurriculumService struct {
	files   storage.FileStore
	store   storage.ProfileStore
	decoder DocumentDecoder
	now     func() time.Time
}

func NewCurriculumService(files storage.FileStore, store storage.ProfileStore, decoder DocumentDecoder) *CurriculumService {
	return &CurriculumService{
		files:   files,
		store:   store,
		decoder: decoder,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// ProcessAndSaveCurriculum stores the original file, extracts a profile from
// it and merge-saves the profile and the file metadata. The stored file is
// removed again when a later step fails.
func (s *CurriculumService) ProcessAndSaveCurriculum(ctx context.Context, userID string, file UploadedFile) (dto.Profile, error) {
	log := logger.Ctx(ctx).With().Str("user_id", userID).Str("file_name", file.Name).Logger()

	if len(file.Data) == 0 {
		return dto.Profile{}, processError(userID, "validate", ErrEmptyDocument)
	}
	mimeType := DetectMimeType(file.ContentType, file.Data)
	if !SupportedMimeType(mimeType) {
		return dto.Profile{}, processError(userID, "validate", fmt.Errorf("%w: %s", ErrUnsupportedFormat, mimeType))
	}

	storedName := uniqueFileName(userID, file.Name)
	stored, err := s.files.Save(ctx, userID, storedName, file.Data, mimeType)
	if err != nil {
		return dto.Profile{}, processError(userID, "store", err)
	}
	log.Info().Str("backend", stored.Backend).Str("path", stored.Path).Msg("curriculum file stored")

	profile, err := s.extractAndSave(ctx, userID, file, mimeType, stored)
	if err != nil {
		if delErr := s.files.Delete(ctx, stored); delErr != nil {
			log.Error().Err(delErr).Str("path", stored.Path).Msg("failed to remove stored file after error")
		} else {
			log.Warn().Str("path", stored.Path).Msg("stored file removed after error")
		}
		return dto.Profile{}, err
	}

	log.Info().
		Int("skills", len(profile.Skills)).
		Bool("has_experience", !profile.ProfessionalExperience.Missing).
		Msg("curriculum processed")
	return profile, nil
}

func (s *CurriculumService) extractAndSave(ctx context.Context, userID string, file UploadedFile, mimeType string, stored storage.StoredFile) (dto.Profile, error) {
	text, err := s.decoder.Decode(ctx, file.Data, mimeType)
	if err != nil {
		return dto.Profile{}, processError(userID, "decode", err)
	}

	profile := curriculum.ParseCurriculum(text)
	now := s.now()

	record := dto.ProfileRecord{
		Profile:        profile,
		UserID:         userID,
		LastUploadDate: now,
		StorageBackend: stored.Backend,
		StoragePath:    stored.Path,
		StorageURL:     stored.URL,
		FileName:       file.Name,
		FileMimeType:   mimeType,
	}
	if err := s.store.SaveProfile(ctx, userID, record); err != nil {
		return dto.Profile{}, processError(userID, "save_profile", err)
	}

	meta := dto.FilesMetadata{
		UserID:           userID,
		OriginalFileName: file.Name,
		StorageBackend:   stored.Backend,
		StoragePath:      stored.Path,
		StorageURL:       stored.URL,
		MimeType:         mimeType,
		UploadDate:       now,
	}
	if err := s.store.SaveFileMetadata(ctx, userID, meta); err != nil {
		return dto.Profile{}, processError(userID, "save_files", err)
	}

	return profile, nil
}

// GetProfile returns the stored profile or ErrProfileNotFound.
func (s *CurriculumService) GetProfile(ctx context.Context, userID string) (dto.ProfileRecord, error) {
	record, err := s.store.GetProfile(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return dto.ProfileRecord{}, fmt.Errorf("%w for user %s", ErrProfileNotFound, userID)
	}
	if err != nil {
		return dto.ProfileRecord{}, processError(userID, "get_profile", err)
	}
	return record, nil
}

// UpdateProfile merges only the fields present in req. A missing profile is
// created from the supplied fields.
func (s *CurriculumService) UpdateProfile(ctx context.Context, userID string, req dto.ProfileUpdateRequest) (dto.ProfileRecord, error) {
	if err := req.Validate(); err != nil {
		return dto.ProfileRecord{}, fmt.Errorf("%w: %w", ErrInvalidUpdate, err)
	}
	fields, err := req.Fields()
	if err != nil {
		return dto.ProfileRecord{}, fmt.Errorf("%w: %w", ErrInvalidUpdate, err)
	}

	record, err := s.store.MergeProfile(ctx, userID, fields)
	if err != nil {
		return dto.ProfileRecord{}, processError(userID, "update_profile", err)
	}
	logger.Ctx(ctx).Info().Str("user_id", userID).Int("fields", len(fields)).Msg("profile updated")
	return record, nil
}

// GetFilesMetadata returns nil when the user never uploaded a file.
func (s *CurriculumService) GetFilesMetadata(ctx context.Context, userID string) (*dto.FilesMetadata, error) {
	meta, err := s.store.GetFileMetadata(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, processError(userID, "get_files", err)
	}
	return &meta, nil
}

// uniqueFileName builds <userId>_<uuid><ext> with the user id reduced to
// characters that are safe in paths and object keys.
func uniqueFileName(userID, originalName string) string {
	safeUser := unsafeNameChars.ReplaceAllString(userID, "_")
	ext := strings.ToLower(filepath.Ext(originalName))
	if unsafeNameChars.MatchString(strings.TrimPrefix(ext, ".")) {
		ext = ""
	}
	return fmt.Sprintf("%s_%s%s", safeUser, uuid.NewString(), ext)
}
