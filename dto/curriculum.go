package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"time"
)

var (
	ErrFileRequired   = errors.New("file is required")
	ErrEmptyUpdate    = errors.New("update must contain at least one profile field")
	ErrTooManySkills  = fmt.Errorf("skills must contain at most %d entries", MaxSkills)
	ErrDuplicateSkill = errors.New("skills must not repeat")
	ErrUserIDRequired = errors.New("user id is required")
	ErrFileTooLarge   = errors.New("file exceeds the maximum upload size")
	ErrEmptyName      = errors.New("name must not be empty")
)

// Storage backends recorded on stored files.
const (
	StorageBackendLocal = "local"
	StorageBackendMinIO = "minio"
)

// CurriculumUploadRequest represents an incoming curriculum upload
type CurriculumUploadRequest struct {
	UserID string
	File   *multipart.FileHeader
}

// Validate performs basic validation on the upload request
func (r *CurriculumUploadRequest) Validate(maxSize int64) error {
	if r.UserID == "" {
		return ErrUserIDRequired
	}
	if r.File == nil {
		return ErrFileRequired
	}
	if maxSize > 0 && r.File.Size > maxSize {
		return ErrFileTooLarge
	}
	return nil
}

// ProfileRecord is the persisted form of a profile: the extracted fields plus
// bookkeeping about the upload that produced them.
type ProfileRecord struct {
	Profile
	UserID         string    `json:"userId"`
	LastUploadDate time.Time `json:"lastUploadDate"`
	StorageBackend string    `json:"storageBackend"`
	StoragePath    string    `json:"storagePath"`
	StorageURL     string    `json:"storageUrl"`
	FileName       string    `json:"fileName"`
	FileMimeType   string    `json:"fileMimeType"`
}

// FilesMetadata describes the last file a user uploaded
type FilesMetadata struct {
	UserID           string    `json:"userId"`
	OriginalFileName string    `json:"originalFileName"`
	StorageBackend   string    `json:"storageBackend"`
	StoragePath      string    `json:"storagePath"`
	StorageURL       string    `json:"storageUrl"`
	MimeType         string    `json:"mimeType"`
	UploadDate       time.Time `json:"uploadDate"`
}

// ProfileUpdateRequest carries a partial profile edit. Nil fields are left
// untouched on the stored record.
type ProfileUpdateRequest struct {
	Name                     *string            `json:"name,omitempty"`
	Email                    *string            `json:"email,omitempty"`
	Phone                    *string            `json:"phone,omitempty"`
	ProfessionalSummary      *string            `json:"professionalSummary,omitempty"`
	ProfessionalExperience   *ExperienceSection `json:"professionalExperience,omitempty"`
	Skills                   *[]string          `json:"skills,omitempty"`
	CertificationsAndCourses *string            `json:"certificationsAndCourses,omitempty"`
}

// Validate checks the update carries at least one field and keeps the
// profile invariants.
func (r *ProfileUpdateRequest) Validate() error {
	if r.Name == nil && r.Email == nil && r.Phone == nil && r.ProfessionalSummary == nil &&
		r.ProfessionalExperience == nil && r.Skills == nil && r.CertificationsAndCourses == nil {
		return ErrEmptyUpdate
	}
	if r.Name != nil && *r.Name == "" {
		return ErrEmptyName
	}
	if r.Skills != nil {
		if len(*r.Skills) > MaxSkills {
			return ErrTooManySkills
		}
		seen := make(map[string]struct{}, len(*r.Skills))
		for _, s := range *r.Skills {
			if _, dup := seen[s]; dup {
				return fmt.Errorf("%w: %q", ErrDuplicateSkill, s)
			}
			seen[s] = struct{}{}
		}
	}
	return nil
}

// Fields returns the supplied fields keyed by their JSON name, ready to be
// merged into a stored document.
func (r *ProfileUpdateRequest) Fields() (map[string]json.RawMessage, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}
