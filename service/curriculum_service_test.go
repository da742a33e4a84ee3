package service

import (
	"context"
	"errors"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aashish23092/curriculum-ats/dto"
	"github.com/Aashish23092/curriculum-ats/storage"
)

const shortCurriculum = `MARIA DA SILVA
maria@x.com

Habilidades: Go, Docker
`

var fixedNow = time.Date(2026, 5, 4, 10, 30, 0, 0, time.UTC)

// memoryFileStore keeps saved files in a map.
type memoryFileStore struct {
	files   map[string][]byte
	deleted []string
	saveErr error
}

func newMemoryFileStore() *memoryFileStore {
	return &memoryFileStore{files: map[string][]byte{}}
}

func (m *memoryFileStore) Save(_ context.Context, userID, name string, data []byte, _ string) (storage.StoredFile, error) {
	if m.saveErr != nil {
		return storage.StoredFile{}, m.saveErr
	}
	key := userID + "/" + name
	m.files[key] = data
	return storage.StoredFile{Backend: dto.StorageBackendLocal, Path: key, URL: "/uploads/" + name}, nil
}

func (m *memoryFileStore) Delete(_ context.Context, file storage.StoredFile) error {
	delete(m.files, file.Path)
	m.deleted = append(m.deleted, file.Path)
	return nil
}

type failingMetadataStore struct {
	storage.ProfileStore
}

func (failingMetadataStore) SaveFileMetadata(context.Context, string, dto.FilesMetadata) error {
	return errors.New("disk full")
}

type failingDecoder struct{}

func (failingDecoder) Decode(context.Context, []byte, string) (string, error) {
	return "", errors.New("corrupt document")
}

func newTestService(t *testing.T) (*CurriculumService, *memoryFileStore, storage.ProfileStore) {
	t.Helper()
	store, err := storage.NewSQLiteProfileStore(filepath.Join(t.TempDir(), "profiles.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	files := newMemoryFileStore()
	svc := NewCurriculumService(files, store, NewDocumentDecoder(&fakePDFProcessor{}, nil, 0))
	svc.now = func() time.Time { return fixedNow }
	return svc, files, store
}

func TestProcessAndSaveCurriculum(t *testing.T) {
	svc, files, _ := newTestService(t)
	ctx := context.Background()

	profile, err := svc.ProcessAndSaveCurriculum(ctx, "u-1", UploadedFile{
		Name:        "Curriculo.TXT",
		ContentType: "text/plain",
		Data:        []byte(shortCurriculum),
	})
	require.NoError(t, err)

	assert.Equal(t, "MARIA DA SILVA", profile.Name)
	assert.Equal(t, "maria@x.com", profile.Email)
	assert.Equal(t, []string{"go", "docker"}, profile.Skills)
	assert.True(t, profile.ProfessionalExperience.Missing)
	require.Len(t, files.files, 1)

	record, err := svc.GetProfile(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, profile, record.Profile)
	assert.Equal(t, "u-1", record.UserID)
	assert.Equal(t, "Curriculo.TXT", record.FileName)
	assert.Equal(t, MimeText, record.FileMimeType)
	assert.True(t, record.LastUploadDate.Equal(fixedNow))
	assert.Regexp(t, regexp.MustCompile(`^u-1/u-1_[0-9a-f-]{36}\.txt$`), record.StoragePath)

	meta, err := svc.GetFilesMetadata(ctx, "u-1")
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, "Curriculo.TXT", meta.OriginalFileName)
	assert.Equal(t, record.StorageURL, meta.StorageURL)
	assert.True(t, meta.UploadDate.Equal(fixedNow))
}

func TestProcessAndSaveCurriculumSniffsGenericType(t *testing.T) {
	svc, _, _ := newTestService(t)

	profile, err := svc.ProcessAndSaveCurriculum(context.Background(), "u-1", UploadedFile{
		Name:        "cv",
		ContentType: "application/octet-stream",
		Data:        []byte(shortCurriculum),
	})
	require.NoError(t, err)
	assert.Equal(t, "MARIA DA SILVA", profile.Name)
}

func TestProcessAndSaveCurriculumRejectsInput(t *testing.T) {
	svc, files, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.ProcessAndSaveCurriculum(ctx, "u-1", UploadedFile{Name: "photo.png", ContentType: "image/png", Data: []byte("\x89PNG\r\n")})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = svc.ProcessAndSaveCurriculum(ctx, "u-1", UploadedFile{Name: "empty.txt", ContentType: "text/plain"})
	assert.ErrorIs(t, err, ErrEmptyDocument)

	assert.Empty(t, files.files)
	_, err = svc.GetProfile(ctx, "u-1")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestProcessAndSaveCurriculumRemovesFileOnFailure(t *testing.T) {
	t.Run("decode", func(t *testing.T) {
		svc, files, _ := newTestService(t)
		svc.decoder = failingDecoder{}

		_, err := svc.ProcessAndSaveCurriculum(context.Background(), "u-1", UploadedFile{Name: "cv.txt", ContentType: "text/plain", Data: []byte("x")})
		require.Error(t, err)

		var pe *ProcessError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "decode", pe.Op)
		assert.Equal(t, "u-1", pe.UserID)
		assert.Empty(t, files.files)
		assert.Len(t, files.deleted, 1)
	})

	t.Run("metadata", func(t *testing.T) {
		svc, files, store := newTestService(t)
		svc.store = failingMetadataStore{ProfileStore: store}

		_, err := svc.ProcessAndSaveCurriculum(context.Background(), "u-1", UploadedFile{Name: "cv.txt", ContentType: "text/plain", Data: []byte(shortCurriculum)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk full")
		assert.Empty(t, files.files)
	})

	t.Run("store", func(t *testing.T) {
		svc, files, _ := newTestService(t)
		files.saveErr = errors.New("bucket missing")

		_, err := svc.ProcessAndSaveCurriculum(context.Background(), "u-1", UploadedFile{Name: "cv.txt", ContentType: "text/plain", Data: []byte("x")})
		require.Error(t, err)
		assert.Empty(t, files.deleted)
	})
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.ProcessAndSaveCurriculum(ctx, "u-1", UploadedFile{Name: "cv.txt", ContentType: "text/plain", Data: []byte(shortCurriculum)})
	require.NoError(t, err)

	phone := "(21) 99999-0000"
	skills := []string{"Go", "Rust"}
	record, err := svc.UpdateProfile(ctx, "u-1", dto.ProfileUpdateRequest{Phone: &phone, Skills: &skills})
	require.NoError(t, err)

	assert.Equal(t, phone, record.Phone)
	assert.Equal(t, skills, record.Skills)
	assert.Equal(t, "MARIA DA SILVA", record.Name)
	assert.Equal(t, "cv.txt", record.FileName)

	stored, err := svc.GetProfile(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, record, stored)
}

func TestUpdateProfileCreatesMissingProfile(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	name := "Ana Lima"
	record, err := svc.UpdateProfile(ctx, "u-2", dto.ProfileUpdateRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "u-2", record.UserID)
	assert.Equal(t, name, record.Name)
	assert.Empty(t, record.Email)
	assert.Equal(t, []string{}, record.Skills)
	assert.True(t, record.ProfessionalExperience.Missing)
}

func TestUpdateProfileValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.UpdateProfile(ctx, "u-1", dto.ProfileUpdateRequest{})
	assert.ErrorIs(t, err, ErrInvalidUpdate)
	assert.ErrorIs(t, err, dto.ErrEmptyUpdate)

	skills := []string{"Go", "Go"}
	_, err = svc.UpdateProfile(ctx, "u-1", dto.ProfileUpdateRequest{Skills: &skills})
	assert.ErrorIs(t, err, ErrInvalidUpdate)
	assert.ErrorIs(t, err, dto.ErrDuplicateSkill)
}

func TestGetFilesMetadataMissing(t *testing.T) {
	svc, _, _ := newTestService(t)

	meta, err := svc.GetFilesMetadata(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, meta)
}

func TestUniqueFileName(t *testing.T) {
	pattern := regexp.MustCompile(`^user_1_[0-9a-f-]{36}\.pdf$`)
	assert.Regexp(t, pattern, uniqueFileName("user/1", "CV Final.PDF"))
	assert.Regexp(t, regexp.MustCompile(`^u-1_[0-9a-f-]{36}$`), uniqueFileName("u-1", "curriculo"))
	assert.NotEqual(t, uniqueFileName("u-1", "a.pdf"), uniqueFileName("u-1", "a.pdf"))
}
