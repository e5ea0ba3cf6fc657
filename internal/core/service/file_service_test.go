package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/drivehq/drive-api/internal/core/domain"
	"github.com/drivehq/drive-api/internal/core/ports"
)

type stubFileRepo struct {
	files map[string]*domain.File
}

func newStubFileRepo() *stubFileRepo {
	return &stubFileRepo{files: make(map[string]*domain.File)}
}

func (r *stubFileRepo) Create(_ context.Context, file *domain.File) (*domain.File, error) {
	clone := *file
	r.files[file.ID] = &clone
	return &clone, nil
}

func (r *stubFileRepo) FindByID(_ context.Context, id string) (*domain.File, error) {
	if f, ok := r.files[id]; ok {
		clone := *f
		return &clone, nil
	}
	return nil, domain.ErrFileNotFound
}

func (r *stubFileRepo) ListByUser(_ context.Context, userID string) ([]*domain.File, error) {
	var out []*domain.File
	for _, f := range r.files {
		if f.UserID == userID {
			clone := *f
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubFileRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.files[id]; !ok {
		return domain.ErrFileNotFound
	}
	delete(r.files, id)
	return nil
}

type stubObjectStore struct {
	deleted []string
}

func (s *stubObjectStore) PresignPut(_ context.Context, key, _ string) (string, error) {
	return "https://bucket.example.com/" + key + "?sig=put", nil
}

func (s *stubObjectStore) PresignGet(_ context.Context, key string) (string, error) {
	return "https://bucket.example.com/" + key + "?sig=get", nil
}

func (s *stubObjectStore) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *stubObjectStore) Bucket() string { return "test-bucket" }

type stubIdem struct {
	seen map[string]bool
}

func newStubIdem() *stubIdem { return &stubIdem{seen: make(map[string]bool)} }

func (s *stubIdem) IsDuplicate(_ context.Context, userID, key string) (bool, error) {
	return s.seen[userID+":"+key], nil
}

func (s *stubIdem) Mark(_ context.Context, userID, key string) error {
	s.seen[userID+":"+key] = true
	return nil
}

func newFileService(repo ports.FileRepository, objects ports.ObjectStore, idem ports.IdempotencyChecker) *FileService {
	return NewFileService(repo, objects, idem, zerolog.Nop())
}

func TestFileService_CreateAndList(t *testing.T) {
	repo := newStubFileRepo()
	svc := newFileService(repo, &stubObjectStore{}, newStubIdem())

	res, err := svc.Create(context.Background(), "u1", ports.CreateFileInput{
		Name: "report.pdf", Size: 1024, MimeType: "application/pdf",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.UploadURL == "" {
		t.Fatalf("expected upload URL")
	}
	if !strings.Contains(res.File.StorageKey, "uploads/u1/") {
		t.Fatalf("unexpected storage key: %s", res.File.StorageKey)
	}
	if !strings.HasSuffix(res.File.StorageKey, "-report.pdf") {
		t.Fatalf("storage key should end with the file name: %s", res.File.StorageKey)
	}

	files, err := svc.List(context.Background(), "u1")
	if err != nil || len(files) != 1 {
		t.Fatalf("expected one file, got %d (%v)", len(files), err)
	}
}

func TestFileService_CreateIdempotencyReplay(t *testing.T) {
	repo := newStubFileRepo()
	svc := newFileService(repo, &stubObjectStore{}, newStubIdem())
	in := ports.CreateFileInput{Name: "a.txt", Size: 1, MimeType: "text/plain", IdempotencyKey: "k1"}

	if _, err := svc.Create(context.Background(), "u1", in); err != nil {
		t.Fatalf("first create: %v", err)
	}
	if _, err := svc.Create(context.Background(), "u1", in); !errors.Is(err, domain.ErrDuplicateRequest) {
		t.Fatalf("expected ErrDuplicateRequest, got %v", err)
	}
	if len(repo.files) != 1 {
		t.Fatalf("replay created a second record")
	}
}

func TestFileService_GetOwnership(t *testing.T) {
	repo := newStubFileRepo()
	svc := newFileService(repo, &stubObjectStore{}, nil)

	res, _ := svc.Create(context.Background(), "u1", ports.CreateFileInput{Name: "a.txt"})

	if _, err := svc.Get(context.Background(), "u1", res.File.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if _, err := svc.Get(context.Background(), "u2", res.File.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign file, got %v", err)
	}
	if _, err := svc.Get(context.Background(), "u1", "missing"); !errors.Is(err, domain.ErrFileNotFound) {
		t.Fatalf("expected ErrFileNotFound, got %v", err)
	}
}

func TestFileService_DownloadURL(t *testing.T) {
	repo := newStubFileRepo()
	svc := newFileService(repo, &stubObjectStore{}, nil)

	res, _ := svc.Create(context.Background(), "u1", ports.CreateFileInput{Name: "a.txt"})
	url, err := svc.DownloadURL(context.Background(), "u1", res.File.ID)
	if err != nil {
		t.Fatalf("download url: %v", err)
	}
	if !strings.Contains(url, res.File.StorageKey) {
		t.Fatalf("url does not reference the stored key: %s", url)
	}
}

func TestFileService_DeleteRemovesRecordAndObject(t *testing.T) {
	repo := newStubFileRepo()
	objects := &stubObjectStore{}
	svc := newFileService(repo, objects, nil)

	res, _ := svc.Create(context.Background(), "u1", ports.CreateFileInput{Name: "a.txt"})
	if err := svc.Delete(context.Background(), "u1", res.File.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.files) != 0 {
		t.Fatalf("record not deleted")
	}
	if len(objects.deleted) != 1 || objects.deleted[0] != res.File.StorageKey {
		t.Fatalf("object not deleted: %v", objects.deleted)
	}
}

func TestFileService_PresignEndpoints(t *testing.T) {
	svc := newFileService(newStubFileRepo(), &stubObjectStore{}, nil)

	up, err := svc.PresignUpload(context.Background(), "u1", "pic.png", "image/png")
	if err != nil {
		t.Fatalf("presign upload: %v", err)
	}
	if up.Bucket != "test-bucket" || !strings.Contains(up.Key, "uploads/u1/") {
		t.Fatalf("unexpected presign result: %+v", up)
	}

	url, err := svc.PresignDownload(context.Background(), up.Key)
	if err != nil || !strings.Contains(url, up.Key) {
		t.Fatalf("presign download: %s %v", url, err)
	}
}
