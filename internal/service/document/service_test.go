package document

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/officehr-backend-go/internal/service/file"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDocumentRepo struct {
	docs    map[string]document.Document
	failing bool
}

func (f *fakeDocumentRepo) Create(ctx context.Context, doc document.Document) (document.Document, error) {
	if f.failing {
		return document.Document{}, errors.New("connection reset")
	}
	doc.ID = uuid.NewString()
	doc.IsActive = true
	f.docs[doc.ID] = doc
	return doc, nil
}

func (f *fakeDocumentRepo) GetByID(ctx context.Context, id string) (document.Document, error) {
	doc, ok := f.docs[id]
	if !ok || !doc.IsActive {
		return document.Document{}, document.ErrDocumentNotFound
	}
	return doc, nil
}

func (f *fakeDocumentRepo) List(ctx context.Context, filter document.DocumentFilter) ([]document.Document, int64, error) {
	out := []document.Document{}
	for _, d := range f.docs {
		if !d.IsActive {
			continue
		}
		if filter.Category != nil && string(d.Category) != *filter.Category {
			continue
		}
		out = append(out, d)
	}
	return out, int64(len(out)), nil
}

func (f *fakeDocumentRepo) SoftDelete(ctx context.Context, id string) error {
	doc, ok := f.docs[id]
	if !ok || !doc.IsActive {
		return document.ErrDocumentNotFound
	}
	doc.IsActive = false
	f.docs[id] = doc
	return nil
}

type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

var (
	admin = user.Identity{UserID: "admin-1", Role: user.RoleAdmin}
	staff = user.Identity{UserID: "emp-1", Role: user.RoleEmployee}
)

func newTestService(t *testing.T) (document.DocumentService, *fakeDocumentRepo, string) {
	t.Helper()
	dir := t.TempDir()
	local, err := storage.NewLocalStorage(dir, "/uploads")
	require.NoError(t, err)
	repo := &fakeDocumentRepo{docs: map[string]document.Document{}}
	return NewDocumentService(repo, file.NewFileService(local)), repo, dir
}

func uploadRequest(title, category, filename string, content []byte) document.UploadDocumentRequest {
	header := textproto.MIMEHeader{}
	header.Set("Content-Type", "application/pdf")
	return document.UploadDocumentRequest{
		Title:      title,
		Category:   category,
		File:       memFile{bytes.NewReader(content)},
		FileHeader: &multipart.FileHeader{Filename: filename, Size: int64(len(content)), Header: header},
	}
}

func TestUploadAndOpenDocument(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	content := []byte("%PDF-1.4 leave policy")
	doc, err := svc.UploadDocument(ctx, admin, uploadRequest("Leave Policy", "policy", "leave-policy.pdf", content))
	require.NoError(t, err)
	assert.Equal(t, "leave-policy.pdf", doc.FileName)
	assert.Equal(t, "application/pdf", doc.FileType)
	assert.Equal(t, int64(len(content)), doc.FileSize)
	assert.Equal(t, "admin-1", doc.UploadedBy)

	// Any authenticated user can download
	got, rc, err := svc.OpenDocument(ctx, staff, doc.ID)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, data)
	assert.Equal(t, doc.ID, got.ID)
}

func TestUploadDocument_Rejections(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	_, err := svc.UploadDocument(ctx, staff, uploadRequest("Notice", "notice", "n.pdf", []byte("x")))
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	_, err = svc.UploadDocument(ctx, admin, uploadRequest("Script", "notice", "run.exe", []byte("x")))
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "file")

	_, err = svc.UploadDocument(ctx, admin, uploadRequest("Notice", "memo", "n.pdf", []byte("x")))
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "category")
}

func TestUploadDocument_InsertFailureRemovesFile(t *testing.T) {
	ctx := context.Background()
	svc, repo, dir := newTestService(t)
	repo.failing = true

	_, err := svc.UploadDocument(ctx, admin, uploadRequest("Form", "form", "form.pdf", []byte("x")))
	require.Error(t, err)

	// The category directory may remain, but it holds no file
	entries, err := os.ReadDir(filepath.Join(dir, "documents", "form"))
	if err == nil {
		assert.Empty(t, entries)
	} else {
		assert.ErrorIs(t, err, fs.ErrNotExist)
	}
}

func TestListAndDeleteDocuments(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService(t)

	policy, err := svc.UploadDocument(ctx, admin, uploadRequest("Policy", "policy", "p.pdf", []byte("p")))
	require.NoError(t, err)
	_, err = svc.UploadDocument(ctx, admin, uploadRequest("Notice", "notice", "n.pdf", []byte("n")))
	require.NoError(t, err)

	category := "policy"
	list, err := svc.ListDocuments(ctx, staff, document.DocumentFilter{Category: &category})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.TotalCount)
	assert.Equal(t, 1, list.TotalPages)

	assert.ErrorIs(t, svc.DeleteDocument(ctx, staff, policy.ID), user.ErrAdminPrivilegeRequired)
	require.NoError(t, svc.DeleteDocument(ctx, admin, policy.ID))

	_, _, err = svc.OpenDocument(ctx, staff, policy.ID)
	assert.ErrorIs(t, err, document.ErrDocumentNotFound)

	all, err := svc.ListDocuments(ctx, staff, document.DocumentFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), all.TotalCount)
}

func TestOpenDocument_MissingFile(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService(t)

	repo.docs["gone"] = document.Document{ID: "gone", FilePath: "documents/other/missing.pdf", IsActive: true}

	_, _, err := svc.OpenDocument(ctx, staff, "gone")
	assert.ErrorIs(t, err, document.ErrFileNotFound)
}
