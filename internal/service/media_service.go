package service

import (
	"context"
	"fmt"
	"io"
	"lingua_edu_backend/internal/model"
	"lingua_edu_backend/internal/repository"
	"lingua_edu_backend/internal/util"
	"lingua_edu_backend/pkg/logger"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MediaService is the media attachment collaborator: it uploads files
// to the configured storage provider and manages their attachment to
// questions.
type MediaService struct {
	Repo    *repository.MediaRepository
	Storage *StorageService
	DB      *gorm.DB
}

func NewMediaService(repo *repository.MediaRepository, storage *StorageService, db *gorm.DB) *MediaService {
	return &MediaService{Repo: repo, Storage: storage, DB: db}
}

// MediaAttachment describes one file to attach to a question.
type MediaAttachment struct {
	FileID   uint   `json:"id" binding:"required"`
	Context  string `json:"context"`
	Position int    `json:"position"`
}

// UploadSingleFile stores one uploaded file and returns its durable
// record. Audio and video uploads are probed for duration first.
func (s *MediaService) UploadSingleFile(ctx context.Context, header *multipart.FileHeader) (*model.MediaFile, error) {
	src, err := header.Open()
	if err != nil {
		return nil, util.Validationf("cannot read uploaded file: %v", err)
	}
	defer src.Close()

	contentType := header.Header.Get("Content-Type")
	ext := filepath.Ext(header.Filename)
	objectName := fmt.Sprintf("media/%s%s", uuid.New().String(), ext)

	// Stage the upload locally so audio/video can be probed before it
	// goes to the object store.
	tmp, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmp.Name())

	size, err := io.Copy(tmp, src)
	if err != nil {
		tmp.Close()
		return nil, err
	}
	if err := tmp.Close(); err != nil {
		return nil, err
	}

	duration := 0.0
	if strings.HasPrefix(contentType, "audio/") || strings.HasPrefix(contentType, "video/") {
		info, err := util.ProbeMedia(tmp.Name())
		if err != nil {
			logger.Log.Warn("media probe failed", zap.String("file", header.Filename), zap.Error(err))
		} else {
			duration = info.Duration
		}
	}

	url, err := s.Storage.Provider.UploadFile(ctx, objectName, tmp.Name(), contentType)
	if err != nil {
		return nil, err
	}

	file := &model.MediaFile{
		ObjectName: objectName,
		URL:        url,
		MimeType:   contentType,
		Size:       size,
		Duration:   duration,
	}
	if err := s.Repo.CreateFile(s.DB, file); err != nil {
		return nil, err
	}
	return file, nil
}

// AttachMediaFiles links already-uploaded files to a question at
// sequential positions. Runs inside the caller's transaction.
func (s *MediaService) AttachMediaFiles(tx *gorm.DB, questionID uint, attachments []MediaAttachment) error {
	for i, a := range attachments {
		context := a.Context
		if context == "" {
			context = "main"
		}
		position := a.Position
		if position == 0 {
			position = i + 1
		}
		attachment := &model.QuestionMedia{
			QuestionID:  questionID,
			MediaFileID: a.FileID,
			Context:     context,
			Position:    position,
		}
		if err := s.Repo.Attach(tx, attachment); err != nil {
			return err
		}
	}
	return nil
}

// DeleteMediaFiles removes files from the object store and their rows.
// Runs inside the caller's transaction so a storage failure aborts the
// whole cascade.
func (s *MediaService) DeleteMediaFiles(ctx context.Context, tx *gorm.DB, fileIDs []uint) error {
	if len(fileIDs) == 0 {
		return nil
	}
	files, err := s.Repo.FindFilesByIDs(fileIDs)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := s.Storage.Provider.Delete(ctx, f.ObjectName); err != nil {
			return err
		}
	}
	return s.Repo.DeleteFiles(tx, fileIDs)
}

// CollectExclusiveFiles returns the media file ids attached to the
// given questions that no other question still references.
func (s *MediaService) CollectExclusiveFiles(tx *gorm.DB, questionIDs []uint) ([]uint, error) {
	attachments, err := s.Repo.AttachmentsByQuestions(tx, questionIDs)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint]bool)
	var exclusive []uint
	for _, a := range attachments {
		if seen[a.MediaFileID] {
			continue
		}
		seen[a.MediaFileID] = true
		refs, err := s.Repo.CountAttachmentsForFile(tx, a.MediaFileID, questionIDs)
		if err != nil {
			return nil, err
		}
		if refs == 0 {
			exclusive = append(exclusive, a.MediaFileID)
		}
	}
	return exclusive, nil
}
