package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/google/uuid"

	"cloudedumatch_backend/internal/authz"
	"cloudedumatch_backend/internal/config"
	"cloudedumatch_backend/internal/logger"
	"cloudedumatch_backend/internal/models"
	"cloudedumatch_backend/internal/repositories"
	"cloudedumatch_backend/internal/services/dto"
	"cloudedumatch_backend/internal/storage"
	"cloudedumatch_backend/pkg/apperrors"
)

type FileService interface {
	Upload(ctx context.Context, uploaderID, originalName, mimeType string, size int64, reader io.Reader) (*dto.FileAssetResponse, error)
	// Open streams an asset to its uploader or to an admin (reviewers
	// hold admin grants, so evidence files stay readable to them).
	Open(ctx context.Context, callerID, fileID string) (*models.FileAsset, io.ReadCloser, error)
	ListMine(ctx context.Context, uploaderID string) ([]*dto.FileAssetResponse, error)
	Delete(ctx context.Context, callerID, fileID string) error
}

type fileService struct {
	files repositories.FileRepository
	users repositories.UserRepository
	store storage.Storage
}

func NewFileService(files repositories.FileRepository, users repositories.UserRepository, store storage.Storage) FileService {
	return &fileService{files: files, users: users, store: store}
}

func (s *fileService) Upload(ctx context.Context, uploaderID, originalName, mimeType string, size int64, reader io.Reader) (*dto.FileAssetResponse, error) {
	cfg := config.GetConfig()
	if size > cfg.Upload.MaxSize {
		return nil, apperrors.ErrFileTooLarge
	}
	if !allowedMimeType(mimeType, cfg.Upload.AllowedTypes) {
		return nil, apperrors.ErrInvalidFileType
	}

	ext := filepath.Ext(originalName)
	path := fmt.Sprintf("%s/%s%s", uploaderID, uuid.NewString(), ext)

	if err := s.store.Save(ctx, path, reader, mimeType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	asset := &models.FileAsset{
		UploaderID:   uploaderID,
		OriginalName: originalName,
		StoragePath:  path,
		MimeType:     mimeType,
		Size:         size,
	}
	if err := s.files.Create(asset); err != nil {
		// Best effort rollback of the stored blob.
		if cleanupErr := s.store.Delete(ctx, path); cleanupErr != nil {
			logger.WithError(cleanupErr).Warn("orphan blob cleanup failed", "path", path)
		}
		return nil, apperrors.InternalError(err)
	}

	url, err := s.store.GetURL(ctx, path)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewFileAssetResponse(asset, url), nil
}

func (s *fileService) Open(ctx context.Context, callerID, fileID string) (*models.FileAsset, io.ReadCloser, error) {
	asset, err := s.files.FindByID(fileID)
	if err != nil {
		if errors.Is(err, repositories.ErrFileNotFound) {
			return nil, nil, apperrors.ErrNotFound(err)
		}
		return nil, nil, apperrors.InternalError(err)
	}

	if asset.UploaderID != callerID {
		caller, err := s.users.FindByIDWithGrants(callerID)
		if err != nil {
			if errors.Is(err, repositories.ErrUserNotFound) {
				return nil, nil, apperrors.ErrNotFound(err)
			}
			return nil, nil, apperrors.InternalError(err)
		}
		if !authz.IsSuperuser(caller) && !authz.IsHQ(caller) && len(caller.AdminRoles) == 0 {
			return nil, nil, apperrors.ErrInsufficientPermissions
		}
	}

	reader, err := s.store.Get(ctx, asset.StoragePath)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}
	return asset, reader, nil
}

func (s *fileService) ListMine(ctx context.Context, uploaderID string) ([]*dto.FileAssetResponse, error) {
	assets, err := s.files.ListByUploader(uploaderID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	out := make([]*dto.FileAssetResponse, 0, len(assets))
	for i := range assets {
		url, err := s.store.GetURL(ctx, assets[i].StoragePath)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		out = append(out, dto.NewFileAssetResponse(&assets[i], url))
	}
	return out, nil
}

func (s *fileService) Delete(ctx context.Context, callerID, fileID string) error {
	asset, err := s.files.FindByID(fileID)
	if err != nil {
		if errors.Is(err, repositories.ErrFileNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if asset.UploaderID != callerID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.store.Delete(ctx, asset.StoragePath); err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.files.Delete(asset.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func allowedMimeType(mimeType string, allowed []string) bool {
	for _, t := range allowed {
		if t == mimeType {
			return true
		}
	}
	return false
}
