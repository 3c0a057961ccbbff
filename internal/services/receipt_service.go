package services

import (
	"context"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sjperalta/obrafin-api/internal/models"
	"github.com/sjperalta/obrafin-api/internal/repository"
	"github.com/sjperalta/obrafin-api/internal/storage"
)

// receiptMaxSide is the longest edge, in pixels, kept for receipt photos.
const receiptMaxSide = 1600

// ReceiptService archives supporting files for ledger entries.
type ReceiptService struct {
	repo    repository.TransactionRepository
	storage *storage.LocalStorage
	images  *ImageService
	audit   *AuditService
}

func NewReceiptService(repo repository.TransactionRepository, storage *storage.LocalStorage, images *ImageService, audit *AuditService) *ReceiptService {
	return &ReceiptService{repo: repo, storage: storage, images: images, audit: audit}
}

// Attach stores an uploaded receipt and appends it to the transaction's
// attachments. Large photos are downsized first.
func (s *ReceiptService) Attach(ctx context.Context, actor Actor, txID uint, r io.Reader, filename, mimeType string) (*models.Transaction, error) {
	tx, err := s.repo.FindByID(ctx, txID)
	if err != nil {
		return nil, translateErr(entityTransaction, err)
	}
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return nil, invalidInput("el archivo requiere nombre")
	}

	data, err := io.ReadAll(io.LimitReader(r, storage.MaxFileSize()+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > storage.MaxFileSize() {
		return nil, invalidInput("archivo demasiado grande")
	}
	if data, err = s.images.Shrink(data, filename); err != nil {
		return nil, err
	}

	rel, err := s.storage.UploadFromBytes(data, filename, "receipts")
	if err != nil {
		return nil, err
	}
	tx.Attachments = append(tx.Attachments, models.Attachment{
		ID:       uuid.New().String(),
		Name:     filename,
		URL:      FileURLPrefix + rel,
		MimeType: mimeType,
	})
	if err := s.repo.Update(ctx, tx); err != nil {
		_ = s.storage.Delete(rel)
		return nil, err
	}

	s.audit.LogAsync(actor, models.AuditActionAttach, entityTransaction, tx.ID, filename)
	return tx, nil
}
