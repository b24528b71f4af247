package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-admin-api/internal/dto"
	"github.com/noah-isme/sekolah-admin-api/internal/models"
	"github.com/noah-isme/sekolah-admin-api/internal/repository"
)

var (
	// ErrExpenseNotFound signals a lookup or mutation against a
	// nonexistent expense.
	ErrExpenseNotFound = errors.New("expense not found")
	// ErrReceiptTooLarge indicates the receipt exceeded the size limit.
	ErrReceiptTooLarge = errors.New("receipt exceeds maximum allowed size")
	// ErrReceiptTypeNotAllowed indicates the receipt MIME type is not permitted.
	ErrReceiptTypeNotAllowed = errors.New("receipt file type not allowed")
)

const expenseLogDateLayout = "2006-01-02"

var allowedReceiptTypes = []string{"image/jpeg", "image/png", "image/webp", "application/pdf"}

// FileStorage abstracts receipt upload destinations.
type FileStorage interface {
	Upload(ctx context.Context, name string, reader io.Reader) (string, error)
}

// ExpenseService maintains expenses and their append-only audit trail.
type ExpenseService interface {
	List(ctx context.Context, filter repository.ExpenseFilter) (dto.ExpenseListResponse, error)
	Get(ctx context.Context, id uint) (dto.ExpenseResponse, error)
	Create(ctx context.Context, req dto.ExpenseCreateRequest, createdBy uint, campusID *uint) (dto.ExpenseResponse, error)
	Update(ctx context.Context, id uint, req dto.ExpenseUpdateRequest) (dto.ExpenseResponse, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context, campusID *uint) (dto.ExpenseStatsResponse, error)
	AttachReceipt(ctx context.Context, id uint, file *multipart.FileHeader) (dto.ExpenseResponse, error)
}

type expenseService struct {
	repo       repository.ExpenseRepository
	storage    FileStorage
	validate   *validator.Validate
	logger     zerolog.Logger
	maxReceipt int64
	tracer     trace.Tracer
	now        func() time.Time
}

// NewExpenseService constructs the expense service. storage may be nil
// when receipt uploads are disabled.
func NewExpenseService(repo repository.ExpenseRepository, storage FileStorage, validate *validator.Validate, maxReceiptMB int, logger zerolog.Logger) ExpenseService {
	if maxReceiptMB <= 0 {
		maxReceiptMB = 10
	}
	return &expenseService{
		repo:       repo,
		storage:    storage,
		validate:   validate,
		logger:     logger.With().Str("component", "expense_service").Logger(),
		maxReceipt: int64(maxReceiptMB) * 1024 * 1024,
		tracer:     otel.Tracer("github.com/noah-isme/sekolah-admin-api/internal/service/expense"),
		now:        time.Now,
	}
}

func (s *expenseService) List(ctx context.Context, filter repository.ExpenseFilter) (dto.ExpenseListResponse, error) {
	filter.Page = maxInt(filter.Page, 1)
	filter.PageSize = clampPageSize(filter.PageSize)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ExpenseListResponse{}, err
	}
	return dto.ExpenseListResponse{Items: dto.NewExpenseResponseSlice(items), Total: total}, nil
}

func (s *expenseService) Get(ctx context.Context, id uint) (dto.ExpenseResponse, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExpenseResponse{}, ErrExpenseNotFound
		}
		return dto.ExpenseResponse{}, err
	}
	return dto.NewExpenseResponse(item), nil
}

func (s *expenseService) Create(ctx context.Context, req dto.ExpenseCreateRequest, createdBy uint, campusID *uint) (dto.ExpenseResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.ExpenseResponse{}, err
	}

	status := req.Status
	if status == "" {
		status = models.ExpenseStatusPending
	}

	logs, err := marshalLogs([]models.ExpenseLogEntry{{
		Date:  s.now().Format(expenseLogDateLayout),
		Event: models.ExpenseEventCreated,
	}})
	if err != nil {
		return dto.ExpenseResponse{}, err
	}

	item := models.Expense{
		Date:        req.Date,
		Category:    req.Category,
		Vendor:      req.Vendor,
		Description: req.Description,
		Amount:      req.Amount,
		Status:      status,
		Receipt:     req.Receipt,
		Note:        req.Note,
		Logs:        logs,
		CreatedBy:   createdBy,
		CampusID:    campusID,
	}
	if err := s.repo.Create(ctx, &item); err != nil {
		return dto.ExpenseResponse{}, err
	}

	s.logger.Info().Uint("expense_id", item.ID).Float64("amount", item.Amount).Msg("expense recorded")

	return dto.NewExpenseResponse(item), nil
}

// Update applies a partial update and appends exactly one audit entry:
// the new status name when the status changed, "Edited" otherwise.
func (s *expenseService) Update(ctx context.Context, id uint, req dto.ExpenseUpdateRequest) (dto.ExpenseResponse, error) {
	if status, ok := req.Status.Get(); ok && !models.ValidExpenseStatus(status) {
		return dto.ExpenseResponse{}, fmt.Errorf("%w: status must be one of Pending, Approved, Paid, Rejected", ErrInvalidInput)
	}
	if amount, ok := req.Amount.Get(); ok && amount <= 0 {
		return dto.ExpenseResponse{}, fmt.Errorf("%w: amount must be a positive number", ErrInvalidInput)
	}

	updated, err := s.repo.UpdateAtomic(ctx, id, func(item *models.Expense) error {
		event := models.ExpenseEventEdited
		if status, ok := req.Status.Get(); ok && status != item.Status {
			event = status
		}

		if date, ok := req.Date.Get(); ok {
			item.Date = date
		}
		applyOptionalString(req.Category, &item.Category)
		applyOptionalString(req.Vendor, &item.Vendor)
		applyOptionalString(req.Description, &item.Description)
		if amount, ok := req.Amount.Get(); ok {
			item.Amount = amount
		}
		if status, ok := req.Status.Get(); ok {
			item.Status = status
		}
		applyOptionalString(req.Receipt, &item.Receipt)
		applyOptionalString(req.Note, &item.Note)

		return s.appendLog(item, event)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExpenseResponse{}, ErrExpenseNotFound
		}
		return dto.ExpenseResponse{}, err
	}
	return dto.NewExpenseResponse(updated), nil
}

func (s *expenseService) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *expenseService) Stats(ctx context.Context, campusID *uint) (dto.ExpenseStatsResponse, error) {
	stats, err := s.repo.Stats(ctx, campusID)
	if err != nil {
		return dto.ExpenseStatsResponse{}, err
	}
	return dto.ExpenseStatsResponse{
		Total:    stats.Total,
		Pending:  stats.Pending,
		Approved: stats.Approved,
		Paid:     stats.Paid,
	}, nil
}

func (s *expenseService) AttachReceipt(ctx context.Context, id uint, file *multipart.FileHeader) (dto.ExpenseResponse, error) {
	ctx, span := s.tracer.Start(ctx, "expense.attach_receipt")
	defer span.End()
	span.SetAttributes(attribute.Int64("receipt.max_bytes", s.maxReceipt))

	if s.storage == nil {
		err := errors.New("receipt storage is not configured")
		span.RecordError(err)
		span.SetStatus(codes.Error, "storage unavailable")
		return dto.ExpenseResponse{}, err
	}
	if file == nil {
		return dto.ExpenseResponse{}, fmt.Errorf("%w: receipt file is required", ErrInvalidInput)
	}
	if file.Size > s.maxReceipt {
		span.RecordError(ErrReceiptTooLarge)
		span.SetStatus(codes.Error, "payload too large")
		return dto.ExpenseResponse{}, ErrReceiptTooLarge
	}

	handle, err := file.Open()
	if err != nil {
		span.RecordError(err)
		return dto.ExpenseResponse{}, err
	}
	defer handle.Close()

	buf := bytes.NewBuffer(nil)
	if _, err := io.Copy(buf, io.LimitReader(handle, s.maxReceipt+1)); err != nil {
		span.RecordError(err)
		return dto.ExpenseResponse{}, err
	}
	if int64(buf.Len()) > s.maxReceipt {
		span.RecordError(ErrReceiptTooLarge)
		span.SetStatus(codes.Error, "payload too large")
		return dto.ExpenseResponse{}, ErrReceiptTooLarge
	}

	detected := mimetype.Detect(buf.Bytes())
	if !receiptTypeAllowed(detected.String()) {
		span.SetAttributes(attribute.String("receipt.mime", detected.String()))
		span.RecordError(ErrReceiptTypeNotAllowed)
		span.SetStatus(codes.Error, "type not allowed")
		return dto.ExpenseResponse{}, ErrReceiptTypeNotAllowed
	}

	name := strings.TrimSpace(file.Filename)
	if name == "" {
		name = fmt.Sprintf("receipt-%d", id)
	}
	url, err := s.storage.Upload(ctx, name, bytes.NewReader(buf.Bytes()))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "upload failed")
		return dto.ExpenseResponse{}, err
	}

	updated, err := s.repo.UpdateAtomic(ctx, id, func(item *models.Expense) error {
		item.Receipt = url
		return s.appendLog(item, models.ExpenseEventReceipt)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ExpenseResponse{}, ErrExpenseNotFound
		}
		return dto.ExpenseResponse{}, err
	}

	s.logger.Info().Uint("expense_id", id).Str("mime", detected.String()).Msg("receipt attached")

	return dto.NewExpenseResponse(updated), nil
}

func receiptTypeAllowed(mime string) bool {
	for _, allowed := range allowedReceiptTypes {
		if strings.EqualFold(mime, allowed) {
			return true
		}
	}
	return false
}

func (s *expenseService) appendLog(item *models.Expense, event string) error {
	var logs []models.ExpenseLogEntry
	if len(item.Logs) > 0 {
		if err := json.Unmarshal(item.Logs, &logs); err != nil {
			return fmt.Errorf("decode expense logs: %w", err)
		}
	}
	logs = append(logs, models.ExpenseLogEntry{
		Date:  s.now().Format(expenseLogDateLayout),
		Event: event,
	})
	encoded, err := marshalLogs(logs)
	if err != nil {
		return err
	}
	item.Logs = encoded
	return nil
}

func marshalLogs(logs []models.ExpenseLogEntry) (datatypes.JSON, error) {
	encoded, err := json.Marshal(logs)
	if err != nil {
		return nil, fmt.Errorf("encode expense logs: %w", err)
	}
	return datatypes.JSON(encoded), nil
}
