// Package importer is the file-level entry point: one Import call per
// uploaded file, wrapping parse and ETL inside the audit log lifecycle.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rpattn/rximport/internal/domain"
	"github.com/rpattn/rximport/internal/etl"
	"github.com/rpattn/rximport/internal/parser"
	"github.com/rpattn/rximport/internal/repository"
)

// ErrUnsupportedFileType is returned for a Request naming neither pipeline.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// Request describes one uploaded file.
type Request struct {
	FileName   string
	FileType   domain.FileType
	FileSize   int64
	Data       io.Reader
	OnProgress domain.ProgressFunc
}

// Service drives parse → process → finalize for one uploaded file and owns
// the import audit log contract: a Processing row exists before parsing
// begins, and every run finalizes it exactly once.
type Service struct {
	processor *etl.Processor
	logs      repository.ImportLogRepository
	logger    *zap.Logger
}

// NewService wires the import service.
func NewService(processor *etl.Processor, logs repository.ImportLogRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{processor: processor, logs: logs, logger: logger}
}

// Import runs one file end to end and returns its summary. The caller always
// receives either a populated summary or an error distinct from "zero valid
// records"; both "nothing imported" cases stay distinguishable.
func (s *Service) Import(ctx context.Context, req Request) (domain.ImportSummary, error) {
	var summary domain.ImportSummary

	if req.Data == nil {
		return summary, errors.New("data reader is required")
	}
	if req.FileType != domain.FileTypeScripts && req.FileType != domain.FileTypeClaims {
		return summary, fmt.Errorf("%w: %s", ErrUnsupportedFileType, req.FileType)
	}

	startedAt := time.Now()
	logID, err := s.logs.Start(ctx, req.FileName, req.FileType, req.FileSize)
	if err != nil {
		return summary, fmt.Errorf("failed to start import log: %w", err)
	}

	s.logger.Info("import started",
		zap.String("file", req.FileName),
		zap.String("type", string(req.FileType)),
		zap.Int64("size", req.FileSize),
		zap.String("log_id", logID.String()))

	records, err := s.parse(req)
	if err != nil {
		s.fail(ctx, logID, err, startedAt)
		return summary, err
	}

	summary, err = s.process(ctx, req, records)
	if err != nil {
		// An empty file is not a failed run, but it is not a success either;
		// the log keeps the distinction via the error message.
		s.fail(ctx, logID, err, startedAt)
		return summary, err
	}

	if logErr := s.logs.Complete(ctx, logID, summary, startedAt); logErr != nil {
		s.logger.Error("failed to finalize import log",
			zap.String("log_id", logID.String()),
			zap.Error(logErr))
	}

	s.logger.Info("import finished",
		zap.String("file", req.FileName),
		zap.String("status", string(summary.Status())),
		zap.Int("total", summary.TotalRecords),
		zap.Int("imported", summary.RecordsImported),
		zap.Int("skipped", summary.RecordsSkipped))
	return summary, nil
}

// parse streams the file into raw records, scaling parser progress into the
// first 30% of the visible range.
func (s *Service) parse(req Request) ([]domain.RawRecord, error) {
	scaled := func(p domain.Progress) {
		p.Percentage = p.Percentage * 30 / 100
		req.OnProgress.Report(p)
	}

	switch req.FileType {
	case domain.FileTypeScripts:
		return parser.ParseScripts(req.Data, scaled)
	default:
		return parser.ParseClaims(req.Data, scaled)
	}
}

func (s *Service) process(ctx context.Context, req Request, records []domain.RawRecord) (domain.ImportSummary, error) {
	if req.FileType == domain.FileTypeScripts {
		return s.processor.ProcessScripts(ctx, records, req.OnProgress)
	}
	return s.processor.ProcessClaims(ctx, records, req.OnProgress)
}

func (s *Service) fail(ctx context.Context, logID uuid.UUID, cause error, startedAt time.Time) {
	s.logger.Warn("import failed", zap.String("log_id", logID.String()), zap.Error(cause))
	if err := s.logs.Fail(ctx, logID, cause.Error(), startedAt); err != nil {
		s.logger.Error("failed to mark import log failed",
			zap.String("log_id", logID.String()),
			zap.Error(err))
	}
}

// Logs lists recent import attempts for operator review.
func (s *Service) Logs(ctx context.Context, limit, offset int) ([]domain.ImportLog, error) {
	return s.logs.List(ctx, limit, offset)
}
