package services

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/road-estimator/road-estimator-api/models"
)

// ReportExport locates an archived report snapshot.
type ReportExport struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ReportArchive stores JSON snapshots of reports.
type ReportArchive interface {
	Export(ctx context.Context, report *models.Report) (*ReportExport, error)
	// Purge removes every snapshot of the report.
	Purge(ctx context.Context, userID, reportID string) error
}

// S3ReportArchive implements ReportArchive on top of S3Interface
type S3ReportArchive struct {
	s3Service S3Interface
	now       func() time.Time
}

var reportArchiveInstance ReportArchive

// InitReportArchive initializes the report archive with an S3 backend
func InitReportArchive(s3Service S3Interface) ReportArchive {
	reportArchiveInstance = NewS3ReportArchive(s3Service)
	return reportArchiveInstance
}

// NewS3ReportArchive creates an archive writing to s3Service
func NewS3ReportArchive(s3Service S3Interface) *S3ReportArchive {
	return &S3ReportArchive{s3Service: s3Service, now: time.Now}
}

// GetReportArchive returns the archive, or nil when exports are not configured
func GetReportArchive() ReportArchive {
	return reportArchiveInstance
}

// SetReportArchive sets the report archive instance (primarily for testing)
func SetReportArchive(archive ReportArchive) {
	reportArchiveInstance = archive
}

// Export uploads the report as JSON under
// reports/<user>/<report>/<unix seconds>.json and returns a presigned link.
func (a *S3ReportArchive) Export(ctx context.Context, report *models.Report) (*ReportExport, error) {
	body, err := sonic.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}

	key := fmt.Sprintf("%s%d.json", reportPrefix(report.UserID, report.ID), a.now().Unix())
	if err := a.s3Service.PutObject(ctx, key, body, "application/json"); err != nil {
		return nil, fmt.Errorf("failed to export report: %w", err)
	}

	url, err := a.s3Service.GetPresignedURL(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report URL: %w", err)
	}

	return &ReportExport{Key: key, URL: url}, nil
}

// Purge deletes every snapshot stored for the report.
func (a *S3ReportArchive) Purge(ctx context.Context, userID, reportID string) error {
	keys, err := a.s3Service.ListObjects(ctx, reportPrefix(userID, reportID))
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := a.s3Service.DeleteObject(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func reportPrefix(userID, reportID string) string {
	return fmt.Sprintf("reports/%s/%s/", userID, reportID)
}
