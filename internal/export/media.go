package export

import (
	"context"
	"os"
	"path/filepath"

	"log/slog"

	"viralclip/internal/clip"
	"viralclip/internal/logging"
	"viralclip/internal/services"
	"viralclip/internal/services/extractor"
)

// MediaExporter retrieves clip media through the analysis service and writes
// it into the export directory.
type MediaExporter struct {
	service   extractor.Service
	exportDir string
	logger    *slog.Logger
}

// NewMediaExporter builds an exporter writing into exportDir.
func NewMediaExporter(service extractor.Service, exportDir string, logger *slog.Logger) *MediaExporter {
	return &MediaExporter{
		service:   service,
		exportDir: exportDir,
		logger:    logging.NewComponentLogger(logger, "export"),
	}
}

// Download fetches one clip at the given quality and writes it to disk,
// returning the written path. canDownload is the collection capability flag
// from the analysis result.
func (m *MediaExporter) Download(ctx context.Context, c clip.Clip, tier QualityTier, canDownload bool) (string, error) {
	if !canDownload {
		return "", services.Wrap(services.ErrExport, "", "", "Clip downloads are not available for this analysis", nil)
	}
	if !c.HasVideoURL() {
		return "", services.Wrap(services.ErrExport, "", "", "No video URL available for download", nil)
	}

	data, err := m.service.DownloadClip(ctx, extractor.DownloadRequest{
		VideoURL:  c.VideoURL,
		StartTime: c.StartTime,
		EndTime:   c.EndTime,
		HookText:  c.HookText,
		Quality:   tier.FormatSelector(),
	})
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(m.exportDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrExport, "export", "download", "create export directory", err)
	}
	path := filepath.Join(m.exportDir, MediaFileName(c, tier))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", services.Wrap(services.ErrExport, "export", "download", "write media file", err)
	}

	m.logger.Info("clip media exported",
		logging.String("clip", c.ID.String()),
		logging.String("path", path),
		logging.Int("bytes", len(data)))
	return path, nil
}
