package jobs

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"easyrent-backend/internal/domain"
	"easyrent-backend/internal/logger"
)

// orphanGracePeriod keeps fresh uploads that are not yet attached to a car.
const orphanGracePeriod = 24 * time.Hour

// NormalizeCarImages rewrites car image references to a canonical form.
// Inline data URIs and existing uploads are kept, bundled images are
// pointed at /assets, and anything else is cleared.
func (jr *JobRunner) NormalizeCarImages() error {
	return jr.runWithRecovery(JobNormalizeCarImages, func(ctx context.Context) error {
		cars, err := jr.deps.Cars.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list cars: %w", err)
		}
		uploaded, err := jr.uploadedKeys(ctx)
		if err != nil {
			return err
		}

		updated, cleared := 0, 0
		for _, car := range cars {
			if car.Image == nil {
				continue
			}
			current := *car.Image
			next, keep := normalizeImage(current, uploaded, jr.deps.Uploads)
			if keep && next == current {
				continue
			}

			var image *string
			if keep {
				image = &next
			}
			if err := jr.deps.Cars.UpdateImage(ctx, car.ID, image); err != nil {
				return fmt.Errorf("failed to update image of car %s: %w", car.Code, err)
			}
			if keep {
				updated++
				logger.Debug("Car image rewritten", "car", car.Code, "from", current, "to", next)
			} else {
				cleared++
				logger.Debug("Car image cleared", "car", car.Code, "from", current)
			}
		}

		logger.Info("Car images normalized", "cars", len(cars), "updated", updated, "cleared", cleared)
		return nil
	})
}

// normalizeImage returns the canonical reference for image and whether the
// car should keep an image at all.
func normalizeImage(image string, uploaded map[string]bool, uploads UploadStore) (string, bool) {
	image = strings.TrimSpace(image)
	if image == "" {
		return "", false
	}
	if strings.HasPrefix(image, "data:") {
		return image, true
	}
	if uploads != nil {
		if key, ok := uploads.KeyFromPublicPath(image); ok && uploaded[key] {
			return image, true
		}
	}
	if name := path.Base(image); domain.IsStockImage(name) {
		return domain.StockImagePath(name), true
	}
	return "", false
}

// SweepOrphanUploads deletes uploaded files no car refers to.
func (jr *JobRunner) SweepOrphanUploads() error {
	return jr.runWithRecovery(JobSweepOrphanUploads, func(ctx context.Context) error {
		if jr.deps.Uploads == nil {
			logger.Info("No disk storage configured, nothing to sweep")
			return nil
		}

		files, err := jr.deps.Uploads.List(ctx)
		if err != nil {
			return err
		}
		cars, err := jr.deps.Cars.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list cars: %w", err)
		}

		referenced := make(map[string]bool, len(cars))
		for _, car := range cars {
			if car.Image == nil {
				continue
			}
			if key, ok := jr.deps.Uploads.KeyFromPublicPath(*car.Image); ok {
				referenced[key] = true
			}
		}

		cutoff := jr.now().Add(-orphanGracePeriod)
		deleted := 0
		for _, f := range files {
			if referenced[f.Key] || f.ModTime.After(cutoff) {
				continue
			}
			if err := jr.deps.Uploads.Delete(ctx, f.Key); err != nil {
				logger.Error("Failed to delete orphan upload", "key", f.Key, "error", err)
				continue
			}
			deleted++
			logger.Debug("Orphan upload deleted", "key", f.Key, "size", f.Size)
		}

		logger.Info("Orphan uploads swept", "files", len(files), "deleted", deleted)
		return nil
	})
}

func (jr *JobRunner) uploadedKeys(ctx context.Context) (map[string]bool, error) {
	keys := map[string]bool{}
	if jr.deps.Uploads == nil {
		return keys, nil
	}
	files, err := jr.deps.Uploads.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, f := range files {
		keys[f.Key] = true
	}
	return keys, nil
}
