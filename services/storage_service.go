package services

import (
	"context"
	"math"
	"strings"
	"time"

	"arkive/models"
	"arkive/store"
)

// StorageService aggregates the owner's non-trashed files into a usage
// report bucketed by category.
type StorageService struct {
	files store.FileStore
	limit int64
}

// CategoryUsage is one bucket of the usage report.
type CategoryUsage struct {
	Type       string     `json:"type"`
	Name       string     `json:"name"`
	Size       int64      `json:"size"`
	LastUpdate *time.Time `json:"lastUpdate"`
}

// UsageReport is the full storage summary.
type UsageReport struct {
	TotalUsed      int64           `json:"totalUsed"`
	TotalAvailable int64           `json:"totalAvailable"`
	PercentageUsed float64         `json:"percentageUsed"`
	Categories     []CategoryUsage `json:"categories"`
}

func NewStorageService(files store.FileStore, limit int64) *StorageService {
	return &StorageService{files: files, limit: limit}
}

var (
	documentExts = []string{"pdf", "doc", "docx", "txt", "xls", "xlsx", "ppt", "pptx", "csv"}
	imageExts    = []string{"jpg", "jpeg", "png", "gif", "webp", "svg", "bmp", "ico", "heic"}
	videoExts    = []string{"mp4", "mov", "avi", "mkv", "webm", "flv", "wmv", "m4v"}
	audioExts    = []string{"mp3", "wav", "ogg", "m4a", "flac", "aac", "wma"}
)

func hasExt(exts []string, ext string) bool {
	for _, e := range exts {
		if e == ext {
			return true
		}
	}
	return false
}

// A file belongs to a category when either its extension is on the list or
// its declared content type carries the matching prefix. Content types are
// matched case-insensitively.
func isDocument(f *models.File) bool {
	return hasExt(documentExts, f.Extension()) || hasTypePrefix(f, "application/")
}

func isImage(f *models.File) bool {
	return hasExt(imageExts, f.Extension()) || hasTypePrefix(f, "image/")
}

func isVideo(f *models.File) bool {
	return hasExt(videoExts, f.Extension()) || hasTypePrefix(f, "video/")
}

func isAudio(f *models.File) bool {
	return hasExt(audioExts, f.Extension()) || hasTypePrefix(f, "audio/")
}

func hasTypePrefix(f *models.File, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(f.Type), prefix)
}

type bucket struct {
	size       int64
	lastUpdate *time.Time
}

// add counts the file into the bucket. lastUpdate tracks the newest upload
// (createdAt), not the latest metadata edit.
func (b *bucket) add(f *models.File) {
	b.size += f.Size
	b.touch(f.CreatedAt)
}

func (b *bucket) touch(t time.Time) {
	if b.lastUpdate == nil || t.After(*b.lastUpdate) {
		u := t
		b.lastUpdate = &u
	}
}

// Usage computes the report over the owner's non-trashed files. Buckets are
// not exclusive, so the residual "others" size is clamped at zero.
func (s *StorageService) Usage(ctx context.Context, ownerID string) (*UsageReport, error) {
	files, err := s.files.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var total int64
	var documents, images, media, others bucket
	for i := range files {
		f := &files[i]
		total += f.Size

		if isDocument(f) {
			documents.add(f)
		}
		if isImage(f) {
			images.add(f)
		}
		if isVideo(f) || isAudio(f) {
			media.add(f)
		}

		ext := f.Extension()
		if !hasExt(documentExts, ext) && !hasExt(imageExts, ext) &&
			!hasExt(videoExts, ext) && !hasExt(audioExts, ext) {
			others.touch(f.CreatedAt)
		}
	}

	others.size = total - documents.size - images.size - media.size
	if others.size < 0 {
		others.size = 0
	}

	percentage := 0.0
	if s.limit > 0 {
		percentage = float64(total) / float64(s.limit) * 100
		percentage = math.Round(percentage*10) / 10
		if percentage > 100 {
			percentage = 100
		}
	}

	return &UsageReport{
		TotalUsed:      total,
		TotalAvailable: s.limit,
		PercentageUsed: percentage,
		Categories: []CategoryUsage{
			{Type: "documents", Name: "Documents", Size: documents.size, LastUpdate: documents.lastUpdate},
			{Type: "images", Name: "Images", Size: images.size, LastUpdate: images.lastUpdate},
			{Type: "videos", Name: "Videos, Audio", Size: media.size, LastUpdate: media.lastUpdate},
			{Type: "others", Name: "Others", Size: others.size, LastUpdate: others.lastUpdate},
		},
	}, nil
}
