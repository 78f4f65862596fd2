package service

import (
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Selinclb/eticaretsitesi/internal/config"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/google/uuid"
)

var allowedUploadScenes = map[string]struct{}{
	"product":     {},
	"subcategory": {},
	"slider":      {},
	"common":      {},
}

var allowedUploadTypes = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
}

// UploadService 图片上传服务
type UploadService struct {
	cfg config.UploadConfig
	now func() time.Time
}

// NewUploadService 创建图片上传服务
func NewUploadService(cfg config.UploadConfig) *UploadService {
	if strings.TrimSpace(cfg.Dir) == "" {
		cfg.Dir = "uploads"
	}
	return &UploadService{cfg: cfg, now: time.Now}
}

// Dir 上传根目录
func (s *UploadService) Dir() string {
	return s.cfg.Dir
}

// SaveFile 保存上传图片，返回 /uploads 开头的相对路径
func (s *UploadService) SaveFile(file *multipart.FileHeader, scene string) (string, error) {
	if s.cfg.MaxSize > 0 && file.Size > s.cfg.MaxSize {
		return "", ErrUploadTooLarge
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if len(s.cfg.AllowedExtensions) > 0 && (ext == "" || !isAllowedExtension(ext, s.cfg.AllowedExtensions)) {
		return "", ErrUploadTypeInvalid
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := src.Read(head)
	if err != nil && err != io.EOF {
		return "", err
	}
	contentType := http.DetectContentType(head[:n])
	if _, ok := allowedUploadTypes[contentType]; !ok {
		return "", ErrUploadTypeInvalid
	}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	imgCfg, _, err := image.DecodeConfig(src)
	if err != nil {
		return "", ErrUploadImageInvalid
	}
	if s.cfg.MaxWidth > 0 && imgCfg.Width > s.cfg.MaxWidth {
		return "", ErrUploadImageInvalid
	}
	if s.cfg.MaxHeight > 0 && imgCfg.Height > s.cfg.MaxHeight {
		return "", ErrUploadImageInvalid
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	normalizedScene := normalizeUploadScene(scene)
	filename := uuid.New().String() + ext
	month := s.now().Format("2006/01")
	relDir := filepath.Join(normalizedScene, filepath.FromSlash(month))
	if err := os.MkdirAll(filepath.Join(s.cfg.Dir, relDir), 0o755); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(s.cfg.Dir, relDir, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return fmt.Sprintf("/uploads/%s/%s/%s", normalizedScene, month, filename), nil
}

func normalizeUploadScene(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := allowedUploadScenes[value]; ok {
		return value
	}
	return "common"
}

func isAllowedExtension(ext string, allowed []string) bool {
	for _, allowedExt := range allowed {
		normalized := strings.ToLower(strings.TrimSpace(allowedExt))
		if normalized == "" {
			continue
		}
		if !strings.HasPrefix(normalized, ".") {
			normalized = "." + normalized
		}
		if ext == normalized {
			return true
		}
	}
	return false
}
