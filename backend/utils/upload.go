package utils

import (
	"errors"
	"mime/multipart"
	"path/filepath"
	"strings"

	"easyquiz/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Same whitelist the original clients were built against.
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// SaveProfileImage stores an uploaded image under the uploads dir with a
// generated filename and returns the public URL path ("/uploads/<name>").
func SaveProfileImage(c *fiber.Ctx, file *multipart.FileHeader, cfg *config.Config) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		return "", errors.New("only image files allowed")
	}

	name := uuid.NewString() + ext
	if err := c.SaveFile(file, filepath.Join(cfg.UploadsDir, name)); err != nil {
		return "", err
	}

	return "/uploads/" + name, nil
}
