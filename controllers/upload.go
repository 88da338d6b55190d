package controllers

import (
	"errors"
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
)

// readUpload reads a multipart file field, refusing anything above maxSize bytes.
func readUpload(c *gin.Context, field string, maxSize int64) ([]byte, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, errors.New("No file uploaded")
	}
	if header.Size > maxSize {
		return nil, fmt.Errorf("File exceeds the %d byte limit", maxSize)
	}

	file, err := header.Open()
	if err != nil {
		return nil, errors.New("Failed to read upload")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		return nil, errors.New("Failed to read upload")
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("File exceeds the %d byte limit", maxSize)
	}
	return data, nil
}
