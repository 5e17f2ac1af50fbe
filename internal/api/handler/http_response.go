package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the standard API envelope: success is always present, the
// remaining fields depend on the outcome
type Response struct {
	Success        bool            `json:"success"`
	Message        string          `json:"message,omitempty"`
	Error          string          `json:"error,omitempty"`
	Details        json.RawMessage `json:"details,omitempty"`
	SparksCredited *int64          `json:"sparks_credited,omitempty"`
	Data           interface{}     `json:"data,omitempty"`
	Meta           *MetaInfo       `json:"meta,omitempty"`
}

// MetaInfo represents pagination metadata in a response
type MetaInfo struct {
	Page       int `json:"page,omitempty"`
	PerPage    int `json:"per_page,omitempty"`
	TotalPages int `json:"total_pages,omitempty"`
	TotalItems int `json:"total_items,omitempty"`
}

// RespondCredited sends a 200 OK response for a successful credit
func RespondCredited(c *gin.Context, message string, sparksCredited int64) {
	c.JSON(http.StatusOK, Response{
		Success:        true,
		Message:        message,
		SparksCredited: &sparksCredited,
	})
}

// RespondData sends a response carrying data
func RespondData(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
	})
}

// RespondPaginatedData sends a response with paginated data
func RespondPaginatedData(c *gin.Context, statusCode int, data interface{}, page, perPage, totalItems int) {
	totalPages := totalItems / perPage
	if totalItems%perPage > 0 {
		totalPages++
	}

	c.JSON(statusCode, Response{
		Success: true,
		Data:    data,
		Meta: &MetaInfo{
			Page:       page,
			PerPage:    perPage,
			TotalPages: totalPages,
			TotalItems: totalItems,
		},
	})
}

// RespondError sends an error response with the given status code
func RespondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Error:   message,
	})
}

// RespondErrorWithDetails sends an error response carrying an opaque
// diagnostic payload (e.g. the raw processor response)
func RespondErrorWithDetails(c *gin.Context, statusCode int, message string, details json.RawMessage) {
	c.JSON(statusCode, Response{
		Success: false,
		Error:   message,
		Details: details,
	})
}

// RespondBadRequest sends a 400 Bad Request response with an error
func RespondBadRequest(c *gin.Context, message string) {
	RespondError(c, http.StatusBadRequest, message)
}

// RespondNotFound sends a 404 Not Found response with an error
func RespondNotFound(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	RespondError(c, http.StatusNotFound, message)
}

// RespondInternalError sends a 500 Internal Server Error response
func RespondInternalError(c *gin.Context, message string) {
	if message == "" {
		message = "An internal server error occurred"
	}
	RespondError(c, http.StatusInternalServerError, message)
}
