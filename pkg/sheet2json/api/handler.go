// Package api exposes the converter over HTTP for the serve command.
package api

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ArtUshak/sheet2json/pkg/sheet2json"
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the JSON body returned on conversion failure.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// RegisterRoutes sets up the HTTP routes on the fiber app.
func RegisterRoutes(app *fiber.App) {
	app.Get("/api/health", HandleHealth)
	app.Post("/api/convert", HandleConvert)
}

// HandleHealth reports service liveness.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"engine": "fiber",
	})
}

// HandleConvert accepts a spreadsheet upload (multipart field "file") and
// returns the converted document as JSON. Optional form values: "sheet"
// selects a worksheet, "mode" is table or receipts, "pretty" is ignored
// (responses are always compact JSON).
func HandleConvert(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "no file uploaded, use form field 'file'")
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if ext != ".xlsx" && ext != ".xlsm" && ext != ".csv" {
		return writeError(c, fiber.StatusBadRequest, "only .xlsx, .xlsm and .csv files are supported")
	}

	opts := sheet2json.DefaultOptions()
	opts.SheetName = c.FormValue("sheet")
	switch c.FormValue("mode") {
	case "", "table":
		opts.Mode = sheet2json.ModeTable
	case "receipts":
		opts.Mode = sheet2json.ModeReceipts
	default:
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("unknown mode %q, use table or receipts", c.FormValue("mode")))
	}
	if ext == ".csv" {
		opts.Format = sheet2json.FormatCSV
	}

	// Stage the upload so the workbook reader can open it by path.
	tmpDir, err := os.MkdirTemp("", "sheet2json-upload-")
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "failed to stage upload")
	}
	defer os.RemoveAll(tmpDir)

	tmpPath := filepath.Join(tmpDir, "upload"+ext)
	if err := c.SaveFile(fileHeader, tmpPath); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "failed to save uploaded file")
	}

	var doc interface{}
	switch opts.Mode {
	case sheet2json.ModeReceipts:
		doc, err = sheet2json.ConvertReceipts(c.Context(), tmpPath, opts)
	default:
		doc, err = sheet2json.ConvertTable(tmpPath, opts)
	}
	if err != nil {
		slog.Error("conversion failed", "file", fileHeader.Filename, "error", err)
		return writeError(c, statusFor(err), err.Error())
	}

	return c.JSON(doc)
}

// statusFor maps conversion errors to HTTP statuses: client-side input
// problems are 422, everything else 500.
func statusFor(err error) int {
	var rowErr *sheet2json.RowError
	switch {
	case errors.Is(err, sheet2json.ErrInputNotFound),
		errors.Is(err, sheet2json.ErrUnsupportedFormat),
		errors.Is(err, sheet2json.ErrEmptyWorksheet),
		errors.Is(err, sheet2json.ErrMalformedRow),
		errors.As(err, &rowErr):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ErrorResponse{Success: false, Error: msg})
}
