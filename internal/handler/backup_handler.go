package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"clubportal/internal/backup"
	"clubportal/internal/service"
)

// BackupHandler serves backup archives.
type BackupHandler struct {
	svc service.BackupService
}

// NewBackupHandler creates a new backup handler.
func NewBackupHandler(svc service.BackupService) *BackupHandler {
	return &BackupHandler{svc: svc}
}

// BackupRequest selects what to archive.
type BackupRequest struct {
	Kind        string `json:"kind"`
	Description string `json:"description"`
}

// RestoreResponse lists the restored tables.
type RestoreResponse struct {
	Tables []string `json:"tables"`
}

// Create godoc
// @Summary Create a backup archive
// @Tags backup
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BackupRequest false "Kind: full, users, board or assignments"
// @Success 201 {object} backup.Info
// @Failure 403 {object} errors.ErrorResponse
// @Router /backups [post]
func (h *BackupHandler) Create(c echo.Context) error {
	var req BackupRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	kind := backup.KindFull
	if req.Kind != "" {
		var ok bool
		if kind, ok = backup.ParseKind(req.Kind); !ok {
			return badRequest("unknown backup kind " + req.Kind)
		}
	}
	info, err := h.svc.Create(c.Request().Context(), principal(c), kind, req.Description)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, info)
}

// List godoc
// @Summary List backup archives, newest first
// @Tags backup
// @Produce json
// @Security BearerAuth
// @Success 200 {array} backup.Info
// @Router /backups [get]
func (h *BackupHandler) List(c echo.Context) error {
	infos, err := h.svc.List(c.Request().Context(), principal(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, infos)
}

// Download godoc
// @Summary Download a backup archive
// @Tags backup
// @Produce application/zip
// @Security BearerAuth
// @Param name path string true "Archive name"
// @Success 200 {file} binary
// @Failure 404 {object} errors.ErrorResponse
// @Router /backups/{name} [get]
func (h *BackupHandler) Download(c echo.Context) error {
	name := c.Param("name")
	path, err := h.svc.Path(c.Request().Context(), principal(c), name)
	if err != nil {
		return fail(err)
	}
	return c.Attachment(path, name)
}

// Restore godoc
// @Summary Restore tables from an uploaded archive
// @Description Every selected table is validated before any file is replaced.
// @Tags backup
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Backup archive"
// @Param tables formData string false "Comma separated tables, all when empty"
// @Success 200 {object} RestoreResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /backups/restore [post]
func (h *BackupHandler) Restore(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest("file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return badRequest("cannot read upload")
	}
	defer f.Close()

	var tables []string
	for _, t := range strings.Split(c.FormValue("tables"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			tables = append(tables, t)
		}
	}
	restored, err := h.svc.Restore(c.Request().Context(), principal(c), f, fh.Size, tables)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, RestoreResponse{Tables: restored})
}
