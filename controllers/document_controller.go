package controller

import (
	"errors"
	"log"
	"net/url"
	"path"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teamboard/models"
	"teamboard/services"
	"teamboard/storage"
	"teamboard/utils"
)

type DocumentController struct {
	DB     *gorm.DB
	Store  storage.Store
	Signer *storage.Signer
	Logger *log.Logger
}

func NewDocumentController(db *gorm.DB, store storage.Store, signer *storage.Signer, logger *log.Logger) *DocumentController {
	return &DocumentController{DB: db, Store: store, Signer: signer, Logger: logger}
}

// UploadDocument stores the file, then inserts the document row with the
// next version for its (team, title) pair inside one transaction, flipping
// the previous latest off. A re-upload of an existing title is how a new
// revision is made; documents are never updated in place.
func (dc *DocumentController) UploadDocument(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	if user.TeamID == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "You are not in a team", nil)
	}
	teamID := *user.TeamID

	title := c.FormValue("title")
	if title == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "title is required", nil)
	}
	description := c.FormValue("description")

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "file is required", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Could not read uploaded file", err)
	}
	defer src.Close()

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	key := storage.BuildKey(teamID, title, fileHeader.Filename, time.Now())
	if err := dc.Store.Put(key, src); err != nil {
		utils.LogError("document_blob_upload_failed", err, map[string]interface{}{"key": key})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to store file", nil)
	}

	document := models.Document{
		TeamID:      teamID,
		Title:       title,
		Description: description,
		FilePath:    key,
		FileName:    fileHeader.Filename,
		FileSize:    fileHeader.Size,
		MimeType:    mimeType,
		UploadedBy:  user.Name,
		IsLatest:    true,
	}

	err = dc.DB.Transaction(func(tx *gorm.DB) error {
		var maxVersion int
		err := tx.Model(&models.Document{}).
			Where("team_id = ? AND title = ?", teamID, title).
			Select("COALESCE(MAX(version), 0)").
			Scan(&maxVersion).Error
		if err != nil {
			return err
		}
		document.Version = maxVersion + 1

		if err := tx.Model(&models.Document{}).
			Where("team_id = ? AND title = ? AND is_latest", teamID, title).
			Update("is_latest", false).Error; err != nil {
			return err
		}

		return tx.Create(&document).Error
	})
	if err != nil {
		// The blob is already on disk; remove it rather than leave an
		// unreferenced file for the orphan sweeper.
		if delErr := dc.Store.Delete(key); delErr != nil {
			dc.Logger.Printf("could not remove blob %s after failed insert: %v", key, delErr)
		}
		utils.LogError("document_create_failed", err, map[string]interface{}{"team_id": teamID, "title": title})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create document", nil)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(document))
}

// GetDocuments returns the latest revision of each title in the team,
// newest upload first.
func (dc *DocumentController) GetDocuments(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	if user.TeamID == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "You are not in a team", nil)
	}

	docs, err := dc.teamDocuments(*user.TeamID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load documents", nil)
	}

	latest := services.LatestByTitle(docs)
	result := make([]models.Document, 0, len(latest))
	for _, doc := range latest {
		result = append(result, doc)
	}
	// Same presentation order as the history view: newest upload first.
	sortByCreatedAtDesc(result)

	return c.JSON(utils.SuccessResponse(result))
}

// GetDocumentHistory returns every revision of a title, version descending.
// The title comes in as a query parameter because titles may contain spaces
// and slashes.
func (dc *DocumentController) GetDocumentHistory(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	if user.TeamID == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "You are not in a team", nil)
	}

	title := c.Query("title")
	if title == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "title query parameter is required", nil)
	}

	docs, err := dc.teamDocuments(*user.TeamID)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load documents", nil)
	}

	return c.JSON(utils.SuccessResponse(services.HistoryByTitle(docs, title)))
}

// GetDocumentURL issues a time-limited signed download URL for one document.
func (dc *DocumentController) GetDocumentURL(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	documentID := c.Params("id")

	var document models.Document
	if err := dc.DB.First(&document, "id = ?", documentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Document not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load document", nil)
	}
	if user.TeamID == nil || *user.TeamID != document.TeamID {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Document belongs to another team", nil)
	}

	url, expiresAt := dc.Signer.SignedURL(document.FilePath, time.Now())
	return c.JSON(utils.SuccessResponse(fiber.Map{
		"url":       url,
		"expiresAt": expiresAt,
		"fileName":  document.FileName,
	}))
}

// DownloadDocument serves a blob to the holder of a valid signed URL. This
// route carries no session and touches no tables; the signature is the whole
// capability and the key carries enough to serve the file. Clients that want
// the original upload filename get it from GetDocumentURL.
func (dc *DocumentController) DownloadDocument(c *fiber.Ctx) error {
	// Fiber hands the wildcard over still percent-encoded, but signatures
	// cover the raw key.
	key, err := url.PathUnescape(c.Params("*"))
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Malformed file path", nil)
	}
	sig := c.Query("sig")
	expires, err := strconv.ParseInt(c.Query("expires"), 10, 64)
	if err != nil || sig == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Missing or malformed signature", nil)
	}

	if err := dc.Signer.Verify(key, expires, sig, time.Now()); err != nil {
		status := fiber.StatusForbidden
		if errors.Is(err, storage.ErrSignatureExpired) {
			status = fiber.StatusGone
		}
		return utils.ErrorResponse(c, status, "Signed URL rejected", err)
	}

	blob, err := dc.Store.Open(key)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "File not found", nil)
		}
		utils.LogError("document_download_failed", err, map[string]interface{}{"key": key})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to open file", nil)
	}

	fileName := path.Base(key)
	c.Type(strings.TrimPrefix(path.Ext(fileName), "."))
	c.Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	return c.SendStream(blob)
}

func (dc *DocumentController) teamDocuments(teamID string) ([]models.Document, error) {
	var docs []models.Document
	if err := dc.DB.Where("team_id = ?", teamID).Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

func sortByCreatedAtDesc(docs []models.Document) {
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
}
