package worker

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"teamboard/models"
	"teamboard/storage"
	"teamboard/utils"
)

// orphanGracePeriod is how old a blob must be before it is considered
// abandoned rather than an upload whose document row has not committed yet.
const orphanGracePeriod = 1 * time.Hour

// OrphanWorker cleans up the two places where a multi-step write can leave
// debris: blobs with no document row (upload stored the file, insert
// failed) and member users with no membership row (joins written before
// joins were transactional).
type OrphanWorker struct {
	DB     *gorm.DB
	Store  storage.Store
	Logger *log.Logger
}

func NewOrphanWorker(db *gorm.DB, store storage.Store, logger *log.Logger) *OrphanWorker {
	return &OrphanWorker{
		DB:     db,
		Store:  store,
		Logger: logger,
	}
}

func (ow *OrphanWorker) Start(ctx context.Context) {
	// Initial delay to let the server start up
	time.Sleep(10 * time.Second)

	ow.Logger.Println("Orphan worker started")

	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			ow.Logger.Println("Orphan worker shutting down...")
			return
		case <-ticker.C:
			ow.sweepBlobs()
			ow.reportOrphanUsers()
		}
	}
}

func (ow *OrphanWorker) sweepBlobs() {
	objects, err := ow.Store.List()
	if err != nil {
		ow.Logger.Printf("Error listing blobs: %v", err)
		return
	}

	cutoff := time.Now().Add(-orphanGracePeriod)
	for _, obj := range objects {
		if obj.ModTime.After(cutoff) {
			continue
		}

		var count int64
		if err := ow.DB.Model(&models.Document{}).Where("file_path = ?", obj.Key).Count(&count).Error; err != nil {
			ow.Logger.Printf("Error checking blob %s: %v", obj.Key, err)
			continue
		}
		if count > 0 {
			continue
		}

		if err := ow.Store.Delete(obj.Key); err != nil {
			ow.Logger.Printf("Error deleting orphan blob %s: %v", obj.Key, err)
			continue
		}
		utils.LogEvent("orphan_blob_deleted", map[string]interface{}{
			"key":  obj.Key,
			"size": obj.Size,
		})
	}
}

// reportOrphanUsers only logs; deleting a login account is not this worker's
// call to make.
func (ow *OrphanWorker) reportOrphanUsers() {
	var orphans []models.User
	err := ow.DB.Raw(`
		SELECT u.* FROM users u
		WHERE u.type = ? AND u.team_id IS NOT NULL
		AND NOT EXISTS (
			SELECT 1 FROM team_members m
			WHERE m.team_id = u.team_id AND m.user_id = u.id
		)`, models.UserTypeMember).Scan(&orphans).Error
	if err != nil {
		ow.Logger.Printf("Error checking for orphan users: %v", err)
		return
	}

	for _, user := range orphans {
		ow.Logger.Printf("user %s (%s) has a team but no membership row", user.ID, user.Name)
	}
}
