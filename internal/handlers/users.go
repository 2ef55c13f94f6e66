package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/habalhub/habal-backend/internal/models"
	"github.com/habalhub/habal-backend/internal/services"
)

// GetProfile retrieves the user's profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var user models.User
		if err := db.First(&user, userId).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		var profile models.Profile
		db.Where("user_id = ?", userId).First(&profile)

		c.JSON(200, gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"fullName":  profile.FullName,
			"phone":     profile.Phone,
			"avatarUrl": profile.AvatarURL,
		})
	}
}

// UpdateProfile upserts the user's profile, keyed by account id.
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input struct {
			FullName *string `json:"fullName"`
			Phone    *string `json:"phone"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		profile := models.Profile{UserID: userId}
		db.Where("user_id = ?", userId).First(&profile)

		if input.FullName != nil {
			profile.FullName = *input.FullName
		}
		if input.Phone != nil {
			profile.Phone = *input.Phone
		}

		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).Create(&profile).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update profile"})
			return
		}

		c.JSON(200, gin.H{
			"fullName":  profile.FullName,
			"phone":     profile.Phone,
			"avatarUrl": profile.AvatarURL,
		})
	}
}

// UploadAvatar stores a profile picture and records its public URL. The
// upload blocks the request; on failure nothing is written and the user
// must resubmit.
func UploadAvatar(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		file, err := c.FormFile("avatar")
		if err != nil {
			c.JSON(400, gin.H{"error": "Avatar file is required"})
			return
		}

		url, err := services.UploadFile(file, fmt.Sprintf("avatars/%d", userId))
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to upload avatar: " + err.Error()})
			return
		}

		profile := models.Profile{UserID: userId, AvatarURL: url}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"avatar_url", "updated_at"}),
		}).Create(&profile).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to save avatar"})
			return
		}

		c.JSON(200, gin.H{"avatarUrl": url})
	}
}
