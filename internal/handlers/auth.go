package handlers

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/habalhub/habal-backend/internal/models"
	"github.com/habalhub/habal-backend/pkg/utils"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"fullName" binding:"required"`
	Phone    string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		// Hash the password
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to hash password"})
			return
		}

		user := models.User{
			Email:        input.Email,
			PasswordHash: string(hashedPassword),
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			profile := models.Profile{
				UserID:   user.ID,
				FullName: input.FullName,
				Phone:    input.Phone,
			}
			if err := tx.Create(&profile).Error; err != nil {
				return err
			}
			// Everyone starts as a rider; further roles are granted later.
			return GrantRole(tx, user.ID, models.RoleRider)
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to create user: " + err.Error()})
			return
		}

		c.JSON(201, gin.H{
			"message": "Account created successfully",
			"user": gin.H{
				"id":       user.ID,
				"email":    user.Email,
				"fullName": input.FullName,
				"roles":    []string{string(models.RoleRider)},
			},
		})
	}
}

func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if result := db.Where("email = ?", input.Email).First(&user); result.Error != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		if err := user.CheckPassword(input.Password); err != nil {
			c.JSON(401, gin.H{"error": "Invalid credentials"})
			return
		}

		roles := FetchRoles(db, user.ID)
		if roles.Has(models.RoleBanned) {
			c.JSON(403, gin.H{"error": "Account is banned"})
			return
		}

		token, err := utils.GenerateToken(&user, roles)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to generate token"})
			return
		}

		c.JSON(200, gin.H{
			"token": token,
			"user": gin.H{
				"id":    user.ID,
				"email": user.Email,
				"roles": roles.Strings(),
			},
		})
	}
}

// FetchRoles returns the role set granted to an account. When the direct
// user_roles lookup fails or comes back empty, it falls back to narrower
// per-role existence checks: a drivers row implies the driver role, and
// every account is at least a rider.
func FetchRoles(db *gorm.DB, userID uint) models.RoleSet {
	var grants []models.UserRole
	err := db.Where("user_id = ?", userID).Find(&grants).Error
	if err == nil && len(grants) > 0 {
		roles := make(models.RoleSet, 0, len(grants))
		for _, g := range grants {
			roles = append(roles, g.Role)
		}
		if !roles.Has(models.RoleRider) {
			roles = append(roles, models.RoleRider)
		}
		return roles
	}

	roles := models.RoleSet{models.RoleRider}
	var driverCount int64
	if err := db.Model(&models.Driver{}).Where("user_id = ?", userID).Count(&driverCount).Error; err == nil && driverCount > 0 {
		roles = append(roles, models.RoleDriver)
	}
	return roles
}

// GrantRole inserts a role grant, treating a duplicate as success. The
// unique (user_id, role) index plus ON CONFLICT DO NOTHING makes retries
// idempotent.
func GrantRole(db *gorm.DB, userID uint, role models.Role) error {
	grant := models.UserRole{UserID: userID, Role: role}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&grant).Error
}
