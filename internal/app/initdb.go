package app

import (
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chamberedinseams/storefront/internal/domain"
	"github.com/chamberedinseams/storefront/pkg/common"
)

func (a *Application) checkSuper() {
	adminEmail := a.appConfig.Admin.Email
	hashedPassword := common.Sha256HashWithSalt(a.appConfig.Admin.Password, common.GetSecretSalt())

	var operator domain.SysOpr
	err := a.gormDB.Where("email = ?", adminEmail).First(&operator).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := a.gormDB.Create(&domain.SysOpr{
			ID:        common.UUIDint64(),
			Realname:  "administrator",
			Email:     adminEmail,
			Username:  adminEmail,
			Password:  hashedPassword,
			Level:     "super",
			Status:    common.ENABLED,
			Remark:    "super",
			LastLogin: time.Now(),
		}).Error; err != nil {
			zap.L().Error("failed to create default super admin", zap.Error(err))
		} else {
			zap.L().Info("initialized default super admin account", zap.String("email", adminEmail))
		}
		return
	case err != nil:
		zap.L().Error("failed to query super admin", zap.Error(err))
		return
	}

	resetPassword := strings.TrimSpace(operator.Password) == ""
	resetStatus := !strings.EqualFold(operator.Status, common.ENABLED)
	if !resetPassword && !resetStatus {
		return
	}

	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}
	if resetPassword {
		updates["password"] = hashedPassword
	}
	if resetStatus {
		updates["status"] = common.ENABLED
	}
	if err := a.gormDB.Model(&domain.SysOpr{}).Where("id = ?", operator.ID).Updates(updates).Error; err != nil {
		zap.L().Error("failed to repair super admin account", zap.Error(err))
		return
	}
	zap.L().Warn("repaired default super admin account",
		zap.String("email", adminEmail),
		zap.Bool("passwordReset", resetPassword),
		zap.Bool("statusEnabled", resetStatus))
}

// checkCategories initializes the default grouping labels
func (a *Application) checkCategories() {
	defaultCategories := []domain.Category{
		{ID: 1, Name: "Jackets", Description: "Outerwear and jackets"},
		{ID: 2, Name: "Tops", Description: "Shirts, tees and sweaters"},
		{ID: 3, Name: "Bottoms", Description: "Jeans, trousers and skirts"},
		{ID: 4, Name: "Footwear", Description: "Boots and shoes"},
		{ID: 5, Name: "Accessories", Description: "Bags, belts and hardware"},
	}

	for _, cat := range defaultCategories {
		var count int64
		a.gormDB.Model(&domain.Category{}).Where("name = ?", cat.Name).Count(&count)
		if count == 0 {
			cat.CreatedAt = time.Now()
			cat.UpdatedAt = time.Now()
			if err := a.gormDB.Create(&cat).Error; err != nil {
				zap.L().Error("failed to create default category", zap.String("name", cat.Name), zap.Error(err))
			} else {
				zap.L().Info("initialized default category", zap.String("name", cat.Name))
			}
		}
	}
}

// checkProducts seeds sample inventory on an empty catalog
func (a *Application) checkProducts() {
	var count int64
	a.gormDB.Model(&domain.Product{}).Count(&count)
	if count > 0 {
		return
	}

	sampleProducts := []domain.Product{
		{Title: "Vintage Denim Jacket", Description: "Classic 90s denim jacket in excellent condition", Price: 99.00, CategoryID: 1, IsStaffPick: true},
		{Title: "Retro T-Shirt", Description: "Vintage band t-shirt from the 80s", Price: 49.00, CategoryID: 2},
		{Title: "Leather Boots", Description: "Vintage leather boots, barely worn", Price: 199.00, CategoryID: 4, IsStaffPick: true},
		{Title: "Vintage Sweater", Description: "Hand-knitted wool sweater from the 70s", Price: 79.00, CategoryID: 2},
		{Title: "Denim Jeans", Description: "Classic 90s high-waisted jeans", Price: 89.00, CategoryID: 3},
	}

	for _, p := range sampleProducts {
		p.ID = common.UUIDint64()
		p.IsActive = true
		p.CreatedAt = time.Now()
		p.UpdatedAt = time.Now()
		if err := a.gormDB.Create(&p).Error; err != nil {
			zap.L().Error("failed to create sample product", zap.String("title", p.Title), zap.Error(err))
		} else {
			zap.L().Info("initialized sample product", zap.String("title", p.Title))
		}
	}
}
